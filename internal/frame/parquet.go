package frame

import (
	"context"
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"nytaxi/internal/ddl"
)

// DecodeParquet reads a whole Parquet stream into memory. Column names and
// kinds come from the file's Arrow schema; values are not coerced beyond the
// Arrow-to-Go mapping in arrowValue.
func DecodeParquet(ctx context.Context, r parquet.ReaderAtSeeker) (*Frame, error) {
	mem := memory.NewGoAllocator()
	tbl, err := pqarrow.ReadTable(ctx, r, parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("frame: read parquet: %w", err)
	}
	defer tbl.Release()

	return fromTable(tbl), nil
}

func fromTable(tbl arrow.Table) *Frame {
	schema := tbl.Schema()
	ncols := int(tbl.NumCols())
	nrows := int(tbl.NumRows())

	cols := make([]Column, ncols)
	for i, fld := range schema.Fields() {
		cols[i] = Column{Name: fld.Name, Kind: kindOf(fld.Type)}
	}

	rows := make([][]any, nrows)
	for i := range rows {
		rows[i] = make([]any, ncols)
	}

	for c := 0; c < ncols; c++ {
		off := 0
		for _, chunk := range tbl.Column(c).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				rows[off+i][c] = arrowValue(chunk, i)
			}
			off += chunk.Len()
		}
	}

	return &Frame{Columns: cols, Rows: rows}
}

func kindOf(dt arrow.DataType) string {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return ddl.KindInt
	case arrow.FLOAT32, arrow.FLOAT64:
		return ddl.KindFloat
	case arrow.BOOL:
		return ddl.KindBool
	case arrow.TIMESTAMP:
		return ddl.KindTimestamp
	case arrow.DATE32, arrow.DATE64:
		return ddl.KindDate
	case arrow.BINARY:
		return ddl.KindBytes
	default:
		return ddl.KindText
	}
}

func arrowValue(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return int64(a.Value(i))
	case *array.Uint16:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Uint64:
		return int64(a.Value(i))
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Binary:
		return append([]byte(nil), a.Value(i)...)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit)
	case *array.Date32:
		return a.Value(i).ToTime()
	case *array.Date64:
		return a.Value(i).ToTime()
	default:
		return arr.ValueStr(i)
	}
}
