package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"nytaxi/internal/ddl"
)

// Zone is one row of the taxi zone lookup file.
type Zone struct {
	LocationID  int64  `csv:"LocationID"`
	Borough     string `csv:"Borough"`
	Zone        string `csv:"Zone"`
	ServiceZone string `csv:"service_zone"`
}

// ZoneColumns are the lookup table columns, named after the CSV header.
var ZoneColumns = []Column{
	{Name: "LocationID", Kind: ddl.KindInt},
	{Name: "Borough", Kind: ddl.KindText},
	{Name: "Zone", Kind: ddl.KindText},
	{Name: "service_zone", Kind: ddl.KindText},
}

// ReadZones decodes every zone record from r. The header row is required.
func ReadZones(r io.Reader) ([]Zone, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("frame: zones: missing header")
		}
		return nil, fmt.Errorf("frame: zones: read header: %w", err)
	}

	var zones []Zone
	for {
		var z Zone
		if err := dec.Decode(&z); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("frame: zones: line %d: %w", len(zones)+2, err)
		}
		zones = append(zones, z)
	}
	return zones, nil
}

// ReadZonesCSV decodes the lookup CSV into a Frame with ZoneColumns.
func ReadZonesCSV(r io.Reader) (*Frame, error) {
	zones, err := ReadZones(r)
	if err != nil {
		return nil, err
	}
	f := New(ZoneColumns...)
	f.Rows = make([][]any, 0, len(zones))
	for _, z := range zones {
		f.Rows = append(f.Rows, []any{z.LocationID, z.Borough, z.Zone, z.ServiceZone})
	}
	return f, nil
}
