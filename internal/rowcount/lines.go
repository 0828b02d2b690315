package rowcount

import (
	"bytes"
	"io"
)

// CountLines counts lines in r. A final line without a trailing newline
// still counts; an empty input has zero lines.
func CountLines(r io.Reader) (int64, error) {
	buf := make([]byte, 64<<10)
	var (
		n    int64
		last byte = '\n'
	)
	for {
		k, err := r.Read(buf)
		if k > 0 {
			n += int64(bytes.Count(buf[:k], []byte{'\n'}))
			last = buf[k-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
	}
	if last != '\n' {
		n++
	}
	return n, nil
}

// DataRows is lines minus the header, never negative.
func DataRows(lines int64) int64 {
	return max(lines-1, 0)
}
