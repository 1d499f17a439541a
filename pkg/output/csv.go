package output

import (
	"bytes"
	"encoding/csv"
)

// CSVFormatter renders a list of objects as one row per object, and
// anything else as key,value rows
type CSVFormatter struct{}

// Format implements Formatter
func (f *CSVFormatter) Format(data any, pretty bool) ([]byte, error) {
	generic, err := normalize(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if rows, columns, ok := records(generic); ok {
		if err := w.Write(columns); err != nil {
			return nil, err
		}
		for _, row := range rows {
			line := make([]string, len(columns))
			for i, c := range columns {
				line[i] = row[c]
			}
			if err := w.Write(line); err != nil {
				return nil, err
			}
		}
	} else {
		if err := w.Write([]string{"key", "value"}); err != nil {
			return nil, err
		}
		for _, kv := range pairs(generic) {
			if err := w.Write(kv[:]); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
