package output

import (
	shared "github.com/RyanBlaney/latency-benchmark-common/output"
)

// JSONFormatter renders data with the shared JSON formatter and terminates
// the document with a newline
type JSONFormatter struct {
	shared.JSONFormatter
}

// Format implements Formatter
func (f *JSONFormatter) Format(data any, prettyPrint bool) ([]byte, error) {
	out, err := f.JSONFormatter.Format(data, prettyPrint)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
