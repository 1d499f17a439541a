package output

import (
	"encoding/json"

	shared "github.com/RyanBlaney/latency-benchmark-common/output"
)

// YAMLFormatter renders data with the shared YAML formatter after
// normalizing it to the json field names
type YAMLFormatter struct {
	shared.YAMLFormatter
}

// Format implements Formatter
func (f *YAMLFormatter) Format(data any, prettyPrint bool) ([]byte, error) {
	generic, err := normalize(data)
	if err != nil {
		return nil, err
	}
	return f.YAMLFormatter.Format(toYAML(generic), prettyPrint)
}

// toYAML replaces json.Number so numbers are not quoted
func toYAML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for k, val := range v {
			v[k] = toYAML(val)
		}
		return v
	case []any:
		for i, val := range v {
			v[i] = toYAML(val)
		}
		return v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return value
	}
}
