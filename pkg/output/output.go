// Package output renders command results as json, yaml, csv or a text table.
//
// JSON and YAML go through the shared benchmark formatters. CSV and table
// output are generic over the report shape.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	shared "github.com/RyanBlaney/latency-benchmark-common/output"
)

// Formatter renders arbitrary result data
type Formatter = shared.Formatter

// Formats lists the supported formatter names
var Formats = []string{"json", "yaml", "csv", "table"}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "json", "":
		return &JSONFormatter{}, nil
	case "yaml", "yml":
		return &YAMLFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "table":
		return &TableFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}

// normalize converts data into maps, slices and scalars using the json
// field names, so every formatter sees the same keys.
func normalize(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var out any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten turns nested maps into dotted keys. Lists of scalars are joined
// with spaces; other lists are indexed.
func flatten(prefix string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 && prefix != "" {
			out[prefix] = ""
		}
		for k, val := range v {
			flatten(joinKey(prefix, k), val, out)
		}
	case []any:
		if allScalars(v) {
			parts := make([]string, len(v))
			for i, val := range v {
				parts[i] = scalar(val)
			}
			out[prefix] = strings.Join(parts, " ")
			return
		}
		for i, val := range v {
			flatten(joinKey(prefix, fmt.Sprint(i)), val, out)
		}
	default:
		out[prefix] = scalar(v)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func allScalars(values []any) bool {
	for _, v := range values {
		switch v.(type) {
		case map[string]any, []any:
			return false
		}
	}
	return true
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		if f, err := val.Float64(); err == nil && strings.ContainsAny(val.String(), ".eE") {
			return fmt.Sprintf("%.6g", f)
		}
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// records returns the rows of data when it is a list of objects
func records(data any) ([]map[string]string, []string, bool) {
	list, ok := data.([]any)
	if !ok || len(list) == 0 {
		return nil, nil, false
	}

	rows := make([]map[string]string, 0, len(list))
	seen := make(map[string]bool)
	var columns []string
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, nil, false
		}
		row := make(map[string]string)
		flatten("", obj, row)
		rows = append(rows, row)
		for k := range row {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)
	return rows, columns, true
}

// pairs returns the flattened key/value rows of data sorted by key
func pairs(data any) [][2]string {
	flat := make(map[string]string)
	flatten("", data, flat)

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][2]string, len(keys))
	for i, k := range keys {
		out[i] = [2]string{k, flat[k]}
	}
	return out
}
