package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TableFormatter renders data as aligned text columns
type TableFormatter struct{}

// Format implements Formatter. Pretty output draws a rule under the header.
func (f *TableFormatter) Format(data any, pretty bool) ([]byte, error) {
	generic, err := normalize(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	var header []string
	var lines [][]string
	if rows, columns, ok := records(generic); ok {
		for _, c := range columns {
			header = append(header, Header(c))
		}
		for _, row := range rows {
			line := make([]string, len(columns))
			for i, c := range columns {
				line[i] = row[c]
			}
			lines = append(lines, line)
		}
	} else {
		header = []string{"Key", "Value"}
		for _, kv := range pairs(generic) {
			lines = append(lines, []string{kv[0], kv[1]})
		}
	}

	fmt.Fprintln(tw, strings.Join(header, "\t"))
	if pretty {
		rule := make([]string, len(header))
		for i, h := range header {
			rule[i] = strings.Repeat("-", len(h))
		}
		fmt.Fprintln(tw, strings.Join(rule, "\t"))
	}
	for _, line := range lines {
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Header turns a snake_case or dotted key into a column title
func Header(key string) string {
	return titleCaser.String(strings.NewReplacer("_", " ", ".", " ").Replace(key))
}
