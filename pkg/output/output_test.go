package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	shared "github.com/RyanBlaney/latency-benchmark-common/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type formantRow struct {
	Frequency float64 `json:"frequency"`
	Bandwidth float64 `json:"bandwidth"`
}

type report struct {
	SampleRate float64      `json:"sample_rate"`
	Silent     bool         `json:"silent"`
	Formants   []formantRow `json:"formants"`
	Peaks      []float64    `json:"peaks"`
}

var sample = report{
	SampleRate: 8000,
	Formants:   []formantRow{{Frequency: 712.5, Bandwidth: 80}, {Frequency: 1203, Bandwidth: 95.25}},
	Peaks:      []float64{700, 1200},
}

func TestNewFormatter(t *testing.T) {
	for _, name := range append(Formats, "JSON", "yml", "") {
		f, err := NewFormatter(name)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("xml")
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	compact, err := (&JSONFormatter{}).Format(sample, false)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(compact), "\n"))

	pretty, err := (&JSONFormatter{}).Format(sample, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"sample_rate\": 8000")

	var decoded report
	require.NoError(t, json.Unmarshal(pretty, &decoded))
	assert.Equal(t, sample, decoded)
}

func TestFormattersMatchSharedOutput(t *testing.T) {
	data := map[string]any{"formants": []float64{700, 1200}, "sample_rate": 10000}

	want, err := (&shared.JSONFormatter{}).Format(data, true)
	require.NoError(t, err)
	got, err := (&JSONFormatter{}).Format(data, true)
	require.NoError(t, err)
	assert.Equal(t, string(want)+"\n", string(got))

	want, err = (&shared.YAMLFormatter{}).Format(data, false)
	require.NoError(t, err)
	got, err = (&YAMLFormatter{}).Format(data, false)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	var _ Formatter = &shared.JSONFormatter{}
}

func TestYAMLFormatterUsesJSONNames(t *testing.T) {
	out, err := (&YAMLFormatter{}).Format(sample, true)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "sample_rate: 8000\n")
	assert.NotContains(t, text, "\"8000\"")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, 8000, decoded["sample_rate"])
	assert.Equal(t, false, decoded["silent"])
	require.Len(t, decoded["formants"], 2)
	first := decoded["formants"].([]any)[0].(map[string]any)
	assert.Equal(t, 712.5, first["frequency"])
}

func TestCSVFormatterRecords(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sample.Formants, false)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"bandwidth", "frequency"},
		{"80", "712.5"},
		{"95.25", "1203"},
	}, rows)
}

func TestCSVFormatterKeyValue(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sample, false)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"key", "value"}, rows[0])
	assert.NotContains(t, string(out), "broadcast_group")
	assert.Contains(t, rows, []string{"formants.0.frequency", "712.5"})
	assert.Contains(t, rows, []string{"peaks", "700 1200"})
	assert.Contains(t, rows, []string{"sample_rate", "8000"})
	assert.Contains(t, rows, []string{"silent", "false"})
}

func TestTableFormatter(t *testing.T) {
	out, err := (&TableFormatter{}).Format(sample.Formants, true)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"Bandwidth", "Frequency"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"---------", "---------"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"80", "712.5"}, strings.Fields(lines[2]))

	plain, err := (&TableFormatter{}).Format(map[string]any{"vocal_tract_length": 17.5}, false)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimRight(string(plain), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"Key", "Value"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"vocal_tract_length", "17.5"}, strings.Fields(lines[1]))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Sample Rate", Header("sample_rate"))
	assert.Equal(t, "Frequency Median", Header("frequency.median"))
}
