package samples

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.json": FormatJSON,
		"a.txt":  FormatText,
		"a.f32":  FormatFloat32,
		"a.raw":  FormatFloat32,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("a.wav")
	assert.Error(t, err)
}

func TestLoadStructured(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantRate float64
	}{
		{"yaml document", "s.yaml", "sample_rate: 8000\nsamples: [0.1, -0.2, 0.3]\n", 8000},
		{"yaml bare list", "s.yml", "- 0.1\n- -0.2\n- 0.3\n", 44100},
		{"json document", "s.json", `{"sample_rate": 16000, "samples": [0.1, -0.2, 0.3]}`, 16000},
		{"json bare list", "s.json", `[0.1, -0.2, 0.3]`, 44100},
		{"text", "s.txt", "# recorded vowel\n0.1\n\n-0.2\n0.3\n", 44100},
		{"text with rate", "s.txt", "# sample_rate: 11025\n0.1\n-0.2\n0.3\n", 11025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal, err := Load(writeFile(t, tt.file, tt.content), 44100)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRate, signal.SampleRate)
			assert.Equal(t, []float64{0.1, -0.2, 0.3}, signal.Samples)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	signal := &Signal{SampleRate: 11025, Samples: []float64{0, 0.25, -0.5, 0.123456789}}

	for _, name := range []string{"out.yaml", "out.json", "out.txt"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, Save(path, signal))

		loaded, err := Load(path, 8000)
		require.NoError(t, err, name)
		assert.Equal(t, signal, loaded, name)
	}

	path := filepath.Join(t.TempDir(), "out.f32")
	require.NoError(t, Save(path, signal))
	loaded, err := Load(path, 8000)
	require.NoError(t, err)
	assert.Equal(t, 8000.0, loaded.SampleRate)
	require.Len(t, loaded.Samples, len(signal.Samples))
	for i, v := range signal.Samples {
		assert.InDelta(t, v, loaded.Samples[i], 1e-7)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		rate    float64
	}{
		{"misaligned float32", "s.f32", "abc", 8000},
		{"bad text line", "s.txt", "0.1\nabc\n", 8000},
		{"non-finite sample", "s.txt", "0.1\nNaN\n", 8000},
		{"missing rate", "s.json", "[0.1]", 0},
		{"malformed yaml", "s.yaml", "samples: [0.1, \n", 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content), tt.rate)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), 8000)
	assert.Error(t, err)
}

func TestEmptyDocuments(t *testing.T) {
	signal, err := Decode([]byte("[]"), FormatJSON, 8000)
	require.NoError(t, err)
	assert.NotNil(t, signal.Samples)
	assert.Empty(t, signal.Samples)
	assert.Zero(t, signal.Duration())

	signal, err = Decode([]byte(""), FormatText, 8000)
	require.NoError(t, err)
	assert.Empty(t, signal.Samples)
}

func TestDuration(t *testing.T) {
	signal := &Signal{SampleRate: 8000, Samples: make([]float64, 400)}
	assert.InDelta(t, 0.05, signal.Duration(), 1e-12)
}
