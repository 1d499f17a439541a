// Package samples reads and writes mono sample windows in the file formats
// understood by the CLI.
package samples

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a sample file encoding
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatText    Format = "txt"
	FormatFloat32 Format = "f32" // raw little-endian float32
)

const sampleRateDirective = "sample_rate:"

// Signal is a mono sample window with its sample rate
type Signal struct {
	SampleRate float64   `json:"sample_rate" yaml:"sample_rate"`
	Samples    []float64 `json:"samples" yaml:"samples"`
}

// Duration returns the signal length in seconds
func (s *Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / s.SampleRate
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".txt", ".csv":
		return FormatText, nil
	case ".f32", ".raw", ".pcm":
		return FormatFloat32, nil
	default:
		return "", fmt.Errorf("unsupported sample file extension: %q", filepath.Ext(path))
	}
}

// Load reads a sample file. defaultRate is used when the file does not carry
// its own sample rate.
func Load(path string, defaultRate float64) (*Signal, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("sample file does not exist: %s", path)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample file: %w", err)
	}

	return Decode(data, format, defaultRate)
}

// Decode parses data in the given format
func Decode(data []byte, format Format, defaultRate float64) (*Signal, error) {
	var (
		signal *Signal
		err    error
	)

	switch format {
	case FormatYAML:
		signal, err = decodeStructured(data, yaml.Unmarshal)
	case FormatJSON:
		signal, err = decodeStructured(data, json.Unmarshal)
	case FormatText:
		signal, err = decodeText(data)
	case FormatFloat32:
		signal, err = decodeFloat32(data)
	default:
		return nil, fmt.Errorf("unsupported sample format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s samples: %w", format, err)
	}

	if signal.SampleRate == 0 {
		signal.SampleRate = defaultRate
	}
	if err := signal.Validate(); err != nil {
		return nil, err
	}
	return signal, nil
}

// Validate checks the sample rate and that every sample is finite
func (s *Signal) Validate() error {
	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("sample rate must be positive, got %v", s.SampleRate)
	}
	for i, v := range s.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("sample %d is not finite", i)
		}
	}
	return nil
}

// decodeStructured accepts either a bare list of samples or a Signal document
func decodeStructured(data []byte, unmarshal func([]byte, any) error) (*Signal, error) {
	var list []float64
	if err := unmarshal(data, &list); err == nil {
		if list == nil {
			list = []float64{}
		}
		return &Signal{Samples: list}, nil
	}

	var signal Signal
	if err := unmarshal(data, &signal); err != nil {
		return nil, err
	}
	if signal.Samples == nil {
		signal.Samples = []float64{}
	}
	return &signal, nil
}

func decodeText(data []byte) (*Signal, error) {
	signal := &Signal{Samples: []float64{}}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if comment, ok := strings.CutPrefix(text, "#"); ok {
			if value, ok := strings.CutPrefix(strings.TrimSpace(comment), sampleRateDirective); ok {
				rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid sample rate: %w", line, err)
				}
				signal.SampleRate = rate
			}
			continue
		}

		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		signal.Samples = append(signal.Samples, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return signal, nil
}

func decodeFloat32(data []byte) (*Signal, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("buffer size %d not aligned for 32-bit samples", len(data))
	}

	out := make([]float64, len(data)/4)
	for i := range out {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		out[i] = float64(math.Float32frombits(bits))
	}
	return &Signal{Samples: out}, nil
}

// Save writes the signal in the format implied by the path extension
func Save(path string, signal *Signal) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Encode(signal, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sample file: %w", err)
	}
	return nil
}

// Encode serializes the signal. The raw float32 format does not carry the
// sample rate.
func Encode(signal *Signal, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(signal)
	case FormatJSON:
		return json.MarshalIndent(signal, "", "  ")
	case FormatText:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "# %s %s\n", sampleRateDirective, strconv.FormatFloat(signal.SampleRate, 'g', -1, 64))
		for _, v := range signal.Samples {
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	case FormatFloat32:
		out := make([]byte, 4*len(signal.Samples))
		for i, v := range signal.Samples {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(v)))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported sample format: %q", format)
	}
}
