// Package hexconfig reads widget options from YAML or TOML files.
// The keys are the ones of hexwidget.DecodeOptions.
package hexconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/hexprogress/hexwidget"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a configuration file.
type Format uint8

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf returns the format matching the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return 0, fmt.Errorf("unsupported configuration file %s", path)
	}
}

func unmarshal(data []byte, format Format, v any) error {
	switch format {
	case YAML:
		return yaml.Unmarshal(data, v)
	case TOML:
		return toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported format %s", format)
	}
}

// Decode reads the options of one widget.
func Decode(data []byte, format Format) ([]hexwidget.Option, error) {
	var m map[string]any
	if err := unmarshal(data, format, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s options: %w", format, err)
	}
	return hexwidget.DecodeOptions(m)
}

// Load reads the options of one widget from a file.
func Load(path string) ([]hexwidget.Option, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data, format)
}

// Job is one widget rendered by a batch.
type Job struct {
	Name    string         `yaml:"name" toml:"name"`
	Output  string         `yaml:"output" toml:"output"`
	Options map[string]any `yaml:"options" toml:"options"`
}

// Batch lists independent widgets.
type Batch struct {
	Jobs []Job `yaml:"jobs" toml:"jobs"`
}

// LoadBatch reads a batch file and checks the options of each job.
func LoadBatch(path string) (*Batch, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var b Batch
	if err := unmarshal(data, format, &b); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(b.Jobs) == 0 {
		return nil, errors.New("batch has no job")
	}
	for i, job := range b.Jobs {
		if job.Output == "" {
			return nil, fmt.Errorf("job %d (%s): missing output", i, job.Name)
		}
		if _, err := hexwidget.DecodeOptions(job.Options); err != nil {
			return nil, fmt.Errorf("job %d (%s): %w", i, job.Name, err)
		}
	}
	return &b, nil
}
