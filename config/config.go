// Package config loads the chart settings shared by every host.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"git.sr.ht/~whereswaldon/barchart/interaction"
	"git.sr.ht/~whereswaldon/barchart/style"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Form is a named chart size.
type Form string

const (
	Small      Form = "small"
	Medium     Form = "medium"
	Large      Form = "large"
	ExtraLarge Form = "extra-large"
	Detail     Form = "detail"
)

// Size returns the form's width and height in device independent units.
func (f Form) Size() (width, height float64, ok bool) {
	switch f {
	case Small, Detail:
		return 180, 120, true
	case Medium:
		return 180, 240, true
	case Large:
		return 360, 120, true
	case ExtraLarge:
		return 360, 240, true
	}
	return 0, 0, false
}

// FullWidth reports whether the chart should stretch to its container.
func (f Form) FullWidth() bool {
	return f == Large
}

type LabelBox struct {
	Width  float64 `yaml:"width"`
	Margin float64 `yaml:"margin"`
}

type Config struct {
	Title  string `yaml:"title"`
	Legend string `yaml:"legend"`
	Form   Form   `yaml:"form"`
	// Theme is "light" or "dark".
	Theme    string   `yaml:"theme"`
	LabelBox LabelBox `yaml:"label_box"`
	// Data is the dataset to open at startup. "-" reads a live stream from
	// standard input.
	Data     string `yaml:"data"`
	LogLevel string `yaml:"log_level"`
	// Categories maps bar labels to colour categories. Unlisted labels are
	// orange.
	Categories map[string]string `yaml:"categories"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Title:    "Bar Chart",
		Form:     Medium,
		Theme:    "light",
		LogLevel: "info",
		LabelBox: LabelBox{
			Width:  interaction.DefaultLabelBoxWidth,
			Margin: interaction.DefaultLabelBoxMargin,
		},
	}
}

// Load reads a YAML file on top of [Default]. Unknown keys are rejected.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed reading config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML configuration on top of [Default].
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error
	if _, _, ok := c.Form.Size(); !ok {
		errs = append(errs, fmt.Errorf("%w: unknown form %q", ErrInvalid, c.Form))
	}
	if c.Theme != "light" && c.Theme != "dark" {
		errs = append(errs, fmt.Errorf("%w: theme must be light or dark, got %q", ErrInvalid, c.Theme))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	if err := c.Geometry(c.Width()).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	for label, name := range c.Categories {
		if _, err := style.ParseCategory(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: label %q: %w", ErrInvalid, label, err))
		}
	}
	return errors.Join(errs...)
}

// Width is the form's nominal width.
func (c Config) Width() float64 {
	w, _, _ := c.Form.Size()
	return w
}

// Geometry returns the label geometry for a chart of the given width.
func (c Config) Geometry(width float64) interaction.Geometry {
	return interaction.Geometry{
		Width:          width,
		LabelBoxWidth:  c.LabelBox.Width,
		LabelBoxMargin: c.LabelBox.Margin,
	}
}

// Classifier builds the bar colour classifier from Categories. Entries that
// fail to parse are treated as orange; Validate reports them.
func (c Config) Classifier() style.Classifier {
	table := make(map[string]style.Category, len(c.Categories))
	for label, name := range c.Categories {
		table[label], _ = style.ParseCategory(name)
	}
	return style.ByLabel(table)
}

func (c Config) Palette() style.Palette {
	return style.PaletteFor(c.Theme)
}

// ShowsLegend reports whether the legend line is drawn while no label is
// showing. Only medium charts have room for it.
func (c Config) ShowsLegend() bool {
	return c.Legend != "" && c.Form == Medium
}

// Logger creates the process logger at the configured level.
func (c Config) Logger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "barchart",
	})
}
