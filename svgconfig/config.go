// Maps a configuration file, written in TOML or YAML,
// onto the options of the parser and of the code generators.
package svgconfig

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/vectoricons/svgcompose"
	"github.com/benoitkugler/vectoricons/svgdrawable"
	"github.com/benoitkugler/vectoricons/svgicon"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of a configuration file.
type Format uint8

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

var errUnknownFormat = errors.New("unknown configuration format")

// FormatFromFilename uses the extension of `name`
// to select the format.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%s: %w", name, errUnknownFormat)
	}
}

// Config holds the settings of a conversion.
type Config struct {
	// ErrorMode is one of "ignore", "warn" or "strict".
	// Empty means "warn".
	ErrorMode      string         `toml:"errorMode" yaml:"errorMode"`
	VectorDrawable VectorDrawable `toml:"vectorDrawable" yaml:"vectorDrawable"`
	ImageVector    ImageVector    `toml:"imageVector" yaml:"imageVector"`
}

// VectorDrawable configures the Android XML output.
type VectorDrawable struct {
	AutoMirrored bool `toml:"autoMirrored" yaml:"autoMirrored"`
}

// ImageVector configures the Kotlin output.
// The keys of ColorMappings are hex colors or "*", and its values
// Kotlin expressions.
type ImageVector struct {
	Package         string            `toml:"package" yaml:"package"`
	ExtensionTarget string            `toml:"extensionTarget" yaml:"extensionTarget"`
	ColorMappings   map[string]string `toml:"colorMappings" yaml:"colorMappings"`
	GeneratePreview bool              `toml:"generatePreview" yaml:"generatePreview"`
}

// Load decodes a configuration. Unknown fields are rejected.
func Load(r io.Reader, format Format) (Config, error) {
	var (
		c   Config
		err error
	)
	switch format {
	case TOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&c)
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&c)
		if err == io.EOF { // empty document
			err = nil
		}
	default:
		return c, errUnknownFormat
	}
	if err != nil {
		return c, fmt.Errorf("reading %s configuration: %w", format, err)
	}
	if _, err := c.ParseOptions(); err != nil {
		return c, err
	}
	return c, nil
}

// ParseOptions returns the options of the SVG parser.
func (c Config) ParseOptions() (svgicon.Options, error) {
	mode, err := svgicon.ParseErrorMode(c.ErrorMode)
	if err != nil {
		return svgicon.Options{}, err
	}
	return svgicon.Options{ErrorMode: mode}, nil
}

func (c Config) DrawableOptions() svgdrawable.Options {
	return svgdrawable.Options{AutoMirrored: c.VectorDrawable.AutoMirrored}
}

// ComposeOptions returns the options of the Kotlin generator,
// for the icon `name`.
func (c Config) ComposeOptions(name string) svgcompose.Options {
	return svgcompose.Options{
		Package:         c.ImageVector.Package,
		Name:            name,
		ExtensionTarget: c.ImageVector.ExtensionTarget,
		ColorMappings:   c.ImageVector.ColorMappings,
		GeneratePreview: c.ImageVector.GeneratePreview,
	}
}
