// Package highlight renders GamerScript token streams as colored HTML or
// PNG images.
package highlight

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

// Default layout of rendered images.
const (
	DefaultFontSize    = 32
	DefaultPadding     = 32
	DefaultLineSpacing = 8
)

// Theme holds the palette and layout used by both renderers. Colors are
// hex strings such as "#e6cd69".
type Theme struct {
	Background string `yaml:"background"`
	Keyword    string `yaml:"keyword"`
	Identifier string `yaml:"identifier"`
	Operator   string `yaml:"operator"`
	Delimiter  string `yaml:"delimiter"`
	Comment    string `yaml:"comment"`
	Number     string `yaml:"number"`
	String     string `yaml:"string"`

	Font        string  `yaml:"font"` // TrueType/OpenType file; empty selects the built-in bitmap font
	FontSize    float64 `yaml:"font_size"`
	Padding     int     `yaml:"padding"`
	LineSpacing int     `yaml:"line_spacing"`
}

// DefaultTheme returns the standard dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Background:  "#151718",
		Keyword:     "#e6cd69",
		Identifier:  "#55b5db",
		Operator:    "#9fca56",
		Delimiter:   "#cfd2d1",
		Comment:     "#41535b",
		Number:      "#cd3f45",
		String:      "#55b5db",
		FontSize:    DefaultFontSize,
		Padding:     DefaultPadding,
		LineSpacing: DefaultLineSpacing,
	}
}

// LoadTheme reads a YAML theme file. Keys that are absent keep their
// default values; unknown keys are rejected.
func LoadTheme(path string) (*Theme, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("theme: open %s: %w", path, err)
	}
	defer file.Close()

	theme := DefaultTheme()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(theme); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("theme: parse %s: %w", path, err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("theme: %s: %w", path, err)
	}
	return theme, nil
}

// Validate checks every color and layout value.
func (t *Theme) Validate() error {
	colors := []struct {
		key   string
		value string
	}{
		{"background", t.Background},
		{"keyword", t.Keyword},
		{"identifier", t.Identifier},
		{"operator", t.Operator},
		{"delimiter", t.Delimiter},
		{"comment", t.Comment},
		{"number", t.Number},
		{"string", t.String},
	}
	var errs []error
	for _, c := range colors {
		if _, err := ParseHexColor(c.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.key, err))
		}
	}
	if t.FontSize <= 0 {
		errs = append(errs, fmt.Errorf("font_size must be positive, got %g", t.FontSize))
	}
	if t.Padding < 0 {
		errs = append(errs, fmt.Errorf("padding must be non-negative, got %d", t.Padding))
	}
	if t.LineSpacing < 0 {
		errs = append(errs, fmt.Errorf("line_spacing must be non-negative, got %d", t.LineSpacing))
	}
	return errors.Join(errs...)
}

// ColorFor returns the hex color of a token. Whitespace, newlines and
// identifiers share the identifier color.
func (t *Theme) ColorFor(tok token.Token) string {
	switch {
	case tok.Type.IsKeyword():
		return t.Keyword
	case tok.Type.IsOperator():
		return t.Operator
	case tok.Type.IsDelimiter():
		return t.Delimiter
	}

	switch tok.Type {
	case token.COMMENT:
		return t.Comment
	case token.NUMBER:
		return t.Number
	case token.STRING:
		return t.String
	}
	return t.Identifier
}

// ParseHexColor parses "#rrggbb" or "#rgb".
func ParseHexColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("invalid color %q: missing '#'", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #rrggbb or #rgb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
