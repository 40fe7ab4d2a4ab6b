package highlight

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/zurustar/gamerscript/pkg/compiler/lexer"
	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

// ImageRenderer draws token streams onto an RGBA canvas.
type ImageRenderer struct {
	theme   *Theme
	face    font.Face
	palette map[string]color.RGBA
}

// NewImageRenderer prepares the font face and palette of theme. A nil
// theme selects DefaultTheme.
func NewImageRenderer(theme *Theme) (*ImageRenderer, error) {
	if theme == nil {
		theme = DefaultTheme()
	}
	if err := theme.Validate(); err != nil {
		return nil, err
	}

	r := &ImageRenderer{
		theme:   theme,
		face:    basicfont.Face7x13,
		palette: make(map[string]color.RGBA),
	}
	for _, hex := range []string{
		theme.Background, theme.Keyword, theme.Identifier, theme.Operator,
		theme.Delimiter, theme.Comment, theme.Number, theme.String,
	} {
		r.palette[hex], _ = ParseHexColor(hex)
	}

	if theme.Font != "" {
		face, err := loadFace(theme.Font, theme.FontSize)
		if err != nil {
			return nil, err
		}
		r.face = face
	}
	return r, nil
}

// Close releases the font face.
func (r *ImageRenderer) Close() error {
	return r.face.Close()
}

// lineHeight is the vertical distance between two baselines.
func (r *ImageRenderer) lineHeight() int {
	m := r.face.Metrics()
	return (m.Ascent + m.Descent).Ceil() + r.theme.LineSpacing
}

// Size returns the canvas size needed for tokens.
func (r *ImageRenderer) Size(tokens []token.Token) image.Point {
	var source strings.Builder
	for _, tok := range tokens {
		source.WriteString(tok.Literal)
	}

	lines := strings.Split(source.String(), "\n")
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(r.face, displayText(line)).Ceil())
	}

	pad := r.theme.Padding
	return image.Pt(width+pad*2, len(lines)*r.lineHeight()+pad*2)
}

// Render draws tokens left to right; each newline moves the pen back to
// the left padding and down one line.
func (r *ImageRenderer) Render(tokens []token.Token) (*image.RGBA, error) {
	size := r.Size(tokens)
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(r.palette[r.theme.Background]), image.Point{}, draw.Src)

	pad := r.theme.Padding
	ascent := r.face.Metrics().Ascent
	lineHeight := r.lineHeight()

	drawer := &font.Drawer{
		Dst:  img,
		Face: r.face,
		Dot:  fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad) + ascent},
	}

	line := 0
	for _, tok := range tokens {
		if tok.Type == token.EOF {
			continue
		}
		hex := r.theme.ColorFor(tok)
		c, ok := r.palette[hex]
		if !ok {
			return nil, fmt.Errorf("no color for %s", tok.Type)
		}
		drawer.Src = image.NewUniform(c)

		for i, segment := range strings.Split(tok.Literal, "\n") {
			if i > 0 {
				line++
				drawer.Dot = fixed.Point26_6{
					X: fixed.I(pad),
					Y: fixed.I(pad+line*lineHeight) + ascent,
				}
			}
			drawer.DrawString(displayText(segment))
		}
	}
	return img, nil
}

// WritePNG renders tokens and encodes the result as PNG.
func (r *ImageRenderer) WritePNG(w io.Writer, tokens []token.Token) error {
	img, err := r.Render(tokens)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// displayText expands tabs and drops carriage returns, which have no
// glyph.
func displayText(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.ReplaceAll(s, "\t", lexer.TabLiteral)
}

// loadFace loads a TrueType font, or the first font of a collection.
func loadFace(path string, size float64) (font.Face, error) {
	fontData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}

	tt, err := opentype.Parse(fontData)
	if err != nil {
		collection, cerr := opentype.ParseCollection(fontData)
		if cerr != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
		}
		if collection.NumFonts() == 0 {
			return nil, fmt.Errorf("font collection %s is empty", path)
		}
		if tt, err = collection.Font(0); err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", path, err)
		}
	}

	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face for %s: %w", path, err)
	}
	return face, nil
}
