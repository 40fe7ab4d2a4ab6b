package highlight

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/zurustar/gamerscript/pkg/compiler/lexer"
	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	return tokens
}

func TestColorFor(t *testing.T) {
	theme := DefaultTheme()
	tests := []struct {
		tok  token.Token
		want string
	}{
		{token.Token{Type: token.VAR, Literal: "loot"}, "#e6cd69"},
		{token.Token{Type: token.TRUE, Literal: "buffed"}, "#e6cd69"},
		{token.Token{Type: token.PLUS, Literal: "+"}, "#9fca56"},
		{token.Token{Type: token.LTE, Literal: "<="}, "#9fca56"},
		{token.Token{Type: token.LBRACE, Literal: "{"}, "#cfd2d1"},
		{token.Token{Type: token.COMMENT, Literal: "xX c Xx"}, "#41535b"},
		{token.Token{Type: token.NUMBER, Literal: "1"}, "#cd3f45"},
		{token.Token{Type: token.STRING, Literal: `"s"`}, "#55b5db"},
		{token.Token{Type: token.IDENT, Literal: "a"}, "#55b5db"},
		{token.Token{Type: token.WHITESPACE, Literal: " "}, "#55b5db"},
	}

	for _, tt := range tests {
		if got := theme.ColorFor(tt.tok); got != tt.want {
			t.Errorf("ColorFor(%s) = %s, want %s", tt.tok.Type, got, tt.want)
		}
	}
}

func TestHTML(t *testing.T) {
	got := HTML(tokenize(t, "loot a = \"<b>\"\n"))
	want := `<code style='font-family:"Hack-Regular", monospace;'>` +
		`<span style='color:#e6cd69;'>loot</span>` +
		`<span style='color:#55b5db;'>&nbsp;</span>` +
		`<span style='color:#55b5db;'>a</span>` +
		`<span style='color:#55b5db;'>&nbsp;</span>` +
		`<span style='color:#9fca56;'>=</span>` +
		`<span style='color:#55b5db;'>&nbsp;</span>` +
		`<span style='color:#55b5db;'>&#34;&lt;b&gt;&#34;</span>` +
		`<span style='color:#55b5db;'><br></span>` +
		`</code>`
	if got != want {
		t.Errorf("HTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestHTMLEmpty(t *testing.T) {
	want := `<code style='font-family:"Hack-Regular", monospace;'></code>`
	if got := HTML(tokenize(t, "")); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#151718", color.RGBA{0x15, 0x17, 0x18, 0xff}, false},
		{"#FFF", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"151718", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTheme(t *testing.T) {
	path := writeTheme(t, "keyword: \"#ff0000\"\npadding: 4\nline_spacing: 0\n")

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	if theme.Keyword != "#ff0000" {
		t.Errorf("Keyword = %s, want #ff0000", theme.Keyword)
	}
	if theme.Padding != 4 || theme.LineSpacing != 0 {
		t.Errorf("Padding = %d, LineSpacing = %d", theme.Padding, theme.LineSpacing)
	}
	if theme.Background != DefaultTheme().Background || theme.FontSize != DefaultFontSize {
		t.Error("unset keys should keep their defaults")
	}
}

func TestLoadThemeEmptyFile(t *testing.T) {
	theme, err := LoadTheme(writeTheme(t, ""))
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	if *theme != *DefaultTheme() {
		t.Errorf("empty theme = %+v, want defaults", *theme)
	}
}

func TestLoadThemeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown key", "keywords: \"#ff0000\"\n", "not found"},
		{"bad color", "comment: red\n", "comment"},
		{"bad size", "font_size: 0\n", "font_size"},
		{"negative padding", "padding: -1\n", "padding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTheme(writeTheme(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRenderSize(t *testing.T) {
	r, err := NewImageRenderer(nil)
	if err != nil {
		t.Fatalf("NewImageRenderer() error = %v", err)
	}
	defer r.Close()

	img, err := r.Render(tokenize(t, "loot a = 1\nloot bb = 22\n"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	m := basicfont.Face7x13.Metrics()
	lineHeight := (m.Ascent + m.Descent).Ceil() + DefaultLineSpacing
	wantWidth := len("loot bb = 22")*basicfont.Face7x13.Advance + 2*DefaultPadding
	wantHeight := 3*lineHeight + 2*DefaultPadding

	if got := img.Bounds().Size(); got != image.Pt(wantWidth, wantHeight) {
		t.Errorf("size = %v, want %v", got, image.Pt(wantWidth, wantHeight))
	}
}

func TestRenderColors(t *testing.T) {
	theme := DefaultTheme()
	r, err := NewImageRenderer(theme)
	if err != nil {
		t.Fatalf("NewImageRenderer() error = %v", err)
	}
	defer r.Close()

	img, err := r.Render(tokenize(t, "loot\n123"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	bg, _ := ParseHexColor(theme.Background)
	if got := img.RGBAAt(0, 0); got != bg {
		t.Errorf("corner pixel = %v, want background %v", got, bg)
	}

	lineHeight := r.lineHeight()
	keyword, _ := ParseHexColor(theme.Keyword)
	number, _ := ParseHexColor(theme.Number)

	firstLine := image.Rect(DefaultPadding, DefaultPadding, DefaultPadding+4*7, DefaultPadding+lineHeight)
	secondLine := firstLine.Add(image.Pt(0, lineHeight))
	if !containsColor(img, firstLine, keyword) {
		t.Error("keyword color not drawn on the first line")
	}
	if containsColor(img, firstLine, number) {
		t.Error("number color drawn on the first line")
	}
	if !containsColor(img, secondLine, number) {
		t.Error("number color not drawn on the second line")
	}
}

func containsColor(img *image.RGBA, rect image.Rectangle, c color.RGBA) bool {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				return true
			}
		}
	}
	return false
}

func TestWritePNG(t *testing.T) {
	r, err := NewImageRenderer(nil)
	if err != nil {
		t.Fatalf("NewImageRenderer() error = %v", err)
	}
	defer r.Close()

	var buf bytes.Buffer
	if err := r.WritePNG(&buf, tokenize(t, "taunt(\"hi\")")); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() <= 2*DefaultPadding {
		t.Errorf("image width %d leaves no room for text", img.Bounds().Dx())
	}
}

func TestNewImageRendererErrors(t *testing.T) {
	theme := DefaultTheme()
	theme.Font = filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := NewImageRenderer(theme); err == nil {
		t.Error("expected error for missing font")
	}

	notFont := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(notFont, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	theme.Font = notFont
	if _, err := NewImageRenderer(theme); err == nil {
		t.Error("expected error for invalid font data")
	}

	bad := DefaultTheme()
	bad.Keyword = "yellow"
	if _, err := NewImageRenderer(bad); err == nil {
		t.Error("expected error for invalid color")
	}
}
