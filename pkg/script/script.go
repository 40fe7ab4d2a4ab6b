// Package script loads GamerScript source files and decodes them to UTF-8.
package script

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source encodings accepted by Load and Decode.
const (
	EncodingAuto     = "auto"
	EncodingUTF8     = "utf-8"
	EncodingUTF16    = "utf-16"
	EncodingShiftJIS = "shift-jis"
)

// Extension is the file extension of GamerScript sources.
const Extension = ".gs"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Script is a decoded source file.
type Script struct {
	FileName string // base name, or the path below the Loader root
	Content  string // UTF-8 content
	Size     int64  // size in bytes before decoding
	Encoding string // encoding the content was decoded from
}

// ValidEncoding reports whether name is an encoding Decode understands.
func ValidEncoding(name string) bool {
	switch strings.ToLower(name) {
	case EncodingAuto, EncodingUTF8, EncodingUTF16, EncodingShiftJIS:
		return true
	}
	return false
}

// Load reads the file at path and decodes it with the given encoding.
func Load(path, encodingName string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return newScript(filepath.Base(path), data, encodingName)
}

// Decode converts raw source bytes to UTF-8 and returns the content along
// with the encoding that was used.
//
// EncodingAuto honours a UTF-8 or UTF-16 byte order mark. Without one the
// bytes are taken as UTF-8, falling back to Shift-JIS when they are not
// valid UTF-8.
func Decode(data []byte, encodingName string) (string, string, error) {
	name := strings.ToLower(encodingName)
	if name == "" {
		name = EncodingAuto
	}

	if name == EncodingAuto {
		switch {
		case bytes.HasPrefix(data, bomUTF8):
			name = EncodingUTF8
		case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
			name = EncodingUTF16
		case utf8.Valid(data):
			name = EncodingUTF8
		default:
			name = EncodingShiftJIS
		}
	}

	var enc encoding.Encoding
	switch name {
	case EncodingUTF8:
		enc = unicode.UTF8BOM
	case EncodingUTF16:
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case EncodingShiftJIS:
		enc = japanese.ShiftJIS
	default:
		return "", "", fmt.Errorf("unsupported encoding %q", encodingName)
	}

	reader := transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return string(decoded), name, nil
}

func newScript(fileName string, data []byte, encodingName string) (*Script, error) {
	content, used, err := Decode(data, encodingName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return &Script{
		FileName: fileName,
		Content:  content,
		Size:     int64(len(data)),
		Encoding: used,
	}, nil
}

// Loader loads every GamerScript file below a root directory.
type Loader struct {
	fsys     fs.FS
	encoding string
}

// NewLoader creates a Loader over the directory dir.
func NewLoader(dir, encodingName string) *Loader {
	return NewFSLoader(os.DirFS(dir), encodingName)
}

// NewFSLoader creates a Loader over an arbitrary file system, such as an
// embed.FS or an fstest.MapFS.
func NewFSLoader(fsys fs.FS, encodingName string) *Loader {
	return &Loader{fsys: fsys, encoding: encodingName}
}

// LoadAllScripts loads every file with the .gs extension, compared
// case-insensitively, in lexical path order.
func (l *Loader) LoadAllScripts() ([]Script, error) {
	files, err := l.findScriptFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to find script files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", Extension)
	}

	scripts := make([]Script, 0, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to load script %s: %w", name, err)
		}
		s, err := newScript(name, data, l.encoding)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, *s)
	}
	return scripts, nil
}

func (l *Loader) findScriptFiles() ([]string, error) {
	var files []string
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), Extension) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
