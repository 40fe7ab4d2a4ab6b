package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zurustar/gamerscript/pkg/interpreter"
	"github.com/zurustar/gamerscript/pkg/script"
)

// 出力形式
const (
	HighlightHTML = "html"
	HighlightPNG  = "png"
)

// Mode は実行モードを表す
type Mode int

const (
	ModeRun       Mode = iota // プログラムを実行
	ModeTokens                // トークン列を表示
	ModeAST                   // 構文木を表示
	ModeHighlight             // シンタックスハイライトを出力
	ModeCheck                 // コンパイルのみ
)

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	case ModeTokens:
		return "tokens"
	case ModeAST:
		return "ast"
	case ModeHighlight:
		return "highlight"
	case ModeCheck:
		return "check"
	}
	return "unknown"
}

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	SourcePath   string // スクリプトファイル（--check ではディレクトリも可）
	LogLevel     string // ログレベル（debug, info, warn, error）
	Encoding     string // ソースの文字コード（auto, utf-8, utf-16, shift-jis）
	Highlight    string // ハイライト出力形式（html, png）
	OutputPath   string // ハイライトの出力先（空なら標準出力）
	ThemePath    string // テーマファイル（YAML）
	DumpTokens   bool
	DumpAST      bool
	Check        bool
	MaxCallDepth int  // 関数呼び出しの最大深さ
	ShowHelp     bool // ヘルプ表示フラグ
}

// Mode は設定から実行モードを決める
func (c *Config) Mode() Mode {
	switch {
	case c.DumpTokens:
		return ModeTokens
	case c.DumpAST:
		return ModeAST
	case c.Highlight != "":
		return ModeHighlight
	case c.Check:
		return ModeCheck
	}
	return ModeRun
}

// 値を取らないフラグ
var boolFlags = map[string]bool{
	"h":      true,
	"help":   true,
	"tokens": true,
	"ast":    true,
	"check":  true,
}

// ParseArgs コマンドライン引数を解析してConfigを返す
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("gamerscript", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	config := &Config{}

	fs.StringVar(&config.LogLevel, "log-level", "warn", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&config.LogLevel, "l", "warn", "ログレベル（短縮形）")
	fs.StringVar(&config.Encoding, "encoding", script.EncodingAuto, "ソースの文字コード")
	fs.StringVar(&config.Encoding, "e", script.EncodingAuto, "ソースの文字コード（短縮形）")
	fs.StringVar(&config.Highlight, "highlight", "", "ハイライト出力形式（html, png）")
	fs.StringVar(&config.OutputPath, "output", "", "出力ファイル")
	fs.StringVar(&config.OutputPath, "o", "", "出力ファイル（短縮形）")
	fs.StringVar(&config.ThemePath, "theme", "", "テーマファイル（YAML）")
	fs.BoolVar(&config.DumpTokens, "tokens", false, "トークン列を表示")
	fs.BoolVar(&config.DumpAST, "ast", false, "構文木を表示")
	fs.BoolVar(&config.Check, "check", false, "コンパイルのみ行う")
	fs.IntVar(&config.MaxCallDepth, "max-depth", interpreter.DefaultMaxCallDepth, "関数呼び出しの最大深さ")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}
	if config.ShowHelp {
		return config, nil
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// 環境変数からの設定（コマンドラインフラグが優先）
	if !set["log-level"] && !set["l"] {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = logLevelEnv
		}
	}
	if !set["encoding"] && !set["e"] {
		if encodingEnv := os.Getenv("GAMERSCRIPT_ENCODING"); encodingEnv != "" {
			config.Encoding = encodingEnv
		}
	}
	config.LogLevel = strings.ToLower(config.LogLevel)
	config.Encoding = strings.ToLower(config.Encoding)
	config.Highlight = strings.ToLower(config.Highlight)

	// ログレベルの検証
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if !script.ValidEncoding(config.Encoding) {
		return nil, fmt.Errorf("invalid encoding: %s (must be auto, utf-8, utf-16, or shift-jis)", config.Encoding)
	}

	if config.Highlight != "" && config.Highlight != HighlightHTML && config.Highlight != HighlightPNG {
		return nil, fmt.Errorf("invalid highlight format: %s (must be html or png)", config.Highlight)
	}

	if config.MaxCallDepth <= 0 {
		return nil, fmt.Errorf("max-depth must be positive, got %d", config.MaxCallDepth)
	}

	// 出力モードは一つだけ
	modes := 0
	for _, on := range []bool{config.DumpTokens, config.DumpAST, config.Highlight != "", config.Check} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return nil, fmt.Errorf("--tokens, --ast, --highlight and --check are mutually exclusive")
	}

	if config.OutputPath != "" && config.Highlight == "" {
		return nil, fmt.Errorf("--output requires --highlight")
	}
	if config.ThemePath != "" && config.Highlight == "" {
		return nil, fmt.Errorf("--theme requires --highlight")
	}

	// 位置引数（スクリプトのパス）
	switch fs.NArg() {
	case 0:
		return nil, fmt.Errorf("source path is required")
	case 1:
		config.SourcePath = fs.Arg(0)
	default:
		return nil, fmt.Errorf("too many arguments: %s", strings.Join(fs.Args(), " "))
	}

	return config, nil
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string
	terminated := false

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--" 以降はすべて位置引数
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			terminated = true
			break
		}

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 1 && arg[0] == '-' {
			flags = append(flags, arg)

			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") || boolFlags[name] {
				continue
			}

			// 次の引数を値として取り込む（-o out.html のような場合）
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				i++
				flags = append(flags, args[i])
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置
	if terminated {
		flags = append(flags, "--")
	}
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `gamerscript - GamerScript Interpreter

Usage:
  gamerscript [options] <source>

Arguments:
  source    実行するスクリプト（.gs）のパス
            --check ではディレクトリも指定でき、配下の .gs ファイルをすべてコンパイルする

Options:
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: warn）
  -e, --encoding <name>       文字コード: auto, utf-8, utf-16, shift-jis（デフォルト: auto）
  --tokens                    トークン列を表示して終了
  --ast                       構文木を表示して終了
  --check                     コンパイルのみ行い、エラーを報告
  --highlight <format>        シンタックスハイライトを出力: html, png
  -o, --output <path>         ハイライトの出力先（デフォルト: 標準出力）
  --theme <path>              ハイライトのテーマ（YAML）
  --max-depth <n>             関数呼び出しの最大深さ（デフォルト: %d）
  -h, --help                  このヘルプを表示

Environment Variables:
  LOG_LEVEL=<level>              ログレベル
  GAMERSCRIPT_ENCODING=<name>    文字コード

Examples:
  gamerscript samples/hello.gs
  gamerscript --ast samples/fibonacci.gs
  gamerscript --check samples
  gamerscript --highlight png -o hello.png samples/hello.gs
  LOG_LEVEL=debug gamerscript samples/loop.gs
`, interpreter.DefaultMaxCallDepth)
}
