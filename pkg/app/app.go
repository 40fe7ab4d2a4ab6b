package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zurustar/gamerscript/pkg/cli"
	"github.com/zurustar/gamerscript/pkg/compiler"
	"github.com/zurustar/gamerscript/pkg/compiler/ast"
	"github.com/zurustar/gamerscript/pkg/compiler/token"
	"github.com/zurustar/gamerscript/pkg/highlight"
	"github.com/zurustar/gamerscript/pkg/interpreter"
	"github.com/zurustar/gamerscript/pkg/logger"
	"github.com/zurustar/gamerscript/pkg/script"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config *cli.Config
	log    *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option はApplicationの設定を変更する
type Option func(*Application)

// WithStdin スクリプトの入力元を設定
func WithStdin(r io.Reader) Option {
	return func(app *Application) { app.stdin = r }
}

// WithStdout スクリプトと各種ダンプの出力先を設定
func WithStdout(w io.Writer) Option {
	return func(app *Application) { app.stdout = w }
}

// WithStderr ログの出力先を設定
func WithStderr(w io.Writer) Option {
	return func(app *Application) { app.stderr = w }
}

// New Applicationを作成
func New(opts ...Option) *Application {
	app := &Application{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run アプリケーションを実行
// スクリプトが gameover を呼んだ場合は *interpreter.ExitError を返す
func (app *Application) Run(args []string) error {
	if len(args) == 0 {
		cli.PrintHelp(app.stdout)
		return nil
	}

	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp(app.stdout)
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	mode := app.config.Mode()
	app.log.Info("Application started", "mode", mode, "source", app.config.SourcePath)

	// --check はディレクトリを受け付けるのでスクリプトを先に読まない
	if mode == cli.ModeCheck {
		return app.check()
	}

	// 3. スクリプトの読み込み
	s, err := script.Load(app.config.SourcePath, app.config.Encoding)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	app.log.Info("Script loaded", "name", s.FileName, "size", s.Size, "encoding", s.Encoding)
	app.log.Debug("Script content preview", "name", s.FileName, "preview", truncate(s.Content, 100))

	// 4. モードごとの処理
	switch mode {
	case cli.ModeTokens:
		return app.dumpTokens(s)
	case cli.ModeAST:
		return app.dumpAST(s)
	case cli.ModeHighlight:
		return app.highlight(s)
	}
	return app.run(s)
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	if err := logger.InitLoggerWithWriter(app.config.LogLevel, app.stderr); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// run スクリプトをコンパイルして実行
func (app *Application) run(s *script.Script) error {
	stmts, err := compiler.Compile(s.Content)
	if err != nil {
		return err
	}
	app.log.Info("Script compiled successfully", "statements", len(stmts))

	in := interpreter.New(
		interpreter.WithInput(app.stdin),
		interpreter.WithOutput(app.stdout),
		interpreter.WithLogger(app.log),
		interpreter.WithMaxCallDepth(app.config.MaxCallDepth),
	)
	if err := in.Interpret(stmts); err != nil {
		var exitErr *interpreter.ExitError
		if errors.As(err, &exitErr) {
			app.log.Info("Script exited", "code", exitErr.Code)
		}
		return err
	}

	app.log.Info("Application terminated normally")
	return nil
}

// dumpTokens トークン列を表示（空白とコメントも含む）
func (app *Application) dumpTokens(s *script.Script) error {
	tokens, err := compiler.Tokenize(s.Content)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(app.stdout, formatToken(tok)); err != nil {
			return err
		}
	}
	return nil
}

// formatToken "行:列 種類 リテラル" の形式
func formatToken(tok token.Token) string {
	return fmt.Sprintf("%d:%d\t%s\t%q", tok.Line, tok.Column, tok.Type, tok.Literal)
}

// dumpAST 構文木を表示
func (app *Application) dumpAST(s *script.Script) error {
	stmts, err := compiler.Compile(s.Content)
	if err != nil {
		return err
	}
	return ast.Fprint(app.stdout, &ast.Program{Statements: stmts})
}

// highlight シンタックスハイライトを出力
func (app *Application) highlight(s *script.Script) error {
	tokens, err := compiler.Tokenize(s.Content)
	if err != nil {
		return err
	}

	theme := highlight.DefaultTheme()
	if app.config.ThemePath != "" {
		if theme, err = highlight.LoadTheme(app.config.ThemePath); err != nil {
			return err
		}
	}

	if app.config.OutputPath == "" {
		if err := app.writeHighlight(app.stdout, theme, tokens); err != nil {
			return err
		}
	} else {
		f, err := os.Create(app.config.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		if err := app.writeHighlight(f, theme, tokens); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output: %w", err)
		}
	}

	app.log.Info("Highlight written", "format", app.config.Highlight, "tokens", len(tokens), "output", app.config.OutputPath)
	return nil
}

// writeHighlight 指定された形式でハイライト結果を書き出す
func (app *Application) writeHighlight(w io.Writer, theme *highlight.Theme, tokens []token.Token) error {
	switch app.config.Highlight {
	case cli.HighlightHTML:
		if _, err := io.WriteString(w, theme.HTML(tokens)); err != nil {
			return fmt.Errorf("failed to write html: %w", err)
		}
	case cli.HighlightPNG:
		r, err := highlight.NewImageRenderer(theme)
		if err != nil {
			return err
		}
		defer r.Close()
		return r.WritePNG(w, tokens)
	}
	return nil
}

// check コンパイルのみ行い、結果を一覧表示する
func (app *Application) check() error {
	info, err := os.Stat(app.config.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}

	var results []compiler.CompileResult
	if info.IsDir() {
		if results, err = compiler.CompileDirectory(app.config.SourcePath, app.config.Encoding); err != nil {
			return err
		}
	} else {
		stmts, err := compiler.CompileFile(app.config.SourcePath, app.config.Encoding)
		results = []compiler.CompileResult{{FileName: info.Name(), Statements: stmts, Err: err}}
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(app.stdout, "FAIL\t%v\n", r.Err)
			continue
		}
		fmt.Fprintf(app.stdout, "ok\t%s\t%d statements\n", r.FileName, len(r.Statements))
	}
	app.log.Info("Check finished", "scripts", len(results), "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed to compile", failed, len(results))
	}
	return nil
}

// truncate 文字列を指定した長さで切り詰める
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
