// Package interpreter executes GamerScript programs by walking the AST.
//
// All variables live in a single Environment. Functions are registered in
// a global table when their declaration executes, and a call rolls back
// every variable change it made once it returns.
package interpreter

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/zurustar/gamerscript/pkg/compiler/ast"
	"github.com/zurustar/gamerscript/pkg/logger"
)

// DefaultMaxCallDepth is the call depth at which a call fails with
// STACK_OVERFLOW.
const DefaultMaxCallDepth = 1000

// StackFrame records an active user function call.
type StackFrame struct {
	FunctionName string
	Line         int // line of the call site
}

// Interpreter runs GamerScript statements. It is not safe for concurrent
// use.
type Interpreter struct {
	env       *Environment
	functions map[string]*ast.FunctionStatement
	builtins  map[string]*builtin
	callStack []StackFrame

	out   *bufio.Writer
	in    *bufio.Reader
	sleep func(time.Duration)

	maxCallDepth int

	log *slog.Logger
}

// Option is a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithOutput sets the sink written by print and input prompts.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		in.out = bufio.NewWriter(w)
	}
}

// WithInput sets the source read by the input built-in.
func WithInput(r io.Reader) Option {
	return func(in *Interpreter) {
		in.in = bufio.NewReader(r)
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(in *Interpreter) {
		in.log = log
	}
}

// WithSleepFunc replaces time.Sleep for the sleep built-ins.
func WithSleepFunc(sleep func(time.Duration)) Option {
	return func(in *Interpreter) {
		in.sleep = sleep
	}
}

// WithMaxCallDepth sets the maximum nesting of user function calls.
// Values below 1 keep the default.
func WithMaxCallDepth(depth int) Option {
	return func(in *Interpreter) {
		if depth > 0 {
			in.maxCallDepth = depth
		}
	}
}

// New creates an Interpreter with an empty environment.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		env:          NewEnvironment(),
		functions:    make(map[string]*ast.FunctionStatement),
		out:          bufio.NewWriter(os.Stdout),
		in:           bufio.NewReader(os.Stdin),
		sleep:        time.Sleep,
		maxCallDepth: DefaultMaxCallDepth,
		log:          logger.GetLogger(),
	}

	for _, opt := range opts {
		opt(in)
	}

	in.builtins = defaultBuiltins()

	return in
}

// Interpret executes statements in order. It stops at the first error;
// output written so far is flushed either way.
func (in *Interpreter) Interpret(stmts []ast.Statement) (err error) {
	defer func() {
		if flushErr := in.out.Flush(); err == nil {
			err = flushErr
		}
	}()

	in.log.Debug("interpretation started", "statements", len(stmts))
	for _, stmt := range stmts {
		if _, err := in.execute(stmt); err != nil {
			in.log.Debug("interpretation stopped", "error", err)
			return err
		}
	}
	in.log.Debug("interpretation finished", "variables", in.env.Size(), "functions", len(in.functions))
	return nil
}

// Environment returns the live variable environment.
func (in *Interpreter) Environment() *Environment {
	return in.env
}

// Function looks up a declared user function.
func (in *Interpreter) Function(name string) (*ast.FunctionStatement, bool) {
	fn, ok := in.functions[name]
	return fn, ok
}

// CallStack returns a copy of the active call frames, outermost first.
func (in *Interpreter) CallStack() []StackFrame {
	return append([]StackFrame(nil), in.callStack...)
}

// IsBuiltin reports whether name resolves to a built-in function.
func (in *Interpreter) IsBuiltin(name string) bool {
	_, ok := in.builtins[name]
	return ok
}
