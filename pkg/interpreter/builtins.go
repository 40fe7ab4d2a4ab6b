package interpreter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Built-in function names.
const (
	BuiltinPrint     = "taunt"
	BuiltinInput     = "quest"
	BuiltinSleepSec  = "afk"
	BuiltinSleepMs   = "lag"
	BuiltinToNumber  = "stat"
	BuiltinToString  = "chat"
	BuiltinToBoolean = "patch"
	BuiltinExit      = "gameover"
)

// builtinFunc receives arguments that have already been evaluated and
// count-checked.
type builtinFunc func(in *Interpreter, args []Value, line int) (Value, error)

type builtin struct {
	name    string
	minArgs int
	maxArgs int
	fn      builtinFunc
}

func defaultBuiltins() map[string]*builtin {
	list := []*builtin{
		{BuiltinPrint, 0, 2, builtinPrint},
		{BuiltinInput, 0, 1, builtinInput},
		{BuiltinSleepSec, 1, 1, sleepFor(time.Second)},
		{BuiltinSleepMs, 1, 1, sleepFor(time.Millisecond)},
		{BuiltinToNumber, 1, 1, builtinToNumber},
		{BuiltinToString, 1, 1, builtinToString},
		{BuiltinToBoolean, 1, 1, builtinToBoolean},
		{BuiltinExit, 1, 1, builtinExit},
	}

	builtins := make(map[string]*builtin, len(list))
	for _, b := range list {
		builtins[b.name] = b
	}
	return builtins
}

func (in *Interpreter) callBuiltin(b *builtin, args []Value, line int) (Value, error) {
	if len(args) < b.minArgs || len(args) > b.maxArgs {
		want := strconv.Itoa(b.minArgs)
		if b.minArgs != b.maxArgs {
			want = fmt.Sprintf("%d to %d", b.minArgs, b.maxArgs)
		}
		return Null, newArgumentCountError(b.name, want, len(args), line)
	}
	in.log.Debug("builtin call", "name", b.name, "args", len(args), "line", line)
	return b.fn(in, args, line)
}

// taunt([value [, newline]]) writes value and, unless newline is falsy, a
// line break.
func builtinPrint(in *Interpreter, args []Value, line int) (Value, error) {
	text := ""
	if len(args) > 0 {
		text = args[0].String()
	}
	if len(args) < 2 || args[1].Truthy() {
		text += "\n"
	}
	if _, err := in.out.WriteString(text); err != nil {
		return Null, fmt.Errorf("failed to write output: %w", err)
	}
	if err := in.out.Flush(); err != nil {
		return Null, fmt.Errorf("failed to write output: %w", err)
	}
	return Null, nil
}

// quest([prompt]) prints the prompt on its own line and reads one line of
// input. It returns null when the input is exhausted.
func builtinInput(in *Interpreter, args []Value, line int) (Value, error) {
	if len(args) > 0 {
		if _, err := builtinPrint(in, args[:1], line); err != nil {
			return Null, err
		}
	} else if err := in.out.Flush(); err != nil {
		return Null, fmt.Errorf("failed to write output: %w", err)
	}

	text, err := in.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return Null, fmt.Errorf("failed to read input: %w", err)
		}
		if text == "" {
			return Null, nil
		}
	}
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return StringValue(text), nil
}

func sleepFor(unit time.Duration) builtinFunc {
	return func(in *Interpreter, args []Value, line int) (Value, error) {
		amount := args[0]
		if amount.Kind != KindNumber || math.IsNaN(amount.Num) || amount.Num < 0 {
			return Null, NewRuntimeError(ErrorInvalidArgument, line,
				"sleep duration must be a non-negative number, got %s", describeValue(amount))
		}
		d := time.Duration(amount.Num * float64(unit))
		if amount.Num*float64(unit) >= math.MaxInt64 {
			d = time.Duration(math.MaxInt64)
		}
		if err := in.out.Flush(); err != nil {
			return Null, fmt.Errorf("failed to write output: %w", err)
		}
		in.sleep(d)
		return Null, nil
	}
}

// stat(value) converts null to 0, booleans to 1 or 0 and parses strings.
func builtinToNumber(in *Interpreter, args []Value, line int) (Value, error) {
	v := args[0]
	switch v.Kind {
	case KindNull:
		return NumberValue(0), nil
	case KindBool:
		if v.Bool {
			return NumberValue(1), nil
		}
		return NumberValue(0), nil
	case KindNumber:
		return v, nil
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
	if err != nil {
		return Null, NewRuntimeError(ErrorInvalidArgument, line, "cannot convert %q to a number", v.Str)
	}
	return NumberValue(f), nil
}

func builtinToString(in *Interpreter, args []Value, line int) (Value, error) {
	return StringValue(args[0].String()), nil
}

func builtinToBoolean(in *Interpreter, args []Value, line int) (Value, error) {
	return BoolValue(args[0].Truthy()), nil
}

// gameover(code) stops the program. The code is rounded to the nearest
// integer, ties to even.
func builtinExit(in *Interpreter, args []Value, line int) (Value, error) {
	code := args[0]
	if code.Kind != KindNumber || math.IsNaN(code.Num) || math.IsInf(code.Num, 0) {
		return Null, NewRuntimeError(ErrorInvalidArgument, line,
			"exit code must be a number, got %s", describeValue(code))
	}
	rounded := math.RoundToEven(code.Num)
	if rounded < math.MinInt32 || rounded > math.MaxInt32 {
		return Null, NewRuntimeError(ErrorInvalidArgument, line,
			"exit code %s is out of range", code)
	}
	if err := in.out.Flush(); err != nil {
		return Null, fmt.Errorf("failed to write output: %w", err)
	}
	in.log.Debug("exit requested", "code", code.Num, "line", line)
	return Null, &ExitError{Code: int(rounded)}
}

func describeValue(v Value) string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(v.Str)
	}
	return fmt.Sprintf("%s %s", v.Kind, v.String())
}
