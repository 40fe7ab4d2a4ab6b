package interpreter

import (
	"fmt"

	"github.com/zurustar/gamerscript/pkg/compiler/ast"
)

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
)

// completion is the outcome of executing a statement. A return completion
// carries the returned value up to the enclosing call.
type completion struct {
	kind  completionKind
	value Value
}

var normalCompletion = completion{kind: completionNormal}

// execute runs a single statement.
func (in *Interpreter) execute(stmt ast.Statement) (completion, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := in.evaluate(s.Expression)
		return normalCompletion, err
	case *ast.VarStatement:
		return in.executeVar(s)
	case *ast.AssignStatement:
		value, err := in.evaluate(s.Value)
		if err != nil {
			return normalCompletion, err
		}
		in.env.Set(s.Name.Name, value)
		return normalCompletion, nil
	case *ast.BlockStatement:
		return in.executeBlock(s.Statements)
	case *ast.IfStatement:
		return in.executeIf(s)
	case *ast.WhileStatement:
		return in.executeWhile(s)
	case *ast.FunctionStatement:
		in.functions[s.Name] = s
		in.log.Debug("function registered", "name", s.Name, "params", len(s.Parameters), "line", s.Token.Line)
		return normalCompletion, nil
	case *ast.ReturnStatement:
		return in.executeReturn(s)
	case *ast.IncrementStatement:
		return normalCompletion, in.step(s.Name, 1)
	case *ast.DecrementStatement:
		return normalCompletion, in.step(s.Name, -1)
	case *ast.EndOfFileStatement:
		return normalCompletion, nil
	}
	return normalCompletion, NewRuntimeError(ErrorInvalidOperation, 0, "unsupported statement %T", stmt)
}

// executeBlock runs statements in order until one returns.
func (in *Interpreter) executeBlock(stmts []ast.Statement) (completion, error) {
	for _, stmt := range stmts {
		c, err := in.execute(stmt)
		if err != nil || c.kind == completionReturn {
			return c, err
		}
	}
	return normalCompletion, nil
}

func (in *Interpreter) executeVar(s *ast.VarStatement) (completion, error) {
	value := Null
	if s.Value != nil {
		var err error
		if value, err = in.evaluate(s.Value); err != nil {
			return normalCompletion, err
		}
	}
	in.env.Set(s.Name, value)
	in.log.Debug("variable declared", "name", s.Name, "kind", value.Kind, "line", s.Token.Line)
	return normalCompletion, nil
}

// executeIf runs the first branch whose condition is truthy, testing the
// primary condition and then each elif in source order.
func (in *Interpreter) executeIf(s *ast.IfStatement) (completion, error) {
	ok, err := in.condition(s.Condition)
	if err != nil {
		return normalCompletion, err
	}
	if ok {
		return in.execute(s.Consequence)
	}

	for _, elif := range s.Elifs {
		ok, err := in.condition(elif.Condition)
		if err != nil {
			return normalCompletion, err
		}
		if ok {
			return in.execute(elif.Consequence)
		}
	}

	if s.Alternative != nil {
		return in.execute(s.Alternative)
	}
	return normalCompletion, nil
}

func (in *Interpreter) executeWhile(s *ast.WhileStatement) (completion, error) {
	for {
		ok, err := in.condition(s.Condition)
		if err != nil || !ok {
			return normalCompletion, err
		}
		c, err := in.execute(s.Body)
		if err != nil || c.kind == completionReturn {
			return c, err
		}
	}
}

func (in *Interpreter) executeReturn(s *ast.ReturnStatement) (completion, error) {
	if len(in.callStack) == 0 {
		return normalCompletion, NewRuntimeError(ErrorReturnOutsideFn, s.Token.Line,
			"'%s' outside of a function", s.Token.Literal)
	}

	value := Null
	if s.Value != nil {
		var err error
		if value, err = in.evaluate(s.Value); err != nil {
			return normalCompletion, err
		}
	}
	return completion{kind: completionReturn, value: value}, nil
}

// step adds delta to a bound numeric variable.
func (in *Interpreter) step(name *ast.VariableExpression, delta float64) error {
	current, ok := in.env.Get(name.Name)
	if !ok {
		return newUndefinedVariableError(name.Name, name.Token.Line)
	}
	if current.Kind != KindNumber {
		return NewRuntimeError(ErrorTypeMismatch, name.Token.Line,
			"cannot %s %s variable '%s'", stepVerb(delta), current.Kind, name.Name)
	}
	in.env.Set(name.Name, NumberValue(current.Num+delta))
	return nil
}

func stepVerb(delta float64) string {
	if delta > 0 {
		return "increment"
	}
	return "decrement"
}

func (in *Interpreter) condition(expr ast.Expression) (bool, error) {
	value, err := in.evaluate(expr)
	if err != nil {
		return false, err
	}
	return value.Truthy(), nil
}

// callFunction invokes a user function. The environment is snapshotted
// before the parameters are bound and restored on every exit path.
func (in *Interpreter) callFunction(fn *ast.FunctionStatement, args []Value, line int) (Value, error) {
	if len(args) != len(fn.Parameters) {
		return Null, newArgumentCountError(fn.Name, fmt.Sprint(len(fn.Parameters)), len(args), line)
	}
	if depth := len(in.callStack) + 1; depth > in.maxCallDepth {
		return Null, newStackOverflowError(depth, in.maxCallDepth, line)
	}

	in.env.Push()
	in.callStack = append(in.callStack, StackFrame{FunctionName: fn.Name, Line: line})
	defer func() {
		in.callStack = in.callStack[:len(in.callStack)-1]
		in.env.Pop()
	}()

	for i, param := range fn.Parameters {
		in.env.Set(param, args[i])
	}
	in.log.Debug("call", "function", fn.Name, "depth", len(in.callStack), "line", line)

	c, err := in.executeBlock(fn.Body.Statements)
	if err != nil {
		return Null, err
	}

	result := Null
	if c.kind == completionReturn {
		result = c.value
	}
	in.log.Debug("return", "function", fn.Name, "depth", len(in.callStack), "kind", result.Kind)
	return result, nil
}
