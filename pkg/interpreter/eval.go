package interpreter

import (
	"errors"
	"strconv"
	"strings"

	"github.com/zurustar/gamerscript/pkg/compiler/ast"
	"github.com/zurustar/gamerscript/pkg/compiler/token"
)

// evaluate computes the value of an expression.
func (in *Interpreter) evaluate(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpression:
		return evaluateLiteral(e)
	case *ast.VariableExpression:
		value, ok := in.env.Get(e.Name)
		if !ok {
			return Null, newUndefinedVariableError(e.Name, e.Token.Line)
		}
		return value, nil
	case *ast.GroupingExpression:
		return in.evaluate(e.Expression)
	case *ast.UnaryExpression:
		return in.evaluateUnary(e)
	case *ast.BinaryExpression:
		return in.evaluateBinary(e)
	case *ast.CallExpression:
		return in.evaluateCall(e)
	}
	return Null, NewRuntimeError(ErrorInvalidOperation, 0, "unsupported expression %T", expr)
}

func evaluateLiteral(e *ast.LiteralExpression) (Value, error) {
	switch e.Token.Type {
	case token.NUMBER:
		f, err := strconv.ParseFloat(e.Token.Literal, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return Null, NewRuntimeError(ErrorInvalidOperation, e.Token.Line,
				"invalid number literal '%s'", e.Token.Literal)
		}
		return NumberValue(f), nil
	case token.STRING:
		return StringValue(unquote(e.Token.Literal)), nil
	case token.TRUE:
		return BoolValue(true), nil
	case token.FALSE:
		return BoolValue(false), nil
	}
	return Null, NewRuntimeError(ErrorInvalidOperation, e.Token.Line, "invalid literal '%s'", e.Token.Literal)
}

// unquote strips the surrounding quotes of a string literal and resolves
// the escapes \\ \" \n \t \r. Any other backslash is kept as written.
func unquote(literal string) string {
	if len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"' {
		literal = literal[1 : len(literal)-1]
	}
	if !strings.ContainsRune(literal, '\\') {
		return literal
	}

	var b strings.Builder
	b.Grow(len(literal))
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		if c != '\\' || i+1 == len(literal) {
			b.WriteByte(c)
			continue
		}
		switch next := literal[i+1]; next {
		case '\\', '"':
			b.WriteByte(next)
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}

func (in *Interpreter) evaluateUnary(e *ast.UnaryExpression) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return Null, err
	}
	if e.Operator != token.MINUS {
		return Null, NewRuntimeError(ErrorInvalidOperation, e.Token.Line, "unknown unary operator '%s'", e.Token.Literal)
	}
	if right.Kind != KindNumber {
		return Null, NewRuntimeError(ErrorTypeMismatch, e.Token.Line,
			"operator '-' cannot be applied to %s", right.Kind)
	}
	return NumberValue(-right.Num), nil
}

// evaluateBinary evaluates both operands, left first, and then applies
// the operator.
func (in *Interpreter) evaluateBinary(e *ast.BinaryExpression) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return Null, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return Null, err
	}
	return binaryOp(e.Token, left, right)
}

// binaryOp applies op to two values. Every legal pair of kinds is listed;
// anything else is a TYPE_MISMATCH.
func binaryOp(op token.Token, left, right Value) (Value, error) {
	bothNumbers := left.Kind == KindNumber && right.Kind == KindNumber

	switch op.Type {
	case token.PLUS:
		switch {
		case bothNumbers:
			return NumberValue(left.Num + right.Num), nil
		case left.Kind == KindString || right.Kind == KindString:
			return StringValue(left.String() + right.String()), nil
		}
	case token.MINUS:
		if bothNumbers {
			return NumberValue(left.Num - right.Num), nil
		}
	case token.ASTERISK:
		if bothNumbers {
			return NumberValue(left.Num * right.Num), nil
		}
	case token.SLASH:
		if bothNumbers {
			return NumberValue(left.Num / right.Num), nil
		}
	case token.GT:
		if bothNumbers {
			return BoolValue(left.Num > right.Num), nil
		}
	case token.GTE:
		if bothNumbers {
			return BoolValue(left.Num >= right.Num), nil
		}
	case token.LT:
		if bothNumbers {
			return BoolValue(left.Num < right.Num), nil
		}
	case token.LTE:
		if bothNumbers {
			return BoolValue(left.Num <= right.Num), nil
		}
	case token.EQ:
		return BoolValue(left.Equal(right)), nil
	default:
		return Null, NewRuntimeError(ErrorInvalidOperation, op.Line, "unknown binary operator '%s'", op.Literal)
	}
	return Null, newOperandError(op, left, right)
}

// evaluateCall resolves built-ins before user functions. Arguments are
// evaluated left to right in the caller's environment.
func (in *Interpreter) evaluateCall(e *ast.CallExpression) (Value, error) {
	line := e.Token.Line

	b, isBuiltin := in.builtins[e.Function]
	var fn *ast.FunctionStatement
	if !isBuiltin {
		var ok bool
		if fn, ok = in.functions[e.Function]; !ok {
			return Null, newUndefinedFunctionError(e.Function, line)
		}
	}

	args := make([]Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		value, err := in.evaluate(arg)
		if err != nil {
			return Null, err
		}
		args = append(args, value)
	}

	if isBuiltin {
		return in.callBuiltin(b, args, line)
	}
	return in.callFunction(fn, args, line)
}
