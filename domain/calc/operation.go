package calc

import (
	"fmt"
	"math"
	"strings"
)

// Operation represents an arithmetic operation type.
type Operation string

// Supported arithmetic operations.
const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
	OpPower    Operation = "power"
)

// spelling lists the accepted spellings of an operation. The first
// symbol and keyword are the ones shown to users.
type spelling struct {
	op       Operation
	symbols  []string
	keywords []string
}

var spellings = []spelling{
	{op: OpAdd, symbols: []string{"+"}, keywords: []string{"add"}},
	{op: OpSubtract, symbols: []string{"-"}, keywords: []string{"sub"}},
	{op: OpMultiply, symbols: []string{"*"}, keywords: []string{"mul", "x"}},
	{op: OpDivide, symbols: []string{"/"}, keywords: []string{"div"}},
	{op: OpPower, symbols: []string{"^"}, keywords: []string{"pow"}},
}

var aliases = buildAliases()

func buildAliases() map[string]Operation {
	m := make(map[string]Operation)
	for _, s := range spellings {
		for _, a := range s.symbols {
			m[a] = s.op
		}
		for _, a := range s.keywords {
			m[a] = s.op
		}
	}
	return m
}

// Operations returns every supported operation in display order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(spellings))
	for _, s := range spellings {
		ops = append(ops, s.op)
	}
	return ops
}

// Lookup resolves an alias such as "+" or "mul" to its operation.
// Matching is case-sensitive.
func Lookup(alias string) (Operation, bool) {
	op, ok := aliases[alias]
	return op, ok
}

// Aliases returns all spellings accepted for op.
func (op Operation) Aliases() []string {
	for _, s := range spellings {
		if s.op == op {
			out := make([]string, 0, len(s.symbols)+len(s.keywords))
			out = append(out, s.symbols...)
			return append(out, s.keywords...)
		}
	}
	return nil
}

// String returns the canonical operation name.
func (op Operation) String() string {
	return string(op)
}

// ValidOperations renders the supported operations for help and error text,
// e.g. "+, -, *, /, ^ (or add, sub, mul, div, pow)".
func ValidOperations() string {
	symbols := make([]string, 0, len(spellings))
	keywords := make([]string, 0, len(spellings))
	for _, s := range spellings {
		symbols = append(symbols, s.symbols[0])
		keywords = append(keywords, s.keywords[0])
	}
	return fmt.Sprintf("%s (or %s)", strings.Join(symbols, ", "), strings.Join(keywords, ", "))
}

// Apply executes op on a and b.
func Apply(op Operation, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, NewError(KindDivisionByZero, "division by zero is not allowed")
		}
		return a / b, nil
	case OpPower:
		return math.Pow(a, b), nil
	default:
		return 0, unknownOperation(string(op))
	}
}
