package calc

import (
	"errors"
	"strconv"
	"strings"
)

// Expression is a parsed "<op> <a> <b>" line.
type Expression struct {
	Op Operation
	A  float64
	B  float64
}

// Parse splits line on whitespace and resolves it into an expression.
func Parse(line string) (Expression, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Expression{}, NewError(KindEmptyInput, "please enter an operation, e.g. '+ 2 3'")
	}
	if len(tokens) != 3 {
		return Expression{}, NewError(KindWrongArity, "expected 3 tokens: <op> <a> <b>")
	}

	op, ok := Lookup(tokens[0])
	if !ok {
		return Expression{}, unknownOperation(tokens[0])
	}

	a, err := parseOperand(tokens[1])
	if err != nil {
		return Expression{}, err
	}
	b, err := parseOperand(tokens[2])
	if err != nil {
		return Expression{}, err
	}

	return Expression{Op: op, A: a, B: b}, nil
}

// Evaluate computes a single "<op> <a> <b>" line and returns the result as
// text. Failures are *Error values.
func Evaluate(line string) (string, error) {
	expr, err := Parse(line)
	if err != nil {
		return "", err
	}

	v, err := Apply(expr.Op, expr.A, expr.B)
	if err != nil {
		return "", err
	}
	return Format(v), nil
}

// Format renders v with the fewest digits that round-trip, without an
// exponent: 5, 2.5, -0.125.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseOperand(token string) (float64, error) {
	// Only decimal literals are numbers; ParseFloat would also take hex.
	digits := strings.TrimLeft(token, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, invalidNumber(token)
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		// Out-of-range literals saturate to ±Inf rather than failing.
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, invalidNumber(token)
	}
	return v, nil
}
