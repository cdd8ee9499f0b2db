package calc

import (
	"errors"
	"fmt"
)

// Kind classifies an evaluation failure.
type Kind string

// Evaluation failure kinds.
const (
	KindEmptyInput       Kind = "empty_input"
	KindWrongArity       Kind = "wrong_arity"
	KindUnknownOperation Kind = "unknown_operation"
	KindInvalidNumber    Kind = "invalid_number"
	KindDivisionByZero   Kind = "division_by_zero"
)

var (
	// ErrEmptyInput indicates the input line held no tokens.
	ErrEmptyInput = errors.New("empty input")
	// ErrWrongArity indicates the input line did not hold exactly 3 tokens.
	ErrWrongArity = errors.New("wrong number of tokens")
	// ErrUnknownOperation indicates the operation token is not a known alias.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrInvalidNumber indicates an operand token is not a number.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrDivisionByZero indicates a divide with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

var sentinels = map[Kind]error{
	KindEmptyInput:       ErrEmptyInput,
	KindWrongArity:       ErrWrongArity,
	KindUnknownOperation: ErrUnknownOperation,
	KindInvalidNumber:    ErrInvalidNumber,
	KindDivisionByZero:   ErrDivisionByZero,
}

// Error is an evaluation failure with a user-facing message.
// It matches the sentinel of its kind under errors.Is.
type Error struct {
	Kind    Kind
	Message string
}

// NewError creates an evaluation error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return sentinels[e.Kind]
}

// KindOf reports the kind of an evaluation error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var evalErr *Error
	if errors.As(err, &evalErr) {
		return evalErr.Kind, true
	}
	return "", false
}

func unknownOperation(token string) *Error {
	return NewError(KindUnknownOperation,
		fmt.Sprintf("unknown operation '%s'. Try one of: %s", token, ValidOperations()))
}

func invalidNumber(token string) *Error {
	return NewError(KindInvalidNumber, fmt.Sprintf("'%s' is not a number", token))
}
