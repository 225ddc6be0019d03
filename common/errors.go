package common

import (
	"errors"
	"fmt"
)

var (
	ErrorInvalidValue  = errors.New("invalid value")
	ErrorParse         = errors.New("timestamp parse error")
	ErrorEmptyInput    = errors.New("empty input")
	ErrorMalformedData = errors.New("malformed data")
)

// RecordError reports which input row failed and why.
// errors.Is(err, ErrorParse) and friends work through Unwrap.
type RecordError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func NewRecordError(row int, field, value string, err error) *RecordError {
	return &RecordError{
		Row:   row,
		Field: field,
		Value: value,
		Err:   err,
	}
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
