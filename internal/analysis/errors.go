package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrVisionPrimitive сбой операции компьютерного зрения
	ErrVisionPrimitive = errors.New("vision primitive failure")
	// ErrNumeric неожиданное численное состояние (NaN, Inf, отрицательный радиус)
	ErrNumeric = errors.New("unexpected numeric condition")
)

func primitiveError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrVisionPrimitive, op, err)
}
