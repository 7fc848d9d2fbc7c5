package query

import (
	"errors"
	"fmt"

	"github.com/roach88/sortstep/internal/step"
)

// ErrInvalidFilter is wrapped by every validation failure.
var ErrInvalidFilter = errors.New("invalid filter")

// Validate checks columns, value types and kind names throughout p.
// A nil predicate is valid.
func Validate(p Predicate) error {
	if p == nil {
		return nil
	}

	switch pred := p.(type) {
	case Equals:
		return validateValue(pred.Column, pred.Value)
	case *Equals:
		return validateValue(pred.Column, pred.Value)
	case In:
		return validateIn(pred)
	case *In:
		return validateIn(*pred)
	case And:
		return validateAnd(pred)
	case *And:
		return validateAnd(*pred)
	default:
		return fmt.Errorf("%w: unsupported predicate type %T", ErrInvalidFilter, p)
	}
}

func validateIn(in In) error {
	if len(in.Values) == 0 {
		return fmt.Errorf("%w: %s IN () matches nothing", ErrInvalidFilter, in.Column)
	}
	for _, v := range in.Values {
		if err := validateValue(in.Column, v); err != nil {
			return err
		}
	}
	return nil
}

func validateAnd(and And) error {
	for _, sub := range and.Predicates {
		if err := Validate(sub); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(col Column, v any) error {
	switch col {
	case ColumnKind:
		name, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: kind must be a string, got %T", ErrInvalidFilter, v)
		}
		if _, err := step.ParseKind(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		return nil
	case ColumnI, ColumnJ, ColumnValue:
		switch v.(type) {
		case int, int64:
			return nil
		}
		return fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidFilter, col, v)
	default:
		return fmt.Errorf("%w: unknown column %q", ErrInvalidFilter, string(col))
	}
}
