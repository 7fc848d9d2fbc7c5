package query

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFilter parses a command-line filter expression.
//
// Terms are separated by commas and all must hold. Each term is
// column=value; alternatives separated by | become an In predicate:
//
//	kind=compare
//	kind=swap|overwrite,i=0
//
// An empty expression returns a nil predicate.
func ParseFilter(expr string) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	var preds []Predicate
	for _, term := range strings.Split(expr, ",") {
		p, err := parseTerm(strings.TrimSpace(term))
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}

	var p Predicate = And{Predicates: preds}
	if len(preds) == 1 {
		p = preds[0]
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseFilters combines several expressions (one per repeated flag).
func ParseFilters(exprs []string) (Predicate, error) {
	var preds []Predicate
	for _, expr := range exprs {
		p, err := ParseFilter(expr)
		if err != nil {
			return nil, err
		}
		if p != nil {
			preds = append(preds, p)
		}
	}
	switch len(preds) {
	case 0:
		return nil, nil
	case 1:
		return preds[0], nil
	}
	return And{Predicates: preds}, nil
}

func parseTerm(term string) (Predicate, error) {
	name, raw, ok := strings.Cut(term, "=")
	if !ok {
		return nil, fmt.Errorf("%w: term %q is not column=value", ErrInvalidFilter, term)
	}
	col := Column(strings.TrimSpace(name))

	alts := strings.Split(raw, "|")
	values := make([]any, 0, len(alts))
	for _, alt := range alts {
		v, err := parseValue(col, strings.TrimSpace(alt))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	if len(values) == 1 {
		return Equals{Column: col, Value: values[0]}, nil
	}
	return In{Column: col, Values: values}, nil
}

func parseValue(col Column, raw string) (any, error) {
	switch col {
	case ColumnKind:
		return raw, nil
	case ColumnI, ColumnJ, ColumnValue:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidFilter, col, raw)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: unknown column %q (want one of %v)", ErrInvalidFilter, string(col), Columns())
	}
}
