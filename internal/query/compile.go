package query

import (
	"fmt"
	"strings"
)

// selectSteps is the fixed projection every compiled query uses.
const selectSteps = "SELECT seq, kind, i, j, value, description FROM steps"

// Compile converts a filter to parameterized SQL for SQLite.
// Returns (sql, params, error) tuple.
//
// MANDATORY: every query is ordered by seq.
// MANDATORY: values are bound as parameters, never interpolated.
func Compile(f Filter) (string, []any, error) {
	if f.RunID == "" {
		return "", nil, fmt.Errorf("%w: run id is required", ErrInvalidFilter)
	}
	if f.Limit < 0 {
		return "", nil, fmt.Errorf("%w: negative limit %d", ErrInvalidFilter, f.Limit)
	}
	if err := Validate(f.Where); err != nil {
		return "", nil, err
	}

	where := "run_id = ?"
	params := []any{f.RunID}
	if f.Where != nil {
		sql, whereParams, err := compilePredicate(f.Where)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		where += " AND " + sql
		params = append(params, whereParams...)
	}

	sql := selectSteps + " WHERE " + where + " ORDER BY seq ASC"
	if f.Limit > 0 {
		sql += " LIMIT ?"
		params = append(params, f.Limit)
	}
	return sql, params, nil
}

func compilePredicate(p Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case Equals:
		return compileEquals(pred)
	case *Equals:
		return compileEquals(*pred)
	case In:
		return compileIn(pred)
	case *In:
		return compileIn(*pred)
	case And:
		return compileAnd(pred)
	case *And:
		return compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

func compileEquals(eq Equals) (string, []any, error) {
	return fmt.Sprintf("%s = ?", eq.Column), []any{param(eq.Value)}, nil
}

func compileIn(in In) (string, []any, error) {
	holders := make([]string, len(in.Values))
	params := make([]any, len(in.Values))
	for i, v := range in.Values {
		holders[i] = "?"
		params[i] = param(v)
	}
	return fmt.Sprintf("%s IN (%s)", in.Column, strings.Join(holders, ", ")), params, nil
}

func compileAnd(and And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil // Always true (vacuous truth)
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, pred := range and.Predicates {
		sql, predParams, err := compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		if _, nested := pred.(And); nested {
			sql = "(" + sql + ")"
		}
		parts = append(parts, sql)
		params = append(params, predParams...)
	}
	return strings.Join(parts, " AND "), params, nil
}

// param normalizes integers so drivers see one type.
func param(v any) any {
	if n, ok := v.(int); ok {
		return int64(n)
	}
	return v
}
