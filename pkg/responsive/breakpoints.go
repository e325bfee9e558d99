// Package responsive resolves viewport-dependent attribute values.
//
// A breakpoint list is a single string of the form
//
//	(min-width: 768px) 3, (min-width: 480px) 2, 1
//
// an ordered sequence of (media condition, value) pairs plus exactly one
// unconditional fallback value. Conditions are evaluated in declaration
// order; the first match wins and the fallback always matches.
//
// Predicate evaluation stays behind the Matcher interface so the concrete
// viewport-matching mechanism is swappable and testable without a live
// display.
package responsive

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors. Callers recover per policy by substituting a fallback-only
// list (see Fallback).
var (
	ErrEmptyList         = errors.New("empty breakpoint list")
	ErrMissingFallback   = errors.New("breakpoint list has no unconditional fallback")
	ErrMissingValue      = errors.New("breakpoint clause has no value")
	ErrMisplacedEntry    = errors.New("unconditional value before end of breakpoint list")
	ErrUnclosedCondition = errors.New("unclosed condition in breakpoint clause")
)

// Clause is one (condition, value) pair of a breakpoint list.
type Clause struct {
	// Condition is the media predicate, parentheses included,
	// e.g. "(min-width: 768px)".
	Condition string
	// Value is the coerced value selected when Condition matches.
	Value any
}

// List is a parsed breakpoint list. Immutable after parsing.
type List struct {
	clauses  []Clause
	fallback any
}

// CoerceFunc converts one clause value from its markup string to the typed
// value of the owning descriptor.
type CoerceFunc func(raw string) (any, error)

// Parse parses a breakpoint-list string. coerce converts each clause value;
// a nil coerce keeps values as strings. Any syntax or coercion failure
// returns a nil list and the error.
func Parse(s string, coerce CoerceFunc) (*List, error) {
	if coerce == nil {
		coerce = func(raw string) (any, error) { return raw, nil }
	}
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmptyList
	}

	entries := strings.Split(s, ",")
	list := &List{}
	haveFallback := false

	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil, fmt.Errorf("%w: empty clause %d", ErrMissingValue, i)
		}

		if !strings.HasPrefix(entry, "(") {
			// Unconditional value: must be the single, final fallback.
			if i != len(entries)-1 {
				return nil, ErrMisplacedEntry
			}
			value, err := coerce(entry)
			if err != nil {
				return nil, err
			}
			list.fallback = value
			haveFallback = true
			continue
		}

		end := strings.LastIndex(entry, ")")
		if end < 0 {
			return nil, ErrUnclosedCondition
		}
		condition := strings.TrimSpace(entry[:end+1])
		rawValue := strings.TrimSpace(entry[end+1:])
		if rawValue == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingValue, entry)
		}
		value, err := coerce(rawValue)
		if err != nil {
			return nil, err
		}
		list.clauses = append(list.clauses, Clause{Condition: condition, Value: value})
	}

	if !haveFallback {
		return nil, ErrMissingFallback
	}
	return list, nil
}

// Fallback builds a list with no conditions, only the given fallback value.
// It is the recovery form for malformed breakpoint strings.
func Fallback(value any) *List {
	return &List{fallback: value}
}

// Clauses returns the conditional clauses in declaration order.
func (l *List) Clauses() []Clause {
	return l.clauses
}

// FallbackValue returns the unconditional fallback value.
func (l *List) FallbackValue() any {
	return l.fallback
}

// Resolve walks the clauses in declaration order and returns the value of
// the first condition the matcher reports as matching, or the fallback when
// none match. A nil matcher matches nothing.
func (l *List) Resolve(m Matcher) any {
	if m != nil {
		for _, c := range l.clauses {
			if m.Matches(c.Condition) {
				return c.Value
			}
		}
	}
	return l.fallback
}
