package eql

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindMissingKey Kind = iota + 1
	KindMissingAssignmentOperator
	KindIncompleteKeyValuePair
	KindMissingValue
	KindMissingEndQuote
	KindInvalidKey
)

var kindNames = map[Kind]string{
	KindMissingKey:                "missing key",
	KindMissingAssignmentOperator: "missing assignment operator",
	KindIncompleteKeyValuePair:    "incomplete key value pair",
	KindMissingValue:              "missing value",
	KindMissingEndQuote:           "missing end quote",
	KindInvalidKey:                "invalid key",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for use with errors.Is. Only their Kind is meaningful.
var (
	ErrMissingKey                = &ParseError{Kind: KindMissingKey}
	ErrMissingAssignmentOperator = &ParseError{Kind: KindMissingAssignmentOperator}
	ErrIncompleteKeyValuePair    = &ParseError{Kind: KindIncompleteKeyValuePair}
	ErrMissingValue              = &ParseError{Kind: KindMissingValue}
	ErrMissingEndQuote           = &ParseError{Kind: KindMissingEndQuote}
	ErrInvalidKey                = &ParseError{Kind: KindInvalidKey}
)

// ParseError describes the first problem found in an input. Offset is a
// zero-based rune index into the parsed string. Key is empty when no key
// had been established; keys are never empty otherwise.
type ParseError struct {
	Kind   Kind
	Key    string
	Offset int
}

func (e *ParseError) HasKey() bool {
	return e.Key != ""
}

func (e *ParseError) Error() string {
	if e.Kind == KindInvalidKey {
		return fmt.Sprintf("%s '%s' at position %d", e.Kind, e.Key, e.Offset)
	}
	if e.HasKey() {
		return fmt.Sprintf("%s for key '%s' at position %d", e.Kind, e.Key, e.Offset)
	}
	return fmt.Sprintf("%s at position %d", e.Kind, e.Offset)
}

// Is reports whether target is a *ParseError of the same Kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Caret renders input followed by a line with a marker under the error
// offset:
//
//	key value
//	    ^
func (e *ParseError) Caret(input string) string {
	runes := []rune(input)
	offset := e.Offset
	if offset > len(runes) {
		offset = len(runes)
	}
	if offset < 0 {
		offset = 0
	}

	// Tabs are kept so the marker lines up in a terminal.
	var pad strings.Builder
	for _, r := range runes[:offset] {
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
	}

	return input + "\n" + pad.String() + "^"
}

func newError(kind Kind, key string, offset int) *ParseError {
	return &ParseError{Kind: kind, Key: key, Offset: offset}
}
