// Package eql parses single-line strings of key=value assignments, such as
//
//	fix=patch feat = minor title="Bug Fixes"
//
// into ordered pairs. Keys are made of ASCII letters, digits and
// underscores. Values are either a run of non-whitespace characters or a
// double-quoted string that may contain whitespace; there are no escape
// sequences. Errors are reported as *ParseError with the zero-based rune
// offset of the problem.
package eql

import "unicode"

type state int

const (
	stateSkipLeadingSpace state = iota
	stateScanKey
	stateSkipSpaceBeforeEquals
	stateExpectEquals
	stateSkipSpaceBeforeValue
	stateScanUnquoted
	stateScanQuoted
	stateCommit
	stateDone
)

// Parser parses inputs under a key validation policy. A Parser is
// immutable and may be used from multiple goroutines.
type Parser struct {
	validator KeyValidator
}

// NewParser returns a Parser accepting any well-formed key.
func NewParser() *Parser {
	return &Parser{validator: AcceptAll}
}

// NewStrictParser returns a Parser that fails with ErrInvalidKey on any key
// not in validKeys. With no valid keys every key is rejected.
func NewStrictParser(validKeys []string, caseSensitive bool) *Parser {
	return &Parser{validator: NewKeySet(validKeys, caseSensitive)}
}

// NewParserWithValidator returns a Parser consulting v before committing
// each pair. A nil v accepts everything.
func NewParserWithValidator(v KeyValidator) *Parser {
	if v == nil {
		v = AcceptAll
	}
	return &Parser{validator: v}
}

// Parse parses str with an unrestricted Parser.
func Parse(str string) (*Pairs, error) {
	return NewParser().Parse(str)
}

// Parse parses str. On failure the returned error is a *ParseError and no
// pairs are returned.
func (p *Parser) Parse(str string) (*Pairs, error) {
	s := &scanner{
		input:     []rune(str),
		validator: p.validator,
		result:    newPairs(),
	}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.result, nil
}

// scanner is the state of a single Parse call.
type scanner struct {
	input     []rune
	pos       int
	keyStart  int
	equalsAt  int
	valueFrom int
	key       string
	value     string
	validator KeyValidator
	result    *Pairs
}

func (s *scanner) run() error {
	st := stateSkipLeadingSpace
	var err error
	for st != stateDone {
		switch st {
		case stateSkipLeadingSpace:
			st = s.skipLeadingSpace()
		case stateScanKey:
			st, err = s.scanKey()
		case stateSkipSpaceBeforeEquals:
			st, err = s.skipSpaceBeforeEquals()
		case stateExpectEquals:
			st, err = s.expectEquals()
		case stateSkipSpaceBeforeValue:
			st, err = s.skipSpaceBeforeValue()
		case stateScanUnquoted:
			st = s.scanUnquoted()
		case stateScanQuoted:
			st, err = s.scanQuoted()
		case stateCommit:
			st, err = s.commit()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) lastIndex() int {
	return len(s.input) - 1
}

func (s *scanner) skipSpace() {
	for !s.atEnd() && unicode.IsSpace(s.input[s.pos]) {
		s.pos++
	}
}

func (s *scanner) skipLeadingSpace() state {
	s.skipSpace()
	if s.atEnd() {
		return stateDone
	}
	s.keyStart = s.pos
	return stateScanKey
}

func (s *scanner) scanKey() (state, error) {
	for !s.atEnd() && isKeyRune(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == s.keyStart {
		return stateDone, newError(KindMissingKey, "", s.keyStart)
	}
	s.key = string(s.input[s.keyStart:s.pos])
	if s.atEnd() {
		return stateDone, newError(KindIncompleteKeyValuePair, "", s.lastIndex())
	}
	return stateSkipSpaceBeforeEquals, nil
}

func (s *scanner) skipSpaceBeforeEquals() (state, error) {
	s.skipSpace()
	if s.atEnd() {
		return stateDone, newError(KindIncompleteKeyValuePair, "", s.lastIndex())
	}
	return stateExpectEquals, nil
}

func (s *scanner) expectEquals() (state, error) {
	if s.input[s.pos] != '=' {
		return stateDone, newError(KindMissingAssignmentOperator, "", s.pos)
	}
	s.equalsAt = s.pos
	s.pos++
	return stateSkipSpaceBeforeValue, nil
}

func (s *scanner) skipSpaceBeforeValue() (state, error) {
	s.skipSpace()
	if s.atEnd() {
		return stateDone, newError(KindMissingValue, s.key, s.equalsAt)
	}
	s.valueFrom = s.pos
	if s.input[s.pos] == '"' {
		return stateScanQuoted, nil
	}
	return stateScanUnquoted, nil
}

func (s *scanner) scanUnquoted() state {
	for !s.atEnd() && !unicode.IsSpace(s.input[s.pos]) {
		s.pos++
	}
	s.value = string(s.input[s.valueFrom:s.pos])
	return stateCommit
}

func (s *scanner) scanQuoted() (state, error) {
	// skip the opening quote
	s.pos++
	for !s.atEnd() && s.input[s.pos] != '"' {
		s.pos++
	}
	if s.atEnd() {
		return stateDone, newError(KindMissingEndQuote, s.key, s.lastIndex())
	}
	s.value = string(s.input[s.valueFrom+1 : s.pos])
	// consume the closing quote
	s.pos++
	return stateCommit, nil
}

// commitOffset is the index of the character following the value, or the
// value's last character when it runs to the end of input.
func (s *scanner) commitOffset() int {
	if s.atEnd() {
		return s.lastIndex()
	}
	return s.pos
}

func (s *scanner) commit() (state, error) {
	if !s.validator.ValidKey(s.key) {
		return stateDone, newError(KindInvalidKey, s.key, s.commitOffset())
	}
	s.result.set(s.key, s.value)
	s.key, s.value = "", ""
	return stateSkipLeadingSpace, nil
}

func isKeyRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
