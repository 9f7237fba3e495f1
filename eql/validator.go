package eql

import "strings"

// KeyValidator decides whether a scanned key may be committed to the
// result. Implementations must be safe for concurrent use.
type KeyValidator interface {
	ValidKey(key string) bool
}

// KeyValidatorFunc adapts a plain function to KeyValidator.
type KeyValidatorFunc func(key string) bool

func (f KeyValidatorFunc) ValidKey(key string) bool {
	return f(key)
}

type acceptAll struct{}

func (acceptAll) ValidKey(string) bool { return true }

// AcceptAll is the validator used by NewParser.
var AcceptAll KeyValidator = acceptAll{}

// KeySet is an immutable whitelist of keys.
type KeySet struct {
	keys          map[string]struct{}
	caseSensitive bool
}

// NewKeySet builds a whitelist from keys. An empty or nil slice yields a
// set that rejects everything. Unless caseSensitive is set, keys are
// compared lower-cased.
func NewKeySet(keys []string, caseSensitive bool) *KeySet {
	set := &KeySet{
		keys:          make(map[string]struct{}, len(keys)),
		caseSensitive: caseSensitive,
	}
	for _, k := range keys {
		set.keys[set.normalize(k)] = struct{}{}
	}
	return set
}

func (s *KeySet) normalize(key string) string {
	if s.caseSensitive {
		return key
	}
	return strings.ToLower(key)
}

func (s *KeySet) ValidKey(key string) bool {
	_, ok := s.keys[s.normalize(key)]
	return ok
}

func (s *KeySet) CaseSensitive() bool {
	return s.caseSensitive
}

func (s *KeySet) Len() int {
	return len(s.keys)
}
