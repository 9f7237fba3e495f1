package eql

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Pairs holds parsed key/value pairs in the order their keys first
// appeared. Setting an existing key replaces its value in place.
type Pairs struct {
	keys   []string
	values map[string]string
}

func newPairs() *Pairs {
	return &Pairs{values: map[string]string{}}
}

func (p *Pairs) set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Pairs) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[key]
	return v, ok
}

// Value returns the value for key, or an empty string when absent.
func (p *Pairs) Value(key string) string {
	v, _ := p.Get(key)
	return v
}

func (p *Pairs) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

func (p *Pairs) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns a copy of the keys in insertion order.
func (p *Pairs) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Each calls fn for every pair in insertion order until fn returns false.
func (p *Pairs) Each(fn func(key, value string) bool) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		if !fn(k, p.values[k]) {
			return
		}
	}
}

// Map returns the pairs as a plain map. Ordering is lost.
func (p *Pairs) Map() map[string]string {
	result := map[string]string{}
	p.Each(func(k, v string) bool {
		result[k] = v
		return true
	})
	return result
}

func (p *Pairs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	i := 0
	p.Each(func(k, v string) bool {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		var kb, vb []byte
		if kb, err = json.Marshal(k); err != nil {
			return false
		}
		if vb, err = json.Marshal(v); err != nil {
			return false
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Pairs) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	p.Each(func(k, v string) bool {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
		)
		return true
	})
	return node, nil
}
