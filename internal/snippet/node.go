// Package snippet models highlighted passages extracted from OCR'd document
// pages: the passage text, the page regions it occupies, the sub-regions that
// are individually highlighted, and a relevance score used for ordering.
package snippet

import (
	"bytes"
	"encoding/json"
)

// Field is a single key/value entry of a Node.
type Field struct {
	Key   string
	Value interface{}
}

// Node is an ordered key/value tree consumed by the result renderer. Unlike a
// map, key order is part of the contract: MarshalJSON writes fields in append
// order, and a key appears in the output iff it was added. This makes
// "present vs absent" an explicit property of the tree rather than an
// emptiness check at encode time.
type Node []Field

// Add appends a field to the node.
func (n *Node) Add(key string, value interface{}) {
	*n = append(*n, Field{Key: key, Value: value})
}

// Get returns the value for key and whether the key is present.
func (n Node) Get(key string) (interface{}, bool) {
	for _, f := range n {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the node's keys in order.
func (n Node) Keys() []string {
	keys := make([]string, len(n))
	for i, f := range n {
		keys[i] = f.Key
	}
	return keys
}

// MarshalJSON encodes the node as a JSON object with keys in append order.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TreeMarshaler is implemented by values that render themselves into an
// output tree node.
type TreeMarshaler interface {
	ToNode() Node
}
