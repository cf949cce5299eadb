// Package document provides the shared output document that result
// containers serialize into. A document is built incrementally by any number
// of contributors; nothing re-initializes it between contributions.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Document is a string-keyed tree of output values. Nested sections are
// Documents themselves.
type Document map[string]interface{}

// New creates an empty document.
func New() Document {
	return make(Document)
}

// Set stores value under key at this level, overwriting any existing entry.
func (d Document) Set(key string, value interface{}) {
	d[key] = value
}

// Get returns the entry stored under key.
func (d Document) Get(key string) (interface{}, bool) {
	v, ok := d[key]
	return v, ok
}

// Section returns the nested document stored under name, creating it if
// absent. An existing non-document entry under name is replaced.
func (d Document) Section(name string) Document {
	if sub, ok := d[name].(Document); ok {
		return sub
	}
	sub := New()
	d[name] = sub
	return sub
}

// Merge folds other into d. Nested documents merge recursively; any other
// colliding entry is overwritten by other's value.
func (d Document) Merge(other Document) {
	for k, v := range other {
		if sub, ok := v.(Document); ok {
			if cur, ok := d[k].(Document); ok {
				cur.Merge(sub)
				continue
			}
		}
		d[k] = v
	}
}

// Keys returns the document's top-level keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bytes renders the document as indented JSON.
func (d Document) Bytes() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}

// WriteFile renders the document as JSON and writes it to path.
func (d Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Load reads a JSON document from path. Nested objects come back as nested
// Documents so sections survive a round trip.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return fromRaw(raw), nil
}

func fromRaw(raw map[string]interface{}) Document {
	d := make(Document, len(raw))
	for k, v := range raw {
		if m, ok := v.(map[string]interface{}); ok {
			d[k] = fromRaw(m)
		} else {
			d[k] = v
		}
	}
	return d
}
