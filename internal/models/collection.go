package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection is an ordered mapping from country code to that country's leaders.
// Key order follows insertion order, which in a normal run is the order the API
// returned the countries. The JSON form is a plain object
// { "be": [ {...}, ... ], ... } whose key order matches insertion order, so
// Load(Save(c)) reconstructs the collection exactly.
type Collection struct {
	codes   []string
	leaders map[string][]Leader
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		leaders: make(map[string][]Leader),
	}
}

// Set stores the leaders for a country, appending the code to the key order if
// it is new. A nil slice is stored as an empty one so the country keeps its key.
func (c *Collection) Set(code string, leaders []Leader) {
	if c.leaders == nil {
		c.leaders = make(map[string][]Leader)
	}

	if _, exists := c.leaders[code]; !exists {
		c.codes = append(c.codes, code)
	}

	if leaders == nil {
		leaders = []Leader{}
	}

	c.leaders[code] = leaders
}

// Get returns the leaders stored for a country code.
func (c *Collection) Get(code string) ([]Leader, bool) {
	leaders, ok := c.leaders[code]

	return leaders, ok
}

// Codes returns the country codes in insertion order.
func (c *Collection) Codes() []string {
	out := make([]string, len(c.codes))
	copy(out, c.codes)

	return out
}

// Len returns the number of countries in the collection.
func (c *Collection) Len() int {
	return len(c.codes)
}

// TotalLeaders returns the number of leader records across all countries.
func (c *Collection) TotalLeaders() int {
	total := 0
	for _, leaders := range c.leaders {
		total += len(leaders)
	}

	return total
}

// MarshalJSON writes the collection as a JSON object in insertion order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, code := range c.codes {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(code)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal country code %q: %w", code, err)
		}

		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(c.leaders[code])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal leaders for %q: %w", code, err)
		}

		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving the key order of the document.
func (c *Collection) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read collection: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	c.codes = nil
	c.leaders = make(map[string][]Leader)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read country key: %w", err)
		}

		code, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected string country key, got %v", tok)
		}

		var leaders []Leader
		if err := dec.Decode(&leaders); err != nil {
			return fmt.Errorf("failed to decode leaders for %q: %w", code, err)
		}

		c.Set(code, leaders)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read collection end: %w", err)
	}

	return nil
}
