package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Object is a JSON object that keeps the order of its members. Member values
// are kept as raw JSON and are only decoded on demand.
type Object struct {
	keys []string
	vals map[string]json.RawMessage
}

var (
	_ json.Marshaler   = Object{}
	_ json.Unmarshaler = (*Object)(nil)
)

func (o *Object) Len() int { return len(o.keys) }

// Keys returns the member names in document order.
func (o *Object) Keys() []string { return slices.Clone(o.keys) }

func (o *Object) Get(key string) (json.RawMessage, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Set sets the member key to the JSON value raw. New members are appended.
func (o *Object) Set(key string, raw json.RawMessage) {
	if o.vals == nil {
		o.vals = make(map[string]json.RawMessage)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = raw
}

// SetValue sets the member key to the JSON encoding of v.
func (o *Object) SetValue(key string, v any) error {
	raw, err := encode(v)
	if err != nil {
		return err
	}
	o.Set(key, raw)
	return nil
}

// Delete removes the member key and reports whether it was present.
func (o *Object) Delete(key string) bool {
	if _, ok := o.vals[key]; !ok {
		return false
	}
	delete(o.vals, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
	return true
}

// Object decodes the member key as a nested Object.
func (o *Object) Object(key string) (sub Object, ok bool, err error) {
	raw, ok := o.vals[key]
	if !ok {
		return sub, false, nil
	}
	err = sub.UnmarshalJSON(raw)
	return sub, true, err
}

func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := o.decode(dec); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("trailing data after JSON object")
	}
	return nil
}

func (o *Object) decode(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, found %s", tokenKind(tok))
	}
	o.keys, o.vals = nil, make(map[string]json.RawMessage)
	for dec.More() {
		if tok, err = dec.Token(); err != nil {
			return err
		}
		key := tok.(string)
		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return fmt.Errorf("member '%s': %w", key, err)
		}
		o.Set(key, raw)
	}
	_, err = dec.Token()
	return err
}

// MarshalJSON writes the members in order in compact form. Strings are not
// HTML escaped. Note that [encoding/json.Marshal] applies HTML escaping to
// the result, call MarshalJSON directly to avoid it.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kraw, err := encode(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kraw)
		buf.WriteByte(':')
		if err := json.Compact(&buf, o.vals[k]); err != nil {
			return nil, fmt.Errorf("member '%s': %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encode(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func tokenKind(tok json.Token) string {
	switch tok := tok.(type) {
	case json.Delim:
		if tok == '[' {
			return "array"
		}
		return string(tok)
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", tok)
}
