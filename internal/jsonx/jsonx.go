// Package jsonx contains JSON helpers for object key order. encoding/json
// loses map insertion order on both decode and encode, but the catalog
// sources treat the order of the "documentos" and "tipos_documentos"
// mappings as significant, so those objects are walked and rebuilt with a
// token-level decoder and a hand-rolled writer.
package jsonx

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Member is one key/value pair of an ordered JSON object.
type Member struct {
	Key   string
	Value json.RawMessage
}

// IsObject reports whether the raw value is a JSON object.
func IsObject(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// EachMember walks the members of a JSON object in source order.
func EachMember(raw []byte, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}

		if err := fn(key, value); err != nil {
			return err
		}
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Members collects all members of a JSON object in source order.
func Members(raw []byte) ([]Member, error) {
	var members []Member
	err := EachMember(raw, func(key string, value json.RawMessage) error {
		members = append(members, Member{Key: key, Value: value})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// MarshalObject builds a JSON object from members, preserving their order.
func MarshalObject(members []Member) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(m.Value) == 0 {
			return nil, fmt.Errorf("member %q has empty value", m.Key)
		}
		buf.Write(m.Value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Indent pretty-prints raw JSON with two-space indentation, matching the
// formatting of the hand-maintained catalog files.
func Indent(raw json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
