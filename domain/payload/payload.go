// Package payload models the semi-structured document attached to audit
// entries as an explicit tagged union instead of interface{} juggling.
// Object member order is preserved on both encode and decode, and numbers
// keep the literal text they were written with, so a stored payload renders
// back exactly the way the recorder serialized it.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// Value is one node of a payload document.
type Value struct {
	Kind    Kind
	Str     string   // KindString
	Num     string   // KindNumber, literal text as written
	Boolean bool     // KindBool
	Items   []Value  // KindArray
	Members []Member // KindObject, insertion order
}

// Member is a single key/value pair of an object node.
type Member struct {
	Key   string
	Value Value
}

func Null() Value                 { return Value{Kind: KindNull} }
func String(s string) Value       { return Value{Kind: KindString, Str: s} }
func Bool(b bool) Value           { return Value{Kind: KindBool, Boolean: b} }
func Number(literal string) Value { return Value{Kind: KindNumber, Num: literal} }

func Int(n int64) Value {
	return Value{Kind: KindNumber, Num: fmt.Sprintf("%d", n)}
}

func Array(items ...Value) Value {
	return Value{Kind: KindArray, Items: items}
}

// Strings builds an array of string values, the shape used for the
// ChangedFields diff lists.
func Strings(items []string) Value {
	values := make([]Value, 0, len(items))
	for _, item := range items {
		values = append(values, String(item))
	}
	return Value{Kind: KindArray, Items: values}
}

// Object builds an object node preserving the given member order.
func Object(members ...Member) Value {
	return Value{Kind: KindObject, Members: members}
}

func Field(key string, value Value) Member {
	return Member{Key: key, Value: value}
}

// Encode serializes the value as a compact JSON document. Object members
// are written in insertion order and number literals verbatim.
func (v Value) Encode() string {
	var buf bytes.Buffer
	v.encode(&buf)
	return buf.String()
}

func (v Value) encode(buf *bytes.Buffer) {
	switch v.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		encoded, err := json.Marshal(v.Str)
		if err != nil {
			// json.Marshal of a string cannot fail; keep the branch total.
			buf.WriteString(`""`)
			return
		}
		buf.Write(encoded)
	case KindNumber:
		if v.Num == "" {
			buf.WriteString("0")
			return
		}
		buf.WriteString(v.Num)
	case KindBool:
		if v.Boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.encode(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(m.Key)
			if err != nil {
				key = []byte(`""`)
			}
			buf.Write(key)
			buf.WriteByte(':')
			m.Value.encode(buf)
		}
		buf.WriteByte('}')
	}
}

// Parse decodes a JSON document into a Value. Unlike json.Unmarshal into a
// map, object member order survives and numbers keep their literal form.
func Parse(raw string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("parse payload: %w", err)
	}
	value, err := parseValue(dec, tok)
	if err != nil {
		return Value{}, fmt.Errorf("parse payload: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("parse payload: trailing data after document")
	}
	return value, nil
}

func parseValue(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func parseObject(dec *json.Decoder) (Value, error) {
	var members []Member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		value, err := parseValue(dec, valTok)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Key: key, Value: value})
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{Kind: KindObject, Members: members}, nil
}

func parseArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		item, err := parseValue(dec, tok)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{Kind: KindArray, Items: items}, nil
}
