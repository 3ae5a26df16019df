package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// AnswerKind discriminates the per-section answer union.
type AnswerKind int

const (
	AnswerNone AnswerKind = iota
	AnswerString
	AnswerList
)

// Answer is one section's submitted value: a single option name, a list of
// option names, or free text. The wire shape is `string | [string]`; the
// declared section type decides which kinds are acceptable, checked by the
// schema validator.
type Answer struct {
	Kind AnswerKind
	Text string
	List []string
}

// StringAnswer builds a single-value answer.
func StringAnswer(value string) Answer {
	return Answer{Kind: AnswerString, Text: value}
}

// ListAnswer builds a multi-value answer.
func ListAnswer(values ...string) Answer {
	return Answer{Kind: AnswerList, List: values}
}

// IsEmpty reports whether the answer carries no usable value for its kind.
// Whitespace-only text counts as empty.
func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case AnswerString:
		return strings.TrimSpace(a.Text) == ""
	case AnswerList:
		return len(a.List) == 0
	default:
		return true
	}
}

// UnmarshalJSON accepts a JSON string, an array of strings, or null.
func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*a = Answer{}
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("answer list must contain only strings: %w", err)
		}
		*a = Answer{Kind: AnswerList, List: list}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("answer must be a string or a list of strings: %w", err)
	}
	*a = Answer{Kind: AnswerString, Text: s}
	return nil
}

// MarshalJSON emits the wire shape for the answer's kind.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerString:
		return json.Marshal(a.Text)
	case AnswerList:
		return json.Marshal(a.List)
	default:
		return []byte("null"), nil
	}
}

// MarshalBSONValue stores the answer as a plain string or string array so
// vote documents stay readable with ad-hoc queries.
func (a Answer) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch a.Kind {
	case AnswerString:
		return bson.MarshalValue(a.Text)
	case AnswerList:
		if a.List == nil {
			return bson.MarshalValue([]string{})
		}
		return bson.MarshalValue(a.List)
	default:
		return bson.TypeNull, nil, nil
	}
}

// UnmarshalBSONValue reads stored answers back. Values of unexpected BSON
// types are treated as absent rather than erroring, so tallies over old
// documents never fail.
func (a *Answer) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeString:
		s, ok := rv.StringValueOK()
		if !ok {
			return fmt.Errorf("malformed string answer")
		}
		*a = Answer{Kind: AnswerString, Text: s}
		return nil
	case bson.TypeArray:
		var list []string
		if err := rv.Unmarshal(&list); err != nil {
			return fmt.Errorf("malformed list answer: %w", err)
		}
		*a = Answer{Kind: AnswerList, List: list}
		return nil
	default:
		*a = Answer{}
		return nil
	}
}
