package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Answer
		wantErr bool
	}{
		{name: "string", input: `"Option A"`, want: StringAnswer("Option A")},
		{name: "list", input: `["X","Y"]`, want: ListAnswer("X", "Y")},
		{name: "empty list", input: `[]`, want: Answer{Kind: AnswerList, List: []string{}}},
		{name: "null", input: `null`, want: Answer{}},
		{name: "number rejected", input: `42`, wantErr: true},
		{name: "object rejected", input: `{"a":1}`, wantErr: true},
		{name: "mixed list rejected", input: `["X",1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Answer
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswerMarshalJSON(t *testing.T) {
	votes := map[string]Answer{
		"host":    StringAnswer("A"),
		"songs":   ListAnswer("X", "Y"),
		"comment": {},
	}

	data, err := json.Marshal(votes)
	require.NoError(t, err)
	assert.JSONEq(t, `{"host":"A","songs":["X","Y"],"comment":null}`, string(data))
}

func TestAnswerJSONRoundTrip(t *testing.T) {
	original := map[string]Answer{
		"host":  StringAnswer("B"),
		"songs": ListAnswer("Z"),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded map[string]Answer
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestAnswerIsEmpty(t *testing.T) {
	assert.True(t, Answer{}.IsEmpty())
	assert.True(t, StringAnswer("").IsEmpty())
	assert.True(t, StringAnswer("   ").IsEmpty())
	assert.True(t, ListAnswer().IsEmpty())

	assert.False(t, StringAnswer("A").IsEmpty())
	assert.False(t, ListAnswer("X").IsEmpty())
}
