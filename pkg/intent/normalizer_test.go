package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare object unchanged",
			raw:  `{"intent": "none", "payload": {}, "reply": "hi"}`,
			want: `{"intent": "none", "payload": {}, "reply": "hi"}`,
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "\n  {\"intent\": \"none\"}  \n",
			want: `{"intent": "none"}`,
		},
		{
			name: "json fence with language tag",
			raw:  "```json\n{\"intent\": \"none\", \"payload\": {}}\n```",
			want: `{"intent": "none", "payload": {}}`,
		},
		{
			name: "fence without language tag",
			raw:  "```\n{\"intent\": \"none\"}\n```",
			want: `{"intent": "none"}`,
		},
		{
			name: "unterminated fence",
			raw:  "```json\n{\"intent\": \"none\"}",
			want: `{"intent": "none"}`,
		},
		{
			name: "prose around the object",
			raw:  `Sure! Here is the result: {"intent": "none", "reply": "ok"} Hope that helps.`,
			want: `{"intent": "none", "reply": "ok"}`,
		},
		{
			name: "prose and fence combined",
			raw:  "Here you go:\n```json\n{\"intent\": \"create_task\", \"payload\": {\"title\": \"Read\"}}\n```\nLet me know!",
			want: `{"intent": "create_task", "payload": {"title": "Read"}}`,
		},
		{
			name: "no object passes through",
			raw:  "I could not produce JSON for that.",
			want: "I could not produce JSON for that.",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "nested braces keep the outer object",
			raw:  `noise {"payload": {"title": "a"}} trailing`,
			want: `{"payload": {"title": "a"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		`{"intent": "none", "payload": {}, "reply": "hi"}`,
		"```json\n{\"intent\": \"none\"}\n```",
		`prose before {"a": 1} prose after`,
		"no json here at all",
	}

	for _, raw := range inputs {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", raw)
	}
}
