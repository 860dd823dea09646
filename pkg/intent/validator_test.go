package intent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateFromJSON(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var candidate map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &candidate))
	return candidate
}

func TestValidateTopLevelShortCircuit(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing intent", `{"payload": {}, "reply": "hi"}`},
		{"unknown intent", `{"intent": "delete_everything", "payload": {}, "reply": "hi"}`},
		{"missing payload", `{"intent": "none", "reply": "hi"}`},
		{"payload not object", `{"intent": "none", "payload": "oops", "reply": "hi"}`},
		{"missing reply", `{"intent": "none", "payload": {}}`},
		{"blank reply", `{"intent": "none", "payload": {}, "reply": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(candidateFromJSON(t, tt.raw))
			assert.False(t, result.Valid)
			assert.NotEmpty(t, result.Errors)
		})
	}
}

func TestValidateNilCandidate(t *testing.T) {
	result := Validate(nil)
	assert.False(t, result.Valid)
}

func TestValidatePerIntentRules(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{
			name:  "create_task minimal",
			raw:   `{"intent": "create_task", "payload": {"title": "Read chapter 4"}, "reply": "Added it."}`,
			valid: true,
		},
		{
			name:  "create_task missing title",
			raw:   `{"intent": "create_task", "payload": {}, "reply": "Added it."}`,
			valid: false,
		},
		{
			name:  "create_task blank title",
			raw:   `{"intent": "create_task", "payload": {"title": "  "}, "reply": "Added it."}`,
			valid: false,
		},
		{
			name:  "create_task with valid date",
			raw:   `{"intent": "create_task", "payload": {"title": "Essay", "dueDate": "2026-09-15"}, "reply": "Done."}`,
			valid: true,
		},
		{
			name:  "create_task with rfc3339 date",
			raw:   `{"intent": "create_task", "payload": {"title": "Essay", "dueDate": "2026-09-15T10:00:00Z"}, "reply": "Done."}`,
			valid: true,
		},
		{
			name:  "create_task invalid date",
			raw:   `{"intent": "create_task", "payload": {"title": "Essay", "dueDate": "next tuesday"}, "reply": "Done."}`,
			valid: false,
		},
		{
			name:  "create_task invalid priority",
			raw:   `{"intent": "create_task", "payload": {"title": "Essay", "priority": "ASAP"}, "reply": "Done."}`,
			valid: false,
		},
		{
			name:  "create_task valid priority",
			raw:   `{"intent": "create_task", "payload": {"title": "Essay", "priority": "Urgent"}, "reply": "Done."}`,
			valid: true,
		},
		{
			name:  "update_task minimal",
			raw:   `{"intent": "update_task", "payload": {"id": "abc", "title": "New title"}, "reply": "Updated."}`,
			valid: true,
		},
		{
			name:  "update_task missing id",
			raw:   `{"intent": "update_task", "payload": {"title": "New title"}, "reply": "Updated."}`,
			valid: false,
		},
		{
			name:  "update_task invalid status",
			raw:   `{"intent": "update_task", "payload": {"id": "abc", "status": "done"}, "reply": "Updated."}`,
			valid: false,
		},
		{
			name:  "update_task valid status",
			raw:   `{"intent": "update_task", "payload": {"id": "abc", "status": "in-progress"}, "reply": "Updated."}`,
			valid: true,
		},
		{
			name:  "complete_task minimal",
			raw:   `{"intent": "complete_task", "payload": {"id": "abc"}, "reply": "Nice work!"}`,
			valid: true,
		},
		{
			name:  "complete_task missing id",
			raw:   `{"intent": "complete_task", "payload": {}, "reply": "Nice work!"}`,
			valid: false,
		},
		{
			name:  "create_subject minimal",
			raw:   `{"intent": "create_subject", "payload": {"name": "Biology"}, "reply": "Added Biology."}`,
			valid: true,
		},
		{
			name:  "create_subject missing name",
			raw:   `{"intent": "create_subject", "payload": {"color": "#ff0000"}, "reply": "Added."}`,
			valid: false,
		},
		{
			name:  "none with empty payload",
			raw:   `{"intent": "none", "payload": {}, "reply": "What would you like to do?"}`,
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(candidateFromJSON(t, tt.raw))
			assert.Equal(t, tt.valid, result.Valid, "errors: %v", result.Errors)
		})
	}
}
