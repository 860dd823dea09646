// Package intent implements the chat action pipeline: normalizing raw model
// output, validating the candidate action object, and executing the resolved
// action against the user's data.
package intent

// Intent is the closed vocabulary of actions the assistant may take.
type Intent string

const (
	IntentCreateTask    Intent = "create_task"
	IntentUpdateTask    Intent = "update_task"
	IntentCompleteTask  Intent = "complete_task"
	IntentCreateSubject Intent = "create_subject"
	IntentNone          Intent = "none"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentCreateTask, IntentUpdateTask, IntentCompleteTask, IntentCreateSubject, IntentNone:
		return true
	}
	return false
}

// Response is the structured action extracted from one model turn.
// It is consumed immediately and never persisted verbatim; only the
// intent and payload survive as message metadata.
type Response struct {
	Intent  Intent
	Payload map[string]interface{}
	Reply   string
}
