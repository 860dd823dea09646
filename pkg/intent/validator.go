package intent

import (
	"fmt"
	"strings"
	"time"
)

// ValidationResult reports whether a candidate object satisfies the action
// contract. Errors are operator-facing; they are logged, never shown to the
// end user.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

var taskPriorities = map[string]bool{
	"Low": true, "Medium": true, "High": true, "Urgent": true,
}

var taskStatuses = map[string]bool{
	"pending": true, "in-progress": true, "completed": true,
	"overdue": true, "cancelled": true,
}

// Validate checks a parsed candidate against the closed intent set and the
// per-intent payload rules. Top-level checks (object shape, intent, payload,
// reply) short-circuit: payload rules are only evaluated once all of them
// pass.
func Validate(candidate map[string]interface{}) ValidationResult {
	if candidate == nil {
		return invalid("response is not a JSON object")
	}

	var errs []string

	intentRaw, ok := candidate["intent"].(string)
	if !ok || !Intent(intentRaw).Valid() {
		errs = append(errs, fmt.Sprintf("intent must be one of create_task, update_task, complete_task, create_subject, none; got %v", candidate["intent"]))
	}

	payload, payloadOk := candidate["payload"].(map[string]interface{})
	if candidate["payload"] == nil || !payloadOk {
		errs = append(errs, "payload must be an object")
	}

	reply, replyOk := candidate["reply"].(string)
	if !replyOk || strings.TrimSpace(reply) == "" {
		errs = append(errs, "reply must be a non-empty string")
	}

	if len(errs) > 0 {
		return ValidationResult{Valid: false, Errors: errs}
	}

	switch Intent(intentRaw) {
	case IntentCreateTask:
		if !hasNonEmptyString(payload, "title") {
			errs = append(errs, "create_task payload requires a non-empty title")
		}
		errs = append(errs, checkDueDate(payload)...)
		errs = append(errs, checkPriority(payload)...)
	case IntentUpdateTask:
		if !hasNonEmptyString(payload, "id") {
			errs = append(errs, "update_task payload requires a non-empty id")
		}
		errs = append(errs, checkDueDate(payload)...)
		errs = append(errs, checkPriority(payload)...)
		if raw, present := payload["status"]; present {
			status, ok := raw.(string)
			if !ok || !taskStatuses[status] {
				errs = append(errs, fmt.Sprintf("status must be one of pending, in-progress, completed, overdue, cancelled; got %v", raw))
			}
		}
	case IntentCompleteTask:
		if !hasNonEmptyString(payload, "id") {
			errs = append(errs, "complete_task payload requires a non-empty id")
		}
	case IntentCreateSubject:
		if !hasNonEmptyString(payload, "name") {
			errs = append(errs, "create_subject payload requires a non-empty name")
		}
	case IntentNone:
		// No payload constraints.
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func invalid(msg string) ValidationResult {
	return ValidationResult{Valid: false, Errors: []string{msg}}
}

func hasNonEmptyString(payload map[string]interface{}, key string) bool {
	value, ok := payload[key].(string)
	return ok && strings.TrimSpace(value) != ""
}

func checkDueDate(payload map[string]interface{}) []string {
	raw, present := payload["dueDate"]
	if !present || raw == nil {
		return nil
	}
	value, ok := raw.(string)
	if !ok {
		return []string{fmt.Sprintf("dueDate must be a date string; got %v", raw)}
	}
	if _, ok := parseDate(value); !ok {
		return []string{fmt.Sprintf("dueDate is not a valid date: %q", value)}
	}
	return nil
}

func checkPriority(payload map[string]interface{}) []string {
	raw, present := payload["priority"]
	if !present {
		return nil
	}
	value, ok := raw.(string)
	if !ok || !taskPriorities[value] {
		return []string{fmt.Sprintf("priority must be one of Low, Medium, High, Urgent; got %v", raw)}
	}
	return nil
}

// parseDate accepts the date formats the model is prompted to emit.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
