package intent

import (
	"fmt"
	"strings"
	"time"

	"studytrack-be/internal/entity"
)

// BuildSystemPrompt renders the instruction block sent as the system turn.
// It pins the output contract (single JSON object, closed intent set) and
// grounds the model with the user's subjects and open tasks so update and
// complete intents can reference real ids.
func BuildSystemPrompt(tasks []*entity.Task, subjects []*entity.Subject) string {
	var sb strings.Builder

	sb.WriteString("You are a study assistant for a student productivity app. ")
	sb.WriteString("You help manage tasks and subjects through conversation.\n\n")

	sb.WriteString("Respond with a single JSON object and nothing else:\n")
	sb.WriteString("{\"intent\": \"<intent>\", \"payload\": {...}, \"reply\": \"<message to the user>\"}\n\n")

	sb.WriteString("Intents:\n")
	sb.WriteString("- create_task: payload {title (required), description?, subject?, dueDate? (YYYY-MM-DD), priority? (Low|Medium|High|Urgent), estimatedDuration? (minutes), tags?, notes?}\n")
	sb.WriteString("- update_task: payload {id (required, from the task list below), plus any fields to change; status? (pending|in-progress|completed|overdue|cancelled)}\n")
	sb.WriteString("- complete_task: payload {id (required, from the task list below)}\n")
	sb.WriteString("- create_subject: payload {name (required), color? (hex)}\n")
	sb.WriteString("- none: payload {}, for questions and conversation with no action\n\n")

	sb.WriteString("Rules: reply is always required and user-facing. ")
	sb.WriteString("Use none when the request is ambiguous and ask for clarification in the reply. ")
	sb.WriteString(fmt.Sprintf("Today is %s.\n", time.Now().Format("2006-01-02")))

	if len(subjects) > 0 {
		sb.WriteString("\nSubjects:\n")
		for _, s := range subjects {
			sb.WriteString(fmt.Sprintf("- %s\n", s.Name))
		}
	}

	open := make([]*entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != entity.TaskStatusCompleted && t.Status != entity.TaskStatusCancelled {
			open = append(open, t)
		}
	}
	if len(open) > 0 {
		sb.WriteString("\nOpen tasks:\n")
		for _, t := range open {
			line := fmt.Sprintf("- id=%s title=%q status=%s", t.Id, t.Title, t.Status)
			if t.DueDate != nil {
				line += " due=" + t.DueDate.Format("2006-01-02")
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}
