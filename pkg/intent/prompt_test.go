package intent

import (
	"strings"
	"testing"
	"time"

	"studytrack-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPromptGrounding(t *testing.T) {
	open := &entity.Task{Id: uuid.New(), Title: "Read chapter 4", Status: entity.TaskStatusPending}
	done := &entity.Task{Id: uuid.New(), Title: "Old homework", Status: entity.TaskStatusCompleted}
	cancelled := &entity.Task{Id: uuid.New(), Title: "Dropped", Status: entity.TaskStatusCancelled}
	subject := &entity.Subject{Id: uuid.New(), Name: "Biology"}

	prompt := BuildSystemPrompt([]*entity.Task{open, done, cancelled}, []*entity.Subject{subject})

	assert.Contains(t, prompt, open.Id.String())
	assert.Contains(t, prompt, "Read chapter 4")
	assert.Contains(t, prompt, "Biology")
	assert.Contains(t, prompt, time.Now().Format("2006-01-02"))

	// Closed tasks are not offered as action targets.
	assert.NotContains(t, prompt, done.Id.String())
	assert.NotContains(t, prompt, cancelled.Id.String())
}

func TestBuildSystemPromptEmptyState(t *testing.T) {
	prompt := BuildSystemPrompt(nil, nil)

	assert.True(t, strings.Contains(prompt, "create_task"))
	assert.NotContains(t, prompt, "Open tasks:")
	assert.NotContains(t, prompt, "Subjects:")
}
