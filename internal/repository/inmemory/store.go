// Package inmemory provides in-process implementations of the repository
// contracts. They back unit tests that exercise service logic without a
// running Postgres instance and honor the same specification types as the
// GORM implementations.
package inmemory

import (
	"sync"

	"studytrack-be/internal/entity"
)

// Store is the shared state behind every in-memory repository. A single
// Store is handed to NewFactory so all units of work observe the same data.
type Store struct {
	mu sync.RWMutex

	users    []entity.User
	tasks    []entity.Task
	subjects []entity.Subject
	events   []entity.Event
	sessions []entity.ChatSession
	messages []entity.ChatMessage

	// Error injection for failure-path tests. When set, the matching
	// repository operation returns the error instead of mutating state.
	TaskCreateErr    error
	MessageCreateErr error
}

func NewStore() *Store {
	return &Store{}
}

func cloneTask(t entity.Task) entity.Task {
	if t.Tags != nil {
		tags := make([]string, len(t.Tags))
		copy(tags, t.Tags)
		t.Tags = tags
	}
	return t
}

func cloneMessage(m entity.ChatMessage) entity.ChatMessage {
	if m.Metadata != nil {
		meta := *m.Metadata
		if meta.Payload != nil {
			payload := make(map[string]interface{}, len(meta.Payload))
			for k, v := range meta.Payload {
				payload[k] = v
			}
			meta.Payload = payload
		}
		m.Metadata = &meta
	}
	return m
}
