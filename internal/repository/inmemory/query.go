package inmemory

import (
	"studytrack-be/internal/repository/specification"

	"github.com/google/uuid"
)

// parsedQuery is the in-memory interpretation of a specification list.
// Only the specification types the services actually emit are understood;
// an unknown specification type would silently match everything, so the
// supported set below must stay in sync with the specification package.
type parsedQuery struct {
	id        *uuid.UUID
	userId    *uuid.UUID
	email     string
	sessionId *uuid.UUID
	filters   map[string]interface{}
	orderBy   *specification.OrderBy
	limit     int
	offset    int
}

func parseSpecs(specs []specification.Specification) parsedQuery {
	q := parsedQuery{limit: -1, filters: map[string]interface{}{}}
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			id := spec.ID
			q.id = &id
		case specification.UserOwnedBy:
			userId := spec.UserID
			q.userId = &userId
		case specification.ByEmail:
			q.email = spec.Email
		case specification.ByChatSessionID:
			sessionId := spec.ChatSessionID
			q.sessionId = &sessionId
		case specification.FilterBy:
			q.filters[spec.Field] = spec.Value
		case specification.OrderBy:
			order := spec
			q.orderBy = &order
		case specification.Pagination:
			q.limit = spec.Limit
			q.offset = spec.Offset
		}
	}
	return q
}

// window applies offset/limit to an already-ordered result length and
// returns the [start, end) slice bounds.
func (q parsedQuery) window(total int) (int, int) {
	start := q.offset
	if start > total {
		start = total
	}
	end := total
	if q.limit >= 0 && start+q.limit < end {
		end = start + q.limit
	}
	return start, end
}
