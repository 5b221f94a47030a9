// Package memory is a thread-safe in-process twin of the Postgres
// repositories. It applies the same ownership rules, ordering and cascades and
// backs the memory storage driver and the handler tests.
package memory

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/jobtracker/pkg/application"
	"github.com/artem13815/jobtracker/pkg/auth"
	"github.com/artem13815/jobtracker/pkg/interview"
	"github.com/artem13815/jobtracker/pkg/question"
	"github.com/artem13815/jobtracker/pkg/resource"
)

type Memory struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]auth.User
	applications map[uuid.UUID]application.Application
	interviews   map[uuid.UUID]interview.Interview
	resources    map[uuid.UUID]resource.Resource
	questions    map[uuid.UUID]question.Question
}

// New creates an empty in-memory store.
func New() *Memory {
	return &Memory{
		users:        make(map[uuid.UUID]auth.User),
		applications: make(map[uuid.UUID]application.Application),
		interviews:   make(map[uuid.UUID]interview.Interview),
		resources:    make(map[uuid.UUID]resource.Resource),
		questions:    make(map[uuid.UUID]question.Question),
	}
}

func (m *Memory) Users() *UserRepository               { return &UserRepository{m: m} }
func (m *Memory) Applications() *ApplicationRepository { return &ApplicationRepository{m: m} }
func (m *Memory) Interviews() *InterviewRepository     { return &InterviewRepository{m: m} }
func (m *Memory) Resources() *ResourceRepository       { return &ResourceRepository{m: m} }
func (m *Memory) Questions() *QuestionRepository       { return &QuestionRepository{m: m} }

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}

// ownsApplicationLocked reports whether id names an application of userID.
func (m *Memory) ownsApplicationLocked(userID, id uuid.UUID) bool {
	a, ok := m.applications[id]
	return ok && a.UserID == userID
}

// deleteApplicationLocked removes an application with its interviews and
// unlinks resources pointing at it.
func (m *Memory) deleteApplicationLocked(id uuid.UUID) {
	delete(m.applications, id)
	for ivID, iv := range m.interviews {
		if iv.ApplicationID == id {
			delete(m.interviews, ivID)
		}
	}
	for rID, r := range m.resources {
		if r.LinkedApplicationID != nil && *r.LinkedApplicationID == id {
			r.LinkedApplicationID = nil
			m.resources[rID] = r
		}
	}
}
