package bot

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	domain "github.com/spapas/todo-telegram-bot/domain/task"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

// memoryTasks is an in-memory TaskPort.
type memoryTasks struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*domain.Task
	err    error
}

func newMemoryTasks() *memoryTasks {
	return &memoryTasks{tasks: make(map[int64]*domain.Task)}
}

func (s *memoryTasks) AddTask(_ context.Context, userID int64, draft domain.Draft) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	s.nextID++
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t := &domain.Task{
		ID:          s.nextID,
		UserID:      userID,
		Description: draft.Description,
		Who:         draft.Who,
		Category:    draft.Category,
		Tags:        domain.JoinTags(draft.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[t.ID] = t
	cp := *t
	return &cp, nil
}

func (s *memoryTasks) ListTasks(_ context.Context, userID int64, filter domain.Filter) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	var out []domain.Task
	for _, t := range s.tasks {
		if t.UserID == userID && filter.Matches(t) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryTasks) CompleteTask(_ context.Context, userID, taskID int64) (*domain.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, false, s.err
	}

	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, false, domain.NotFound(taskID)
	}
	if t.Completed {
		cp := *t
		return &cp, false, nil
	}
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	t.Completed = true
	t.CompletedAt = &now
	t.UpdatedAt = now
	cp := *t
	return &cp, true, nil
}

func (s *memoryTasks) UpdateTask(_ context.Context, userID, taskID int64, changes domain.Changes) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, domain.NotFound(taskID)
	}
	if changes.Description != nil {
		t.Description = *changes.Description
	}
	if changes.Who != nil {
		t.Who = *changes.Who
	}
	if changes.Category != nil {
		t.Category = *changes.Category
	}
	if changes.Tags != nil {
		t.Tags = domain.JoinTags(*changes.Tags)
	}
	cp := *t
	return &cp, nil
}

var errStoreDown = errors.New("store unavailable")

// recordingSender captures everything sent to Telegram.
type recordingSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	err      error
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return tgbotapi.Message{}, s.err
	}
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, nil
}

func (s *recordingSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}
