package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/xo101/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueAttempt(attempt models.Attempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockJobQueue) ClearAttempts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
