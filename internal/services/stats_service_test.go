package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/xo101/internal/errors"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/services"
	"github.com/vytor/xo101/internal/testutil/mocks"
)

func TestGetAttemptStats(t *testing.T) {
	repo := new(mocks.MockAttemptRepository)
	want := &models.AttemptStats{TotalAttempts: 3, TotalCorrect: 2}
	repo.On("Stats", context.Background()).Return(want, nil)

	got, err := services.NewStatsService(repo).GetAttemptStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetAttemptStats_Error(t *testing.T) {
	repo := new(mocks.MockAttemptRepository)
	repo.On("Stats", context.Background()).Return(nil, stderrors.New("db closed"))

	_, err := services.NewStatsService(repo).GetAttemptStats(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}

func TestGetRecentAttempts(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		repoLimit int
		wantCode  string
	}{
		{name: "default limit", limit: 0, repoLimit: 20},
		{name: "explicit limit", limit: 5, repoLimit: 5},
		{name: "negative", limit: -1, wantCode: errors.ErrCodeValidation},
		{name: "too large", limit: 500, wantCode: errors.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockAttemptRepository)
			if tt.wantCode == "" {
				repo.On("Recent", context.Background(), tt.repoLimit).Return(nil, nil)
			}

			attempts, err := services.NewStatsService(repo).GetRecentAttempts(context.Background(), tt.limit)
			if tt.wantCode != "" {
				assert.True(t, errors.IsCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, attempts)
			assert.Empty(t, attempts)
			repo.AssertExpectations(t)
		})
	}
}
