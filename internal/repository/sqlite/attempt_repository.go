package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/models"
	"github.com/vytor/xo101/internal/repository"
)

const attemptsTable = "puzzle_attempts"

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates an AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: id=%s, puzzle_id=%s, correct=%t", a.ID, a.PuzzleID, a.WasCorrect)

	query, args, err := sqlBuilder.Insert(attemptsTable).
		Columns("id", "puzzle_id", "difficulty", "answer", "was_correct", "rating_before", "rating_after", "rating_delta", "streak", "created_at").
		Values(a.ID, a.PuzzleID, string(a.Difficulty), a.Answer, a.WasCorrect, a.RatingBefore, a.RatingAfter, a.RatingDelta, a.Streak, a.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to insert attempt: %v", err)
		return err
	}
	return nil
}

func (r *attemptRepository) Recent(ctx context.Context, limit int) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	if limit <= 0 {
		limit = 20
	}
	log.Debug("fetching recent attempts: limit=%d", limit)

	query, args, err := sqlBuilder.Select(
		"id", "puzzle_id", "difficulty", "answer", "was_correct",
		"rating_before", "rating_after", "rating_delta", "streak", "created_at",
	).From(attemptsTable).
		OrderBy("created_at DESC", "rowid DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		var difficulty string
		if err := rows.Scan(&a.ID, &a.PuzzleID, &difficulty, &a.Answer, &a.WasCorrect,
			&a.RatingBefore, &a.RatingAfter, &a.RatingDelta, &a.Streak, &a.CreatedAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		a.Difficulty = models.Difficulty(difficulty)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (r *attemptRepository) Stats(ctx context.Context) (*models.AttemptStats, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("computing attempt stats")

	stats := &models.AttemptStats{ByDifficulty: make(map[models.Difficulty]models.DifficultyStat)}

	totals, args, err := sqlBuilder.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN was_correct THEN 1 ELSE 0 END), 0)",
		"COALESCE(MAX(streak), 0)",
		"COALESCE(MAX(rating_after), 0)",
	).From(attemptsTable).ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.QueryRowContext(ctx, totals, args...).Scan(
		&stats.TotalAttempts, &stats.TotalCorrect, &stats.BestStreak, &stats.PeakRating,
	); err != nil {
		log.Error("failed to query attempt totals: %v", err)
		return nil, err
	}
	if stats.TotalAttempts == 0 {
		return stats, nil
	}
	stats.Accuracy = float64(stats.TotalCorrect) / float64(stats.TotalAttempts) * 100

	byDifficulty, args, err := sqlBuilder.Select(
		"difficulty",
		"COUNT(*)",
		"SUM(CASE WHEN was_correct THEN 1 ELSE 0 END)",
	).From(attemptsTable).GroupBy("difficulty").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, byDifficulty, args...)
	if err != nil {
		log.Error("failed to query per-difficulty stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var difficulty string
		var stat models.DifficultyStat
		if err := rows.Scan(&difficulty, &stat.Attempts, &stat.Correct); err != nil {
			log.Error("failed to scan difficulty stat: %v", err)
			return nil, err
		}
		stats.ByDifficulty[models.Difficulty(difficulty)] = stat
	}
	return stats, rows.Err()
}

func (r *attemptRepository) DeleteAll(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	query, args, err := sqlBuilder.Delete(attemptsTable).Where(squirrel.Expr("1 = 1")).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to delete attempts: %v", err)
		return err
	}
	n, _ := res.RowsAffected()
	log.Info("deleted %d attempts", n)
	return nil
}
