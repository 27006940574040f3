package sqlite

import (
	"context"
	"database/sql"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/repository"
)

const settingsTable = "learner_settings"

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a SettingsRepository backed by the learner_settings table.
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetAll(ctx context.Context, keys []string) (map[string]string, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	query, args, err := sqlBuilder.Select("name", "value").From(settingsTable).Where(squirrel.Eq{"name": keys}).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query settings: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			log.Error("failed to scan setting row: %v", err)
			return nil, err
		}
		out[k] = v
	}
	log.Debug("loaded %d of %d settings", len(out), len(keys))
	return out, rows.Err()
}

func (r *settingsRepository) SetMany(ctx context.Context, values map[string]string) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	insert := sqlBuilder.Insert(settingsTable).Columns("name", "value", "updated_at")
	for _, k := range keys {
		insert = insert.Values(k, values[k], squirrel.Expr("CURRENT_TIMESTAMP"))
	}
	query, args, err := insert.
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	err = tx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Error("failed to write %d settings: %v", len(values), err)
		return err
	}
	log.Debug("wrote %d settings", len(values))
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlBuilder.Delete(settingsTable).Where(squirrel.Eq{"name": keys}).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).WithPrefix("settings_repo").Error("failed to delete settings: %v", err)
		return err
	}
	return nil
}
