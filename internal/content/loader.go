package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/xo101/internal/logger"
	"github.com/vytor/xo101/internal/models"
	"gopkg.in/yaml.v3"
)

// Content is the read-only material a quiz session runs on.
type Content struct {
	Puzzles   []models.Puzzle
	Analytics []models.AnalyticsRecord
}

// Loader reads puzzle and analytics files from disk or over HTTP. Sources
// ending in .yaml or .yml are decoded as YAML, everything else as JSON. Both
// formats hold a top-level list.
type Loader struct {
	validate   *validator.Validate
	httpClient *http.Client
}

type LoaderOption func(*Loader)

func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.httpClient = c }
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		validate:   validator.New(),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadPuzzles reads the puzzle list at path. Puzzles without an id and repeated
// ids are dropped with a warning.
func (l *Loader) LoadPuzzles(ctx context.Context, path string) ([]models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("content")

	var raw []models.Puzzle
	if err := l.decode(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("load puzzles: %w", err)
	}

	seen := make(map[string]bool, len(raw))
	puzzles := make([]models.Puzzle, 0, len(raw))
	for i, p := range raw {
		if err := l.validate.Struct(p); err != nil {
			log.Warn("skipping puzzle #%d in %s: %s", i, path, describe(err))
			continue
		}
		if seen[p.ID] {
			log.Warn("skipping puzzle #%d in %s: duplicate id %q", i, path, p.ID)
			continue
		}
		seen[p.ID] = true
		puzzles = append(puzzles, p)
	}

	log.Info("loaded %d puzzles from %s (%d skipped)", len(puzzles), path, len(raw)-len(puzzles))
	return puzzles, nil
}

// LoadAnalytics reads the analytics records at path. Records that fail
// validation are dropped with a warning.
func (l *Loader) LoadAnalytics(ctx context.Context, path string) ([]models.AnalyticsRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("content")

	var raw []models.AnalyticsRecord
	if err := l.decode(ctx, path, &raw); err != nil {
		return nil, fmt.Errorf("load analytics: %w", err)
	}

	records := make([]models.AnalyticsRecord, 0, len(raw))
	for i, r := range raw {
		if err := l.validate.Struct(r); err != nil {
			log.Warn("skipping analytics record #%d in %s: %s", i, path, describe(err))
			continue
		}
		records = append(records, r)
	}

	log.Info("loaded %d analytics records from %s (%d skipped)", len(records), path, len(raw)-len(records))
	return records, nil
}

// LoadOrEmpty loads both content files. A file that cannot be read or parsed
// is logged and replaced by an empty list so the session can still start.
func (l *Loader) LoadOrEmpty(ctx context.Context, puzzlesPath, analyticsPath string) Content {
	log := logger.FromContext(ctx).WithPrefix("content")

	puzzles, err := l.LoadPuzzles(ctx, puzzlesPath)
	if err != nil {
		log.Error("continuing without puzzles: %v", err)
		puzzles = []models.Puzzle{}
	}

	records, err := l.LoadAnalytics(ctx, analyticsPath)
	if err != nil {
		log.Error("continuing without analytics: %v", err)
		records = []models.AnalyticsRecord{}
	}

	return Content{Puzzles: puzzles, Analytics: records}
}

func (l *Loader) decode(ctx context.Context, source string, out any) error {
	var data []byte
	var err error
	if isRemote(source) {
		data, err = l.fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}

	switch extension(source) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", source, err)
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
