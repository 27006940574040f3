package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/xo101/internal/repository"
	"github.com/vytor/xo101/internal/repository/sqlite"
	"github.com/vytor/xo101/internal/testutil"
)

type SettingsRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SettingsRepository
}

func (s *SettingsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSettingsRepository(s.db)
}

func (s *SettingsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SettingsRepositorySuite) TestGet_Missing() {
	value, ok, err := s.repo.Get(context.Background(), "xo101_rating")
	s.Require().NoError(err)
	s.Assert().False(ok)
	s.Assert().Empty(value)
}

func (s *SettingsRepositorySuite) TestSetManyAndGetAll() {
	ctx := context.Background()

	err := s.repo.SetMany(ctx, map[string]string{
		"xo101_rating": "1216",
		"xo101_streak": "1",
	})
	s.Require().NoError(err)

	values, err := s.repo.GetAll(ctx, []string{"xo101_rating"})
	s.Require().NoError(err)
	s.Assert().Equal(map[string]string{"xo101_rating": "1216"}, values)
}

func (s *SettingsRepositorySuite) TestSetMany_Overwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SetMany(ctx, map[string]string{"xo101_streak": "4"}))
	s.Require().NoError(s.repo.SetMany(ctx, map[string]string{"xo101_streak": "0"}))

	values, err := s.repo.GetAll(ctx, []string{"xo101_streak"})
	s.Require().NoError(err)
	s.Assert().Equal("0", values["xo101_streak"])
}

func (s *SettingsRepositorySuite) TestSetMany_Empty() {
	s.Assert().NoError(s.repo.SetMany(context.Background(), nil))
}

func (s *SettingsRepositorySuite) TestGetAll() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SetMany(ctx, map[string]string{
		"xo101_rating":            "1184",
		"xo101_completed_puzzles": `["p1","p2"]`,
		"unrelated":               "x",
	}))

	values, err := s.repo.GetAll(ctx, []string{"xo101_rating", "xo101_completed_puzzles", "xo101_total"})
	s.Require().NoError(err)
	s.Assert().Len(values, 2)
	s.Assert().Equal("1184", values["xo101_rating"])
	s.Assert().Equal(`["p1","p2"]`, values["xo101_completed_puzzles"])
	_, ok := values["xo101_total"]
	s.Assert().False(ok)
}

func (s *SettingsRepositorySuite) TestGetAll_NoKeys() {
	values, err := s.repo.GetAll(context.Background(), nil)
	s.Require().NoError(err)
	s.Assert().Empty(values)
}

func (s *SettingsRepositorySuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.repo.SetMany(ctx, map[string]string{
		"xo101_rating": "1300",
		"xo101_streak": "2",
		"keep":         "yes",
	}))
	s.Require().NoError(s.repo.Delete(ctx, "xo101_rating", "xo101_streak"))

	values, err := s.repo.GetAll(ctx, []string{"xo101_rating", "xo101_streak", "keep"})
	s.Require().NoError(err)
	s.Assert().Equal(map[string]string{"keep": "yes"}, values)
}

func (s *SettingsRepositorySuite) TestDelete_NoKeys() {
	s.Assert().NoError(s.repo.Delete(context.Background()))
}

func TestSettingsRepositorySuite(t *testing.T) {
	suite.Run(t, new(SettingsRepositorySuite))
}
