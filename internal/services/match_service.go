package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/launchpool/launchpool/internal/cache"
	"github.com/launchpool/launchpool/internal/matching"
	"github.com/launchpool/launchpool/internal/models"
	mongorepo "github.com/launchpool/launchpool/internal/repositories/mongo"
	pgrepo "github.com/launchpool/launchpool/internal/repositories/postgres"
	"github.com/launchpool/launchpool/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	DefaultLimit    = 10
	MaxLimit        = 50
	DefaultMinScore = 40

	candidatePoolSize = 200
	scoringWorkers    = 8
	recsCacheTTL      = 2 * time.Minute
)

type MatchService interface {
	CalculateScore(ctx context.Context, userID, projectID string) (*models.MatchScore, error)
	FindTopMatches(ctx context.Context, userID string, limit, minScore int) ([]models.MatchScore, error)
	RecordAction(ctx context.Context, score *models.MatchScore, action models.MatchAction) error
	History(ctx context.Context, userID string, limit int) ([]models.MatchHistory, error)
}

type MatchServiceDeps struct {
	Users    pgrepo.UserRepository
	Projects pgrepo.ProjectRepository
	History  mongorepo.MatchHistoryRepository
	Recorder HistoryRecorder
	Engine   *matching.Engine
	Cache    cache.Cache // optional
	Filter   *pgrepo.CandidateFilter
	Logger   *logrus.Logger
}

type matchService struct {
	users    pgrepo.UserRepository
	projects pgrepo.ProjectRepository
	history  mongorepo.MatchHistoryRepository
	recorder HistoryRecorder
	engine   *matching.Engine
	cache    cache.Cache
	filter   pgrepo.CandidateFilter
	log      *logrus.Logger
}

func NewMatchService(d MatchServiceDeps) MatchService {
	filter := pgrepo.DefaultCandidateFilter()
	if d.Filter != nil {
		filter = *d.Filter
	}
	if d.Engine == nil {
		d.Engine = matching.NewEngine(matching.DefaultConfig())
	}
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	return &matchService{
		users:    d.Users,
		projects: d.Projects,
		history:  d.History,
		recorder: d.Recorder,
		engine:   d.Engine,
		cache:    d.Cache,
		filter:   filter,
		log:      d.Logger,
	}
}

func (s *matchService) CalculateScore(ctx context.Context, userID, projectID string) (*models.MatchScore, error) {
	const op = "MatchService.CalculateScore"

	if userID == "" || projectID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and project_id are required", nil)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "project not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load project", err)
	}

	score := s.engine.Score(user, project)
	return &score, nil
}

func (s *matchService) FindTopMatches(ctx context.Context, userID string, limit, minScore int) ([]models.MatchScore, error) {
	const op = "MatchService.FindTopMatches"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	// The outer validation layer enforces the sane ranges; clamp
	// defensively anyway. A minScore above 100 stays as given: no
	// candidate can reach it, so the result is naturally empty.
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if minScore < 0 {
		minScore = DefaultMinScore
	}

	var cacheKey string
	if s.cache != nil {
		cacheKey = fmt.Sprintf("recs:%s:%d:%d:%d", userID, s.recsVersion(ctx, userID), limit, minScore)
		var cached []models.MatchScore
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			// Unknown user is a normal outcome for recommendations.
			return []models.MatchScore{}, nil
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	candidates, err := s.projects.ListCandidates(ctx, s.filter, userID, candidatePoolSize)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load candidate projects", err)
	}

	scored := s.scoreCandidates(ctx, user, candidates)
	ranked := matching.Rank(scored, minScore, limit)

	if s.cache != nil && ctx.Err() == nil {
		if err := s.cache.SetJSON(ctx, cacheKey, ranked, recsCacheTTL); err != nil {
			s.log.WithError(err).Warn("recommendation cache write failed")
		}
	}
	return ranked, nil
}

// scoreCandidates scores each candidate on a bounded worker pool.
// Results keep candidate order so ties rank by discovery order; on
// cancellation the slots not yet scored stay nil and whatever finished
// is returned.
func (s *matchService) scoreCandidates(ctx context.Context, user *models.User, candidates []models.Project) []models.MatchScore {
	results := make([]*models.MatchScore, len(candidates))

	sem := make(chan struct{}, scoringWorkers)
	var wg sync.WaitGroup

	for i := range candidates {
		if ctx.Err() != nil {
			break
		}
		if candidates[i].OwnerID == user.ID {
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			ms := s.engine.Score(user, &candidates[i])
			results[i] = &ms
		}(i)
	}
	wg.Wait()

	scored := make([]models.MatchScore, 0, len(results))
	for _, r := range results {
		if r != nil {
			scored = append(scored, *r)
		}
	}
	return scored
}

func (s *matchService) RecordAction(ctx context.Context, score *models.MatchScore, action models.MatchAction) error {
	const op = "MatchService.RecordAction"

	if score == nil {
		return utils.E(utils.CodeInvalidArgument, op, "match score is required", nil)
	}
	if !action.Valid() {
		return utils.E(utils.CodeInvalidArgument, op, "invalid action", nil)
	}

	now := time.Now().UTC()
	entry := &models.MatchHistory{
		ID:        uuid.NewString(),
		UserID:    score.UserID,
		ProjectID: score.ProjectID,
		MatchType: score.MatchType,
		Score:     score.TotalScore,
		Details:   score.Details,
		Action:    action,
		CreatedAt: now,
	}
	if action != models.ActionNone {
		entry.ActionAt = &now
	}

	if s.recorder != nil {
		s.recorder.Record(ctx, entry)
	}
	s.invalidateRecs(ctx, score.UserID)
	return nil
}

func recsVersionKey(userID string) string {
	return "recs:ver:" + userID
}

// recsVersion returns the user's current recommendation cache
// generation. Cached lists embed the generation in their key, so
// bumping it orphans every list cached for the user.
func (s *matchService) recsVersion(ctx context.Context, userID string) int {
	var ver int
	if hit, err := s.cache.GetJSON(ctx, recsVersionKey(userID), &ver); err == nil && hit {
		return ver
	}
	return 0
}

func (s *matchService) invalidateRecs(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	next := s.recsVersion(ctx, userID) + 1
	if err := s.cache.SetJSON(ctx, recsVersionKey(userID), next, 0); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("recommendation cache invalidation failed")
	}
}

func (s *matchService) History(ctx context.Context, userID string, limit int) ([]models.MatchHistory, error) {
	const op = "MatchService.History"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	rows, err := s.history.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list match history", err)
	}
	return rows, nil
}
