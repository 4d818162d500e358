package postgres

import (
	"context"
	"errors"

	"github.com/launchpool/launchpool/internal/models"
	"github.com/launchpool/launchpool/internal/utils"
	"gorm.io/gorm"
)

// CandidateFilter is the recommendation candidate policy. The default
// (active + seeking team) mirrors the product decision; note that it
// leaves investment-seeking-only projects out of investor feeds, which
// is why the policy is injectable rather than baked into the query.
type CandidateFilter struct {
	Status             string
	RequireSeekingTeam bool
}

func DefaultCandidateFilter() CandidateFilter {
	return CandidateFilter{
		Status:             models.ProjectStatusActive,
		RequireSeekingTeam: true,
	}
}

type ProjectRepository interface {
	GetByID(ctx context.Context, projectID string) (*models.Project, error)
	ListCandidates(ctx context.Context, filter CandidateFilter, excludeOwnerID string, limit int) ([]models.Project, error)
}

type projectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) GetByID(ctx context.Context, projectID string) (*models.Project, error) {
	var p models.Project
	err := r.db.WithContext(ctx).
		Preload("Requirements").
		Where("id = ?", projectID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *projectRepo) ListCandidates(ctx context.Context, filter CandidateFilter, excludeOwnerID string, limit int) ([]models.Project, error) {
	if limit <= 0 {
		limit = 200
	}

	q := r.db.WithContext(ctx).Preload("Requirements")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.RequireSeekingTeam {
		q = q.Where("seeking_team = ?", true)
	}
	if excludeOwnerID != "" {
		q = q.Where("owner_id <> ?", excludeOwnerID)
	}

	var rows []models.Project
	err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
