package repository

import (
	"context"

	"hackswipe/internal/models"

	"gorm.io/gorm"
)

// MatchRepository reads matches. Matches are written by swipes and inquiry decisions.
type MatchRepository interface {
	ListForUser(ctx context.Context, userID string, matchContext models.MatchContext) ([]models.Match, error)
	// Recent returns the newest matches of any context involving userID.
	Recent(ctx context.Context, userID string, limit int) ([]models.Match, error)
	CountForUser(ctx context.Context, userID string) (int64, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository returns a new MatchRepository implementation.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) involving(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Match{}).Where("a_id = ? OR b_id = ?", userID, userID)
}

func (r *matchRepository) ListForUser(ctx context.Context, userID string, matchContext models.MatchContext) ([]models.Match, error) {
	var matches []models.Match
	err := r.involving(ctx, userID).
		Where("context = ?", matchContext).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return matches, nil
}

func (r *matchRepository) Recent(ctx context.Context, userID string, limit int) ([]models.Match, error) {
	var matches []models.Match
	if err := r.involving(ctx, userID).Order("created_at DESC").Limit(limit).Find(&matches).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return matches, nil
}

func (r *matchRepository) CountForUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.involving(ctx, userID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
