package repository

import (
	"context"
	"time"

	"hackswipe/internal/models"

	"gorm.io/gorm"
)

// InquiryRepository persists join requests on posts.
type InquiryRepository interface {
	GetByID(ctx context.Context, id string) (*models.Inquiry, error)
	// ListForLeader returns inquiries on posts led by leaderID, newest first.
	ListForLeader(ctx context.Context, leaderID string) ([]models.Inquiry, error)
	RecentPendingForLeader(ctx context.Context, leaderID string, limit int) ([]models.Inquiry, error)
	// Decide moves a PENDING inquiry to status. Accepting also stores a POST
	// match between the leader and the applicant. A decided inquiry is rejected.
	Decide(ctx context.Context, inquiry *models.Inquiry, leaderID string, status models.InquiryStatus) (*models.Match, bool, error)
	CountAcceptedForApplicant(ctx context.Context, userID string) (int64, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository returns a new InquiryRepository implementation.
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) GetByID(ctx context.Context, id string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&inquiry).Error; err != nil {
		return nil, notFoundOr(err, "Inquiry")
	}
	return &inquiry, nil
}

func (r *inquiryRepository) forLeader(ctx context.Context, leaderID string) *gorm.DB {
	db := r.db.WithContext(ctx)
	leaderPosts := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Post{}).
		Select("id").
		Where("leader_id = ?", leaderID)
	return db.Model(&models.Inquiry{}).Where("post_id IN (?)", leaderPosts)
}

func (r *inquiryRepository) ListForLeader(ctx context.Context, leaderID string) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	if err := r.forLeader(ctx, leaderID).Order("created_at DESC").Find(&inquiries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return inquiries, nil
}

func (r *inquiryRepository) RecentPendingForLeader(ctx context.Context, leaderID string, limit int) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := r.forLeader(ctx, leaderID).
		Where("status = ?", models.InquiryStatusPending).
		Order("created_at DESC").
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return inquiries, nil
}

func (r *inquiryRepository) Decide(ctx context.Context, inquiry *models.Inquiry, leaderID string, status models.InquiryStatus) (*models.Match, bool, error) {
	var (
		match   *models.Match
		created bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Inquiry{}).
			Where("id = ? AND status = ?", inquiry.ID, models.InquiryStatusPending).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewValidationError("Inquiry has already been decided")
		}

		if status != models.InquiryStatusAccepted {
			return nil
		}

		postID := inquiry.PostID
		match = models.NewMatch(leaderID, inquiry.UserID, models.MatchContextPost, &postID)
		var err error
		created, err = insertMatch(tx, match)
		return err
	})
	if err != nil {
		if models.IsCode(err, models.CodeValidation) {
			return nil, false, err
		}
		return nil, false, models.NewInternalError(err)
	}

	inquiry.Status = status
	return match, created, nil
}

func (r *inquiryRepository) CountAcceptedForApplicant(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Inquiry{}).
		Where("user_id = ? AND status = ?", userID, models.InquiryStatusAccepted).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
