package repository

import (
	"context"
	"errors"
	"sort"

	"hackswipe/internal/models"
	"hackswipe/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SwipeOutcome reports everything a single swipe wrote.
type SwipeOutcome struct {
	Swipe          *models.Swipe
	Match          *models.Match
	MatchCreated   bool
	Inquiry        *models.Inquiry
	InquiryCreated bool
}

// SwipeRepository persists swipes and their side effects.
type SwipeRepository interface {
	Exists(ctx context.Context, swiperID string, targetType models.TargetType, targetID string) (bool, error)
	// Record inserts the swipe and, for RIGHT swipes, the resulting match or
	// inquiry in the same transaction.
	Record(ctx context.Context, swipe *models.Swipe) (*SwipeOutcome, error)
	CountBySwiper(ctx context.Context, swiperID string) (int64, error)
}

type swipeRepository struct {
	db *gorm.DB
}

// NewSwipeRepository returns a new SwipeRepository implementation.
func NewSwipeRepository(db *gorm.DB) SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Exists(ctx context.Context, swiperID string, targetType models.TargetType, targetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Swipe{}).
		Where("swiper_id = ? AND target_type = ? AND target_id = ?", swiperID, targetType, targetID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *swipeRepository) Record(ctx context.Context, swipe *models.Swipe) (*SwipeOutcome, error) {
	defer observability.TrackQuery("swipe_record")()

	out := &SwipeOutcome{Swipe: swipe}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		isPerson := swipe.TargetType == models.TargetPerson
		isRight := swipe.Direction == models.DirectionRight

		if isPerson && isRight && isPostgres(tx) {
			// Both sides of a simultaneous mutual swipe serialise here, so the
			// second transaction always sees the first one's swipe.
			if err := lockUsers(tx, swipe.SwiperID, swipe.TargetID); err != nil {
				return err
			}
		}

		if err := tx.Create(swipe).Error; err != nil {
			return err
		}

		if !isRight {
			return nil
		}
		if isPerson {
			return recordPeopleMatch(tx, swipe, out)
		}
		return recordInquiry(tx, swipe, out)
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.NewConflictError("Already swiped")
		}
		return nil, models.NewInternalError(err)
	}
	return out, nil
}

func lockUsers(tx *gorm.DB, ids ...string) error {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	var locked []models.User
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id IN ?", sorted).
		Order("id").
		Find(&locked).Error
}

func recordPeopleMatch(tx *gorm.DB, swipe *models.Swipe, out *SwipeOutcome) error {
	var reciprocal models.Swipe
	err := tx.Where("swiper_id = ? AND target_type = ? AND target_id = ? AND direction = ?",
		swipe.TargetID, models.TargetPerson, swipe.SwiperID, models.DirectionRight).
		First(&reciprocal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	match := models.NewMatch(swipe.SwiperID, swipe.TargetID, models.MatchContextPeople, nil)
	created, err := insertMatch(tx, match)
	if err != nil {
		return err
	}
	out.Match = match
	out.MatchCreated = created
	return nil
}

func recordInquiry(tx *gorm.DB, swipe *models.Swipe, out *SwipeOutcome) error {
	inquiry := &models.Inquiry{PostID: swipe.TargetID, UserID: swipe.SwiperID, Status: models.InquiryStatusPending}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(inquiry)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("post_id = ? AND user_id = ?", swipe.TargetID, swipe.SwiperID).First(inquiry).Error; err != nil {
			return err
		}
	}
	out.Inquiry = inquiry
	out.InquiryCreated = res.RowsAffected > 0
	return nil
}

// insertMatch inserts m unless the same pair already matched in the same
// scope, in which case m is replaced by the stored row.
func insertMatch(tx *gorm.DB, m *models.Match) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	err := tx.Where("context = ? AND user_low_id = ? AND user_high_id = ? AND scope_id = ?",
		m.Context, m.UserLowID, m.UserHighID, m.ScopeID).
		First(m).Error
	return false, err
}

func (r *swipeRepository) CountBySwiper(ctx context.Context, swiperID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Swipe{}).Where("swiper_id = ?", swiperID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
