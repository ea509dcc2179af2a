package repository

import (
	"context"
	"errors"

	"hackswipe/internal/models"
	"hackswipe/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateWithSession stores a new user and its first session atomically.
	CreateWithSession(ctx context.Context, user *models.User, session *models.Session) error
	// GetWithProfiles loads users by id with their profiles attached, keyed by id.
	GetWithProfiles(ctx context.Context, ids []string) (map[string]*models.UserWithProfile, error)
	// ListExploreCandidates returns users the caller has not swiped on as PERSON.
	ListExploreCandidates(ctx context.Context, userID string, limit int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "User")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) CreateWithSession(ctx context.Context, user *models.User, session *models.Session) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		session.UserID = user.ID
		return tx.Create(session).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetWithProfiles(ctx context.Context, ids []string) (map[string]*models.UserWithProfile, error) {
	ids = uniqueStrings(ids)
	out := make(map[string]*models.UserWithProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	byUser := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}
	for _, u := range users {
		out[u.ID] = &models.UserWithProfile{User: u, Profile: byUser[u.ID]}
	}
	return out, nil
}

func (r *userRepository) ListExploreCandidates(ctx context.Context, userID string, limit int) ([]models.User, error) {
	defer observability.TrackQuery("explore_people")()

	db := r.db.WithContext(ctx)
	swiped := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Swipe{}).
		Select("target_id").
		Where("swiper_id = ? AND target_type = ?", userID, models.TargetPerson)

	var users []models.User
	err := db.
		Where("id <> ?", userID).
		Where("id NOT IN (?)", swiped).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
