package repository

import (
	"context"
	"errors"

	"hackswipe/internal/models"
	"hackswipe/internal/observability"

	"gorm.io/gorm"
)

// PostRepository persists hackathon and project listings.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	// DeleteWithInquiries removes the post and every inquiry on it in one transaction.
	DeleteWithInquiries(ctx context.Context, id string) error
	ListByLeaderWithCounts(ctx context.Context, leaderID string) ([]models.PostWithCounts, error)
	// ListExplore returns posts of postType the caller neither leads nor has swiped on.
	ListExplore(ctx context.Context, userID string, postType models.PostType, limit int) ([]models.Post, error)
	// RandomExplore picks one eligible post uniformly at random, or nil.
	RandomExplore(ctx context.Context, userID string, postType models.PostType) (*models.Post, error)
	CountByLeader(ctx context.Context, leaderID string) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, notFoundOr(err, "Post")
	}
	return &post, nil
}

func (r *postRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Post, error) {
	ids = uniqueStrings(ids)
	out := make(map[string]*models.Post, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var posts []models.Post
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range posts {
		out[posts[i].ID] = &posts[i]
	}
	return out, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) DeleteWithInquiries(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Inquiry{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return notFoundOr(err, "Post")
	}
	return nil
}

type postCountRow struct {
	PostID   string
	Total    int64
	Accepted int64
}

func (r *postRepository) ListByLeaderWithCounts(ctx context.Context, leaderID string) ([]models.PostWithCounts, error) {
	db := r.db.WithContext(ctx)

	var posts []models.Post
	if err := db.Where("leader_id = ?", leaderID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	out := make([]models.PostWithCounts, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	var rows []postCountRow
	err := db.Model(&models.Inquiry{}).
		Select("post_id, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS accepted", models.InquiryStatusAccepted).
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	counts := make(map[string]postCountRow, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row
	}

	for _, p := range posts {
		c := counts[p.ID]
		out = append(out, models.PostWithCounts{Post: p, InquiryCount: c.Total, AcceptedCount: c.Accepted})
	}
	return out, nil
}

func (r *postRepository) exploreQuery(ctx context.Context, userID string, postType models.PostType) *gorm.DB {
	db := r.db.WithContext(ctx)
	swiped := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Swipe{}).
		Select("target_id").
		Where("swiper_id = ? AND target_type = ?", userID, models.TargetType(postType))

	return db.Model(&models.Post{}).
		Where("type = ?", postType).
		Where("leader_id <> ?", userID).
		Where("id NOT IN (?)", swiped)
}

func (r *postRepository) ListExplore(ctx context.Context, userID string, postType models.PostType, limit int) ([]models.Post, error) {
	defer observability.TrackQuery("explore_posts")()

	var posts []models.Post
	err := r.exploreQuery(ctx, userID, postType).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) RandomExplore(ctx context.Context, userID string, postType models.PostType) (*models.Post, error) {
	var post models.Post
	// RANDOM() exists in both PostgreSQL and SQLite.
	err := r.exploreQuery(ctx, userID, postType).
		Order("RANDOM()").
		Take(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) CountByLeader(ctx context.Context, leaderID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("leader_id = ?", leaderID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
