package service

import (
	"context"
	"strings"

	"hackswipe/internal/models"
	"hackswipe/internal/repository"
	"hackswipe/internal/validation"

	"gorm.io/datatypes"
)

const maxTitleLen = 200

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	LeaderID     string
	Type         models.PostType
	Title        string
	Location     *string
	WebsiteURL   *string
	SkillsNeeded []string
	Notes        *string
}

type UpdatePostInput struct {
	UserID       string
	PostID       string
	Title        string
	Location     string
	WebsiteURL   *string
	SkillsNeeded []string
	Notes        *string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if !in.Type.Valid() {
		return nil, models.NewValidationError("Invalid post type")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if err := validation.ValidateOptionalURL("websiteUrl", in.WebsiteURL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Type:         in.Type,
		LeaderID:     in.LeaderID,
		Title:        title,
		Location:     in.Location,
		WebsiteURL:   in.WebsiteURL,
		SkillsNeeded: skillList(in.SkillsNeeded),
		Notes:        in.Notes,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) MyPosts(ctx context.Context, userID string) ([]models.PostWithCounts, error) {
	return s.postRepo.ListByLeaderWithCounts(ctx, userID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.ownedPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if location == "" {
		return nil, models.NewValidationError("Location is required")
	}
	if err := validation.ValidateOptionalURL("websiteUrl", in.WebsiteURL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post.Title = title
	post.Location = &location
	post.WebsiteURL = in.WebsiteURL
	post.SkillsNeeded = skillList(in.SkillsNeeded)
	post.Notes = in.Notes
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	if _, err := s.ownedPost(ctx, postID, userID); err != nil {
		return err
	}
	return s.postRepo.DeleteWithInquiries(ctx, postID)
}

// ownedPost hides the difference between a missing post and someone else's.
func (s *PostService) ownedPost(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewNotFoundMessage("Post not found or unauthorized")
		}
		return nil, err
	}
	if post.LeaderID != userID {
		return nil, models.NewNotFoundMessage("Post not found or unauthorized")
	}
	return post, nil
}

func skillList(skills []string) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
