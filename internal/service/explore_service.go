package service

import (
	"context"

	"hackswipe/internal/models"
	"hackswipe/internal/repository"
)

// ExploreService builds the discovery decks.
type ExploreService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	pageSize int
}

func NewExploreService(userRepo repository.UserRepository, postRepo repository.PostRepository, pageSize int) *ExploreService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ExploreService{userRepo: userRepo, postRepo: postRepo, pageSize: pageSize}
}

// PostTypeForKind maps the explore path segment to a post type.
func PostTypeForKind(kind string) (models.PostType, bool) {
	switch kind {
	case "hackathons":
		return models.PostTypeHackathon, true
	case "projects":
		return models.PostTypeProject, true
	}
	return "", false
}

// People returns users the caller has not swiped on yet, with profiles.
func (s *ExploreService) People(ctx context.Context, userID string) ([]models.UserWithProfile, error) {
	users, err := s.userRepo.ListExploreCandidates(ctx, userID, s.pageSize)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	withProfiles, err := s.userRepo.GetWithProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserWithProfile, 0, len(users))
	for _, u := range users {
		if wp, ok := withProfiles[u.ID]; ok {
			out = append(out, *wp)
			continue
		}
		out = append(out, models.UserWithProfile{User: u})
	}
	return out, nil
}

// Posts returns unswiped posts of one kind ("hackathons" or "projects") not led by the caller.
func (s *ExploreService) Posts(ctx context.Context, userID, kind string) ([]models.PostWithLeader, error) {
	postType, ok := PostTypeForKind(kind)
	if !ok {
		return nil, models.NewNotFoundMessage("Not found")
	}
	posts, err := s.postRepo.ListExplore(ctx, userID, postType, s.pageSize)
	if err != nil {
		return nil, err
	}
	return s.withLeaders(ctx, posts)
}

// RandomProject picks one eligible project uniformly at random, or nil.
func (s *ExploreService) RandomProject(ctx context.Context, userID string) (*models.PostWithLeader, error) {
	post, err := s.postRepo.RandomExplore(ctx, userID, models.PostTypeProject)
	if err != nil || post == nil {
		return nil, err
	}
	out, err := s.withLeaders(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *ExploreService) withLeaders(ctx context.Context, posts []models.Post) ([]models.PostWithLeader, error) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.LeaderID)
	}
	leaders, err := s.userRepo.GetWithProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.PostWithLeader, 0, len(posts))
	for _, p := range posts {
		out = append(out, models.PostWithLeader{Post: p, Leader: leaders[p.LeaderID]})
	}
	return out, nil
}
