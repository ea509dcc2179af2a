package service

import (
	"context"

	"hackswipe/internal/models"
	"hackswipe/internal/repository"
)

type MatchService struct {
	matchRepo repository.MatchRepository
	userRepo  repository.UserRepository
}

func NewMatchService(matchRepo repository.MatchRepository, userRepo repository.UserRepository) *MatchService {
	return &MatchService{matchRepo: matchRepo, userRepo: userRepo}
}

// List returns the caller's people matches, newest first, each with the counterpart.
func (s *MatchService) List(ctx context.Context, userID string) ([]models.MatchWithUser, error) {
	matches, err := s.matchRepo.ListForUser(ctx, userID, models.MatchContextPeople)
	if err != nil {
		return nil, err
	}
	others := make([]string, 0, len(matches))
	for i := range matches {
		others = append(others, matches[i].OtherUserID(userID))
	}
	users, err := s.userRepo.GetWithProfiles(ctx, others)
	if err != nil {
		return nil, err
	}

	out := make([]models.MatchWithUser, 0, len(matches))
	for _, m := range matches {
		out = append(out, models.MatchWithUser{Match: m, OtherUser: users[m.OtherUserID(userID)]})
	}
	return out, nil
}
