package service

import (
	"context"
	"time"

	"hackswipe/internal/models"
	"hackswipe/internal/repository"
)

// maxStreak caps the day streak shown on the dashboard.
const maxStreak = 30

type OverviewService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	matchRepo   repository.MatchRepository
	swipeRepo   repository.SwipeRepository
	inquiryRepo repository.InquiryRepository
	now         func() time.Time
}

func NewOverviewService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	matchRepo repository.MatchRepository,
	swipeRepo repository.SwipeRepository,
	inquiryRepo repository.InquiryRepository,
) *OverviewService {
	return &OverviewService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		matchRepo:   matchRepo,
		swipeRepo:   swipeRepo,
		inquiryRepo: inquiryRepo,
		now:         time.Now,
	}
}

func (s *OverviewService) Stats(ctx context.Context, userID string) (*models.OverviewStats, error) {
	var (
		stats models.OverviewStats
		err   error
	)
	if stats.TotalPosts, err = s.postRepo.CountByLeader(ctx, userID); err != nil {
		return nil, err
	}
	if stats.TotalMatches, err = s.matchRepo.CountForUser(ctx, userID); err != nil {
		return nil, err
	}
	if stats.TotalSwipes, err = s.swipeRepo.CountBySwiper(ctx, userID); err != nil {
		return nil, err
	}
	if stats.OngoingProjects, err = s.inquiryRepo.CountAcceptedForApplicant(ctx, userID); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Streak is the number of days since the user joined, counting the join
// day, capped at 30.
func (s *OverviewService) Streak(ctx context.Context, userID string) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return StreakDays(user.CreatedAt, s.now()), nil
}

// StreakDays computes the streak for an account created at joined.
func StreakDays(joined, now time.Time) int {
	days := int(now.Sub(joined)/(24*time.Hour)) + 1
	return max(1, min(days, maxStreak))
}
