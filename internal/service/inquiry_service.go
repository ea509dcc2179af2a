package service

import (
	"context"

	"hackswipe/internal/models"
	"hackswipe/internal/observability"
	"hackswipe/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// InquiryService lets post leaders review and decide join requests.
type InquiryService struct {
	inquiryRepo repository.InquiryRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

// Decision describes what DecideInquiry changed.
type Decision struct {
	Inquiry      *models.Inquiry
	Post         *models.Post
	Match        *models.Match
	MatchCreated bool
}

func NewInquiryService(
	inquiryRepo repository.InquiryRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *InquiryService {
	return &InquiryService{inquiryRepo: inquiryRepo, postRepo: postRepo, userRepo: userRepo}
}

// List returns the inquiries on the leader's posts with applicant and post attached.
func (s *InquiryService) List(ctx context.Context, leaderID string) ([]models.InquiryWithDetails, error) {
	inquiries, err := s.inquiryRepo.ListForLeader(ctx, leaderID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(inquiries))
	postIDs := make([]string, 0, len(inquiries))
	for _, inq := range inquiries {
		userIDs = append(userIDs, inq.UserID)
		postIDs = append(postIDs, inq.PostID)
	}
	users, err := s.userRepo.GetWithProfiles(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.InquiryWithDetails, 0, len(inquiries))
	for _, inq := range inquiries {
		out = append(out, models.InquiryWithDetails{
			Inquiry: inq,
			User:    users[inq.UserID],
			Post:    posts[inq.PostID],
		})
	}
	return out, nil
}

// Decide accepts or declines a pending inquiry. Only the post leader may
// decide, and only once.
func (s *InquiryService) Decide(ctx context.Context, leaderID, inquiryID string, status models.InquiryStatus) (decision *Decision, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "InquiryService", "Decide",
		attribute.String("inquiry.id", inquiryID),
		attribute.String("inquiry.status", string(status)),
	)
	defer func() { span.End(err) }()

	if status != models.InquiryStatusAccepted && status != models.InquiryStatusDeclined {
		return nil, models.NewValidationError("Invalid status")
	}

	inquiry, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, inquiry.PostID)
	if err != nil {
		return nil, err
	}
	if post.LeaderID != leaderID {
		return nil, models.NewUnauthorizedError("Unauthorized")
	}

	match, created, err := s.inquiryRepo.Decide(ctx, inquiry, leaderID, status)
	if err != nil {
		return nil, err
	}
	observability.InquiryDecisions.WithLabelValues(string(status)).Inc()
	if created {
		observability.MatchesCreated.WithLabelValues(string(models.MatchContextPost)).Inc()
	}
	return &Decision{Inquiry: inquiry, Post: post, Match: match, MatchCreated: created}, nil
}
