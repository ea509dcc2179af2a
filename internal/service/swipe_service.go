package service

import (
	"context"

	"hackswipe/internal/models"
	"hackswipe/internal/observability"
	"hackswipe/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type SwipeService struct {
	swipeRepo repository.SwipeRepository
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
}

type SwipeInput struct {
	SwiperID   string
	TargetType models.TargetType
	TargetID   string
	Direction  models.Direction
}

// SwipeResult is the response body of POST /swipe plus the side effects the
// caller needs to fan out as realtime events.
type SwipeResult struct {
	Swipe *models.Swipe      `json:"swipe"`
	Match *models.SwipeMatch `json:"match"`

	Inquiry      *models.Inquiry `json:"-"`
	PostLeaderID string          `json:"-"`
}

func NewSwipeService(
	swipeRepo repository.SwipeRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
) *SwipeService {
	return &SwipeService{swipeRepo: swipeRepo, userRepo: userRepo, postRepo: postRepo}
}

func (s *SwipeService) Swipe(ctx context.Context, in SwipeInput) (result *SwipeResult, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "SwipeService", "Swipe",
		attribute.String("swipe.target_type", string(in.TargetType)),
		attribute.String("swipe.direction", string(in.Direction)),
	)
	defer func() { span.End(err) }()

	if in.TargetID == "" || !in.TargetType.Valid() || !in.Direction.Valid() {
		return nil, models.NewValidationError("Missing or invalid fields")
	}

	exists, err := s.swipeRepo.Exists(ctx, in.SwiperID, in.TargetType, in.TargetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("Already swiped")
	}

	var leaderID string
	if in.TargetType == models.TargetPerson {
		if in.TargetID == in.SwiperID {
			return nil, models.NewValidationError("Cannot swipe on yourself")
		}
		if _, err := s.userRepo.GetByID(ctx, in.TargetID); err != nil {
			return nil, err
		}
	} else {
		post, err := s.postRepo.GetByID(ctx, in.TargetID)
		if err != nil {
			return nil, err
		}
		if post.Type != in.TargetType.PostType() {
			return nil, models.NewNotFoundError("Post")
		}
		if post.LeaderID == in.SwiperID {
			return nil, models.NewValidationError("Cannot swipe on your own post")
		}
		leaderID = post.LeaderID
	}

	swipe := &models.Swipe{
		SwiperID:   in.SwiperID,
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		Direction:  in.Direction,
	}
	outcome, err := s.swipeRepo.Record(ctx, swipe)
	if err != nil {
		return nil, err
	}
	observability.SwipesTotal.WithLabelValues(string(in.TargetType), string(in.Direction)).Inc()

	result = &SwipeResult{Swipe: outcome.Swipe}
	if outcome.Match != nil {
		result.Match = &models.SwipeMatch{Match: *outcome.Match, IsNew: outcome.MatchCreated}
		if outcome.MatchCreated {
			observability.MatchesCreated.WithLabelValues(string(outcome.Match.Context)).Inc()
		}
		span.AddAttributes(attribute.Bool("swipe.matched", true))
	}
	if outcome.InquiryCreated {
		result.Inquiry = outcome.Inquiry
		result.PostLeaderID = leaderID
	}
	return result, nil
}
