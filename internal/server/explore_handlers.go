package server

import (
	"hackswipe/internal/models"
	"hackswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ExplorePeople handles GET /api/explore/people
// @Summary Explore people
// @Description Users the caller has not swiped on yet, with their profiles
// @Tags explore
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{people=[]models.UserWithProfile}
// @Router /explore/people [get]
func (s *Server) ExplorePeople(c *fiber.Ctx) error {
	people, err := s.exploreService.People(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"people": people})
}

// ExplorePosts handles GET /api/explore/{kind}
// @Summary Explore hackathons or projects
// @Tags explore
// @Produce json
// @Security BearerAuth
// @Param kind path string true "hackathons or projects"
// @Success 200 {object} object{posts=[]models.PostWithLeader}
// @Failure 404 {object} models.ErrorResponse
// @Router /explore/{kind} [get]
func (s *Server) ExplorePosts(c *fiber.Ctx) error {
	posts, err := s.exploreService.Posts(c.UserContext(), currentUserID(c), c.Params("kind"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// RandomProject handles GET /api/random-project
// @Summary Random project
// @Description One random project the caller has not swiped on, or null
// @Tags explore
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{project=models.PostWithLeader}
// @Router /random-project [get]
func (s *Server) RandomProject(c *fiber.Ctx) error {
	project, err := s.exploreService.RandomProject(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"project": project})
}

// Swipe handles POST /api/swipe
// @Summary Swipe
// @Description Record a swipe. A mutual right swipe on a person creates a match,
// @Description a right swipe on a post creates an inquiry for its leader.
// @Tags explore
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{targetType=string,targetId=string,direction=string} true "Swipe"
// @Success 200 {object} service.SwipeResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /swipe [post]
func (s *Server) Swipe(c *fiber.Ctx) error {
	var req struct {
		TargetType string `json:"targetType"`
		TargetID   string `json:"targetId"`
		Direction  string `json:"direction"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	ctx := c.UserContext()
	res, err := s.swipeService.Swipe(ctx, service.SwipeInput{
		SwiperID:   currentUserID(c),
		TargetType: models.TargetType(req.TargetType),
		TargetID:   req.TargetID,
		Direction:  models.Direction(req.Direction),
	})
	if err != nil {
		return s.respondError(c, err)
	}

	s.publishSwipeEvents(ctx, res)
	return c.JSON(res)
}
