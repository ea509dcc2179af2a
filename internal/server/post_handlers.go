package server

import (
	"hackswipe/internal/models"
	"hackswipe/internal/service"

	"github.com/gofiber/fiber/v2"
)

const postNotFound = "Post not found or unauthorized"

// CreatePost handles POST /api/posts
// @Summary Create post
// @Description Create a hackathon or project post led by the caller
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{type=string,title=string,location=string,websiteUrl=string,skillsNeeded=[]string,notes=string} true "Post"
// @Success 200 {object} object{post=models.Post}
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Type         string   `json:"type"`
		Title        string   `json:"title"`
		Location     *string  `json:"location"`
		WebsiteURL   *string  `json:"websiteUrl"`
		SkillsNeeded []string `json:"skillsNeeded"`
		Notes        *string  `json:"notes"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		LeaderID:     currentUserID(c),
		Type:         models.PostType(req.Type),
		Title:        req.Title,
		Location:     req.Location,
		WebsiteURL:   req.WebsiteURL,
		SkillsNeeded: req.SkillsNeeded,
		Notes:        req.Notes,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

// MyPosts handles GET /api/posts/my-posts
// @Summary List own posts
// @Description The caller's posts with inquiry and accepted counts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{posts=[]models.PostWithCounts}
// @Router /posts/my-posts [get]
func (s *Server) MyPosts(c *fiber.Ctx) error {
	posts, err := s.postService.MyPosts(c.UserContext(), currentUserID(c))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// UpdatePost handles PUT /api/posts/{id}
// @Summary Update post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body object{title=string,location=string,websiteUrl=string,skillsNeeded=[]string,notes=string} true "Post fields"
// @Success 200 {object} object{post=models.Post}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", postNotFound)
	if err != nil {
		return nil
	}

	var req struct {
		Title        string   `json:"title"`
		Location     string   `json:"location"`
		WebsiteURL   *string  `json:"websiteUrl"`
		SkillsNeeded []string `json:"skillsNeeded"`
		Notes        *string  `json:"notes"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:       currentUserID(c),
		PostID:       postID,
		Title:        req.Title,
		Location:     req.Location,
		WebsiteURL:   req.WebsiteURL,
		SkillsNeeded: req.SkillsNeeded,
		Notes:        req.Notes,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

// DeletePost handles DELETE /api/posts/{id}
// @Summary Delete post
// @Description Deletes the post and its inquiries
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} object{success=bool}
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", postNotFound)
	if err != nil {
		return nil
	}
	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), postID); err != nil {
		return s.respondError(c, err)
	}
	return success(c)
}
