package server

import (
	"blogapi/internal/service"
	"blogapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /posts
// @Summary Create post
// @Description Create a post for an existing author.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body validation.PostCreate true "Post"
// @Success 201 {object} validation.PostRead
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req validation.PostCreate
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: *req.AuthorID,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(validation.NewPostRead(post))
}

// ListPosts handles GET /posts
// @Summary List posts
// @Tags posts
// @Produce json
// @Param author_id query int false "Only posts of this author"
// @Success 200 {array} validation.PostRead
// @Failure 422 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	authorID, err := s.parseOptionalIntQuery(c, "author_id")
	if err != nil {
		return nil
	}

	posts, err := s.postService.ListPosts(c.UserContext(), authorID)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(validation.NewPostReads(posts))
}

// GetPost handles GET /posts/:id
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} validation.PostRead
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", msgPostNotFound)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(validation.NewPostRead(post))
}

// UpdatePost handles PUT /posts/:id
// @Summary Update post
// @Description Partial update of title and content. The author cannot change.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body validation.PostUpdate true "Fields to change"
// @Success 200 {object} validation.PostRead
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", msgPostNotFound)
	if err != nil {
		return nil
	}

	var req validation.PostUpdate
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(validation.NewPostRead(post))
}

// DeletePost handles DELETE /posts/:id
// @Summary Delete post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", msgPostNotFound)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
