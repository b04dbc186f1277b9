package server

import (
	"blogapi/internal/service"
	"blogapi/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateAuthor handles POST /authors
// @Summary Create author
// @Description Register a new author. Emails are unique.
// @Tags authors
// @Accept json
// @Produce json
// @Param request body validation.AuthorCreate true "Author"
// @Success 201 {object} validation.AuthorRead
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /authors [post]
func (s *Server) CreateAuthor(c *fiber.Ctx) error {
	var req validation.AuthorCreate
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	author, err := s.authorService.CreateAuthor(c.UserContext(), service.CreateAuthorInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(validation.NewAuthorRead(author))
}

// ListAuthors handles GET /authors
// @Summary List authors
// @Tags authors
// @Produce json
// @Success 200 {array} validation.AuthorRead
// @Router /authors [get]
func (s *Server) ListAuthors(c *fiber.Ctx) error {
	authors, err := s.authorService.ListAuthors(c.UserContext())
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(validation.NewAuthorReads(authors))
}

// GetAuthor handles GET /authors/:id
// @Summary Get author
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {object} validation.AuthorRead
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /authors/{id} [get]
func (s *Server) GetAuthor(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", msgAuthorNotFound)
	if err != nil {
		return nil
	}

	author, err := s.authorService.GetAuthor(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(validation.NewAuthorRead(author))
}

// UpdateAuthor handles PUT /authors/:id
// @Summary Update author
// @Description Partial update: omitted or null fields are left unchanged.
// @Tags authors
// @Accept json
// @Produce json
// @Param id path int true "Author ID"
// @Param request body validation.AuthorUpdate true "Fields to change"
// @Success 200 {object} validation.AuthorRead
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /authors/{id} [put]
func (s *Server) UpdateAuthor(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", msgAuthorNotFound)
	if err != nil {
		return nil
	}

	var req validation.AuthorUpdate
	if err := s.bindJSON(c, &req); err != nil {
		return nil
	}

	author, err := s.authorService.UpdateAuthor(c.UserContext(), id, service.UpdateAuthorInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(validation.NewAuthorRead(author))
}

// DeleteAuthor handles DELETE /authors/:id
// @Summary Delete author
// @Description Deletes the author and, by cascade, all of their posts.
// @Tags authors
// @Param id path int true "Author ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /authors/{id} [delete]
func (s *Server) DeleteAuthor(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", msgAuthorNotFound)
	if err != nil {
		return nil
	}

	if err := s.authorService.DeleteAuthor(c.UserContext(), id); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAuthorPosts handles GET /authors/:id/posts
// @Summary List an author's posts
// @Tags authors
// @Produce json
// @Param id path int true "Author ID"
// @Success 200 {array} validation.PostRead
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /authors/{id}/posts [get]
func (s *Server) ListAuthorPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", msgAuthorNotFound)
	if err != nil {
		return nil
	}

	posts, err := s.authorService.ListAuthorPosts(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(validation.NewPostReads(posts))
}
