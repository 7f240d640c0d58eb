package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"pinboard/internal/delivery/http/middleware"
	"pinboard/internal/delivery/http/response"
	"pinboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PostHandler holds dependencies for the post endpoints.
type PostHandler struct {
	uc     usecase.PostUsecase
	logger *slog.Logger
}

// NewPostHandler is the constructor for PostHandler, injected by Fx.
func NewPostHandler(uc usecase.PostUsecase, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		uc:     uc,
		logger: logger,
	}
}

func parsePostID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

// List returns all posts.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, posts, "")
}

// Get returns a single post by id.
func (h *PostHandler) Get(c echo.Context) error {
	id, ok := parsePostID(c)
	if !ok {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post id")
	}

	post, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if post == nil {
		return response.NotFound(c, "POST_NOT_FOUND", "post not found")
	}

	return response.Success(c, http.StatusOK, post, "")
}

// Create stores a new post owned by the session user.
func (h *PostHandler) Create(c echo.Context) error {
	var input usecase.CreatePostInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	sess := middleware.SessionFromContext(c)
	post, err := h.uc.Create(c.Request().Context(), sess.UserID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, post, "")
}

// Update changes a post's title.
func (h *PostHandler) Update(c echo.Context) error {
	id, ok := parsePostID(c)
	if !ok {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post id")
	}

	var input usecase.UpdatePostInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	post, err := h.uc.Update(c.Request().Context(), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}
	if post == nil {
		return response.NotFound(c, "POST_NOT_FOUND", "post not found")
	}

	return response.Success(c, http.StatusOK, post, "")
}

// Delete removes a post.
func (h *PostHandler) Delete(c echo.Context) error {
	id, ok := parsePostID(c)
	if !ok {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post id")
	}

	deleted, err := h.uc.Delete(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"deleted": deleted}, "")
}
