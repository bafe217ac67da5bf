package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"picstream/internal/delivery/http/middleware"
	"picstream/internal/delivery/http/response"
	"picstream/internal/domain/entity"
	"picstream/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PostHandler holds dependencies for post-related handlers.
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

// PostRequest is the payload for creating or updating a post.
type PostRequest struct {
	ImageURL     string `json:"image_url" validate:"required"`
	ImageURLType string `json:"image_url_type" validate:"required"`
	Caption      string `json:"caption"`
}

// PostOwnerResponse is the owner as nested in post listings.
type PostOwnerResponse struct {
	Username string `json:"username"`
}

// PostResponse is the public shape of a post.
type PostResponse struct {
	ID           int64             `json:"id"`
	ImageURL     string            `json:"image_url"`
	ImageURLType string            `json:"image_url_type"`
	Caption      string            `json:"caption"`
	Timestamp    time.Time         `json:"timestamp"`
	User         PostOwnerResponse `json:"user"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// List handles the public post listing.
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.uc.ListPosts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostResponses(posts))
}

// Create handles publishing a new post for the authenticated caller.
func (h *PostHandler) Create(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "credentials not valid")
	}

	var input PostRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid post input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "invalid post input")
	}

	post, err := h.uc.CreatePost(c.Request().Context(), identity, &usecase.CreatePostInput{
		ImageURL:     input.ImageURL,
		ImageURLType: input.ImageURLType,
		Caption:      input.Caption,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

// Update handles mutating the caption/image fields of the caller's post.
func (h *PostHandler) Update(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "credentials not valid")
	}

	postID, err := parsePostID(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid post id")
	}

	var input PostRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid post input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "invalid post input")
	}

	if err := h.uc.UpdatePost(c.Request().Context(), identity, postID, &usecase.UpdatePostInput{
		ImageURL:     input.ImageURL,
		ImageURLType: input.ImageURLType,
		Caption:      input.Caption,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, MessageResponse{Msg: "updated"})
}

// Delete handles removing the caller's post together with its comments.
func (h *PostHandler) Delete(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "credentials not valid")
	}

	postID, err := parsePostID(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid post id")
	}

	if err := h.uc.DeletePost(c.Request().Context(), identity, postID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, MessageResponse{Msg: "POST DELETED!"})
}

// Mine handles listing the caller's own posts.
func (h *PostHandler) Mine(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "credentials not valid")
	}

	posts, err := h.uc.ListOwnPosts(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostResponses(posts))
}

func parsePostID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("post_id"), 10, 64)
}

func toPostResponse(post *entity.Post) PostResponse {
	resp := PostResponse{
		ID:           post.ID,
		ImageURL:     post.ImageURL,
		ImageURLType: post.ImageURLType,
		Caption:      post.Caption,
		Timestamp:    post.Timestamp,
	}
	if post.Owner != nil {
		resp.User = PostOwnerResponse{Username: post.Owner.Username}
	}

	return resp
}

func toPostResponses(posts []*entity.Post) []PostResponse {
	resps := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		resps = append(resps, toPostResponse(post))
	}

	return resps
}
