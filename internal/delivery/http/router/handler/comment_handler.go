package handler

import (
	"log/slog"
	"net/http"
	"time"

	"picstream/internal/delivery/http/middleware"
	"picstream/internal/delivery/http/response"
	"picstream/internal/domain/entity"
	"picstream/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CommentHandler holds dependencies for comment-related handlers.
type CommentHandler struct {
	uc     usecase.CommentUsecase
	logger *slog.Logger
}

// NewCommentHandler is the constructor for CommentHandler, injected by Fx.
func NewCommentHandler(uc usecase.CommentUsecase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		uc:     uc,
		logger: logger,
	}
}

// CommentRequest is the payload for adding a comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// CommentResponse is the public shape of a comment.
type CommentResponse struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
	PostID    int64     `json:"post_id"`
}

// Add handles attaching a comment to an existing post.
func (h *CommentHandler) Add(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "credentials not valid")
	}

	postID, err := parsePostID(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid post id")
	}

	var input CommentRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid comment input")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "VALIDATION_FAILED", "invalid comment input")
	}

	comment, err := h.uc.AddComment(c.Request().Context(), identity, postID, &usecase.AddCommentInput{
		Text: input.Text,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommentResponse(comment))
}

// List handles listing the comments of an existing post.
func (h *CommentHandler) List(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid post id")
	}

	comments, err := h.uc.ListComments(c.Request().Context(), postID)
	if err != nil {
		return errors.WithStack(err)
	}

	resps := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resps = append(resps, toCommentResponse(comment))
	}

	return response.Success(c, http.StatusOK, resps)
}

func toCommentResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		Username:  comment.Username,
		Timestamp: comment.Timestamp,
		PostID:    comment.PostID,
	}
}
