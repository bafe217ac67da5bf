package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "picstream/internal/delivery/context"
	"picstream/internal/domain/entity"
	domainerrors "picstream/internal/domain/errors"
	"picstream/internal/domain/repository"
	"picstream/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// commentService implements the CommentUsecase interface.
type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	logger      *slog.Logger
}

// CommentServiceParams holds dependencies for commentService, injected by Fx.
type CommentServiceParams struct {
	fx.In

	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	Logger      *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(params CommentServiceParams) usecase.CommentUsecase {
	return &commentService{
		postRepo:    params.PostRepo,
		commentRepo: params.CommentRepo,
		logger:      params.Logger,
	}
}

func (srv *commentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddComment attaches a comment to an existing post. The author field is the
// caller's verified username; there is no ownership restriction on commenting.
func (srv *commentService) AddComment(ctx context.Context, identity entity.Identity, postID int64, input *usecase.AddCommentInput) (*entity.Comment, error) {
	if err := srv.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		Text:      input.Text,
		Username:  identity.Username,
		Timestamp: time.Now().UTC(),
		PostID:    postID,
	}

	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		srv.log(ctx).Warn("Failed to create comment", slog.Int64("postID", postID), slog.Any("error", err))

		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPostNotFound, "post vanished while commenting")
		}

		return nil, errors.Wrap(err, "failed to create comment")
	}

	srv.log(ctx).Debug("Comment added", slog.Int64("commentID", comment.ID), slog.Int64("postID", postID))

	return comment, nil
}

// ListComments returns all comments on an existing post, oldest first.
func (srv *commentService) ListComments(ctx context.Context, postID int64) ([]*entity.Comment, error) {
	if err := srv.ensurePostExists(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := srv.commentRepo.FindByPostID(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	return comments, nil
}

func (srv *commentService) ensurePostExists(ctx context.Context, postID int64) error {
	if _, err := srv.postRepo.FindByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return errors.Wrap(domainerrors.ErrPostNotFound, "post not found")
		}

		return errors.Wrap(err, "failed to find post")
	}

	return nil
}
