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

// postService implements the PostUsecase interface.
type postService struct {
	txManager repository.TransactionManager
	postRepo  repository.PostRepository
	logger    *slog.Logger
}

// PostServiceParams holds dependencies for postService, injected by Fx.
type PostServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	PostRepo  repository.PostRepository
	Logger    *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	return &postService{
		txManager: params.TxManager,
		postRepo:  params.PostRepo,
		logger:    params.Logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListPosts returns all posts with their owners, no filtering and no pagination.
func (srv *postService) ListPosts(ctx context.Context) ([]*entity.Post, error) {
	posts, err := srv.postRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

// ListOwnPosts returns all posts owned by the caller.
func (srv *postService) ListOwnPosts(ctx context.Context, identity entity.Identity) ([]*entity.Post, error) {
	posts, err := srv.postRepo.FindByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list own posts")
	}

	return posts, nil
}

// CreatePost publishes a new post. The timestamp is assigned here in UTC and
// the owner is always the authenticated caller.
func (srv *postService) CreatePost(ctx context.Context, identity entity.Identity, input *usecase.CreatePostInput) (*entity.Post, error) {
	post := &entity.Post{
		ImageURL:     input.ImageURL,
		ImageURLType: input.ImageURLType,
		Caption:      input.Caption,
		Timestamp:    time.Now().UTC(),
		UserID:       identity.UserID,
	}

	if err := srv.postRepo.Create(ctx, post); err != nil {
		srv.log(ctx).Warn("Failed to create post", slog.Int64("userID", identity.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create post")
	}

	post.Owner = &entity.User{ID: identity.UserID, Username: identity.Username}

	srv.log(ctx).Debug("Post created", slog.Int64("postID", post.ID), slog.Int64("userID", identity.UserID))

	return post, nil
}

// UpdatePost mutates the caption/image fields of an existing post after the
// ownership check. Timestamp and owner are never touched.
func (srv *postService) UpdatePost(ctx context.Context, identity entity.Identity, postID int64, input *usecase.UpdatePostInput) error {
	post, err := srv.loadOwnedPost(ctx, identity, postID)
	if err != nil {
		return err
	}

	post.ImageURL = input.ImageURL
	post.ImageURLType = input.ImageURLType
	post.Caption = input.Caption

	if err := srv.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return errors.Wrap(domainerrors.ErrPostNotFound, "post vanished during update")
		}

		return errors.Wrap(err, "failed to update post")
	}

	srv.log(ctx).Debug("Post updated", slog.Int64("postID", postID), slog.Int64("userID", identity.UserID))

	return nil
}

// DeletePost removes a post and its comments atomically, so no orphaned
// comment rows are left behind.
func (srv *postService) DeletePost(ctx context.Context, identity entity.Identity, postID int64) error {
	if _, err := srv.loadOwnedPost(ctx, identity, postID); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewCommentRepository().DeleteByPostID(ctx, postID); err != nil {
			return errors.Wrap(err, "failed to delete comments of post")
		}

		if err := repoFactory.NewPostRepository().Delete(ctx, postID); err != nil {
			return errors.Wrap(err, "failed to delete post")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete post", slog.Int64("postID", postID), slog.Any("error", err))

		if errors.Is(err, repository.ErrPostNotFound) {
			return errors.Wrap(domainerrors.ErrPostNotFound, "post vanished during delete")
		}

		return errors.Wrap(err, "failed to execute post deletion transaction")
	}

	srv.log(ctx).Debug("Post deleted", slog.Int64("postID", postID), slog.Int64("userID", identity.UserID))

	return nil
}

// loadOwnedPost fetches a post and enforces the ownership protocol:
// absent post first, then owner mismatch.
func (srv *postService) loadOwnedPost(ctx context.Context, identity entity.Identity, postID int64) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPostNotFound, "post not found")
		}

		return nil, errors.Wrap(err, "failed to find post")
	}

	if post.UserID != identity.UserID {
		srv.log(ctx).Warn("Ownership check failed",
			slog.Int64("postID", postID),
			slog.Int64("ownerID", post.UserID),
			slog.Int64("callerID", identity.UserID),
		)

		return nil, errors.Wrap(domainerrors.ErrNotPostOwner, "caller does not own post")
	}

	return post, nil
}
