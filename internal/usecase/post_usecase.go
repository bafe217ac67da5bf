package usecase

import (
	"context"

	"picstream/internal/domain/entity"
)

// CreatePostInput defines the data required to publish a post.
// The owner is always the authenticated caller; any caller-supplied owner
// information is ignored.
type CreatePostInput struct {
	ImageURL     string
	ImageURLType string
	Caption      string
}

// UpdatePostInput defines the mutable fields of a post.
type UpdatePostInput struct {
	ImageURL     string
	ImageURLType string
	Caption      string
}

// PostUsecase defines the interface for post-related business operations.
type PostUsecase interface {
	// ListPosts returns all posts with their owners. Public.
	ListPosts(ctx context.Context) ([]*entity.Post, error)

	// ListOwnPosts returns all posts owned by the caller.
	ListOwnPosts(ctx context.Context, identity entity.Identity) ([]*entity.Post, error)

	// CreatePost publishes a new post owned by the caller with a
	// server-assigned UTC timestamp.
	CreatePost(ctx context.Context, identity entity.Identity, input *CreatePostInput) (*entity.Post, error)

	// UpdatePost mutates the caption/image fields of the caller's post.
	// Fails with ErrPostNotFound or ErrNotPostOwner.
	UpdatePost(ctx context.Context, identity entity.Identity, postID int64, input *UpdatePostInput) error

	// DeletePost removes the caller's post together with its comments.
	// Fails with ErrPostNotFound or ErrNotPostOwner.
	DeletePost(ctx context.Context, identity entity.Identity, postID int64) error
}
