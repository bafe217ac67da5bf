package usecase

import (
	"context"

	"picstream/internal/domain/entity"
)

// AddCommentInput defines the data required to comment on a post.
type AddCommentInput struct {
	Text string
}

// CommentUsecase defines the interface for comment-related business operations.
type CommentUsecase interface {
	// AddComment attaches a comment to an existing post. Any authenticated
	// user may comment on any post; the author username comes from the
	// verified identity, never from the request body.
	AddComment(ctx context.Context, identity entity.Identity, postID int64, input *AddCommentInput) (*entity.Comment, error)

	// ListComments returns all comments on an existing post, oldest first.
	ListComments(ctx context.Context, postID int64) ([]*entity.Comment, error)
}
