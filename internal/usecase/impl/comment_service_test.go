package impl

import (
	"context"
	"testing"
	"time"

	"picstream/internal/domain/entity"
	domainerrors "picstream/internal/domain/errors"
	"picstream/internal/domain/repository"
	mockRepo "picstream/internal/mocks/repository"
	"picstream/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// commentServiceFixtures holds all test dependencies for comment service tests.
type commentServiceFixtures struct {
	service     usecase.CommentUsecase
	postRepo    *mockRepo.MockPostRepository
	commentRepo *mockRepo.MockCommentRepository
}

func createTestCommentService(t *testing.T) commentServiceFixtures {
	postRepo := mockRepo.NewMockPostRepository(t)
	commentRepo := mockRepo.NewMockCommentRepository(t)

	service := NewCommentService(CommentServiceParams{
		PostRepo:    postRepo,
		CommentRepo: commentRepo,
		Logger:      newDiscardLogger(),
	})

	return commentServiceFixtures{
		service:     service,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

func TestCommentService_AddComment_Success(t *testing.T) {
	fixtures := createTestCommentService(t)

	ctx := context.Background()
	identity := entity.Identity{UserID: 42, Username: "alice"}
	post := &entity.Post{ID: 7, UserID: 1}
	before := time.Now().UTC()

	fixtures.postRepo.EXPECT().FindByID(ctx, int64(7)).Return(post, nil)
	fixtures.commentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Comment")).
		Run(func(ctx context.Context, comment *entity.Comment) {
			comment.ID = 3
		}).
		Return(nil)

	comment, err := fixtures.service.AddComment(ctx, identity, 7, &usecase.AddCommentInput{
		Text: "nice shot",
	})

	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.Equal(t, int64(3), comment.ID)
	assert.Equal(t, "nice shot", comment.Text)
	// The author is always the verified caller, not a request field.
	assert.Equal(t, "alice", comment.Username)
	assert.Equal(t, int64(7), comment.PostID)
	assert.False(t, comment.Timestamp.Before(before))
}

func TestCommentService_AddComment_PostNotFound(t *testing.T) {
	fixtures := createTestCommentService(t)

	ctx := context.Background()
	identity := entity.Identity{UserID: 42, Username: "alice"}

	fixtures.postRepo.EXPECT().
		FindByID(ctx, int64(99)).
		Return(nil, repository.ErrPostNotFound)

	comment, err := fixtures.service.AddComment(ctx, identity, 99, &usecase.AddCommentInput{
		Text: "nice shot",
	})

	assert.Nil(t, comment)
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}

func TestCommentService_AddComment_AnyAuthenticatedUser(t *testing.T) {
	fixtures := createTestCommentService(t)

	ctx := context.Background()
	// The caller does not own the post; commenting is still allowed.
	identity := entity.Identity{UserID: 42, Username: "alice"}
	post := &entity.Post{ID: 7, UserID: 1}

	fixtures.postRepo.EXPECT().FindByID(ctx, int64(7)).Return(post, nil)
	fixtures.commentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Comment")).
		Return(nil)

	comment, err := fixtures.service.AddComment(ctx, identity, 7, &usecase.AddCommentInput{
		Text: "not my post but still commenting",
	})

	require.NoError(t, err)
	assert.NotNil(t, comment)
}

func TestCommentService_ListComments(t *testing.T) {
	fixtures := createTestCommentService(t)

	ctx := context.Background()
	post := &entity.Post{ID: 7, UserID: 1}
	comments := []*entity.Comment{
		{ID: 1, Text: "first", PostID: 7},
		{ID: 2, Text: "second", PostID: 7},
	}

	fixtures.postRepo.EXPECT().FindByID(ctx, int64(7)).Return(post, nil)
	fixtures.commentRepo.EXPECT().FindByPostID(ctx, int64(7)).Return(comments, nil)

	got, err := fixtures.service.ListComments(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, comments, got)
}

func TestCommentService_ListComments_PostNotFound(t *testing.T) {
	fixtures := createTestCommentService(t)

	ctx := context.Background()
	fixtures.postRepo.EXPECT().
		FindByID(ctx, int64(99)).
		Return(nil, repository.ErrPostNotFound)

	got, err := fixtures.service.ListComments(ctx, 99)

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrPostNotFound))
}
