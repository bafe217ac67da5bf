package postgres

import (
	"context"

	"picstream/internal/domain/entity"
	domainerrors "picstream/internal/domain/errors"
	"picstream/internal/domain/repository"
	"picstream/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// commentRepository implements the repository.CommentRepository interface using GORM.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{db: db}
}

// Create persists a new comment row.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := fromCommentDomain(comment)

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPostNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required comment information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID

	return nil
}

// FindByPostID retrieves every comment on the given post, oldest first.
func (repo *commentRepository) FindByPostID(ctx context.Context, postID int64) ([]*entity.Comment, error) {
	var commentMs []model.CommentModel
	if err := repo.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("timestamp ASC").
		Find(&commentMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list comments by post")
	}

	comments := make([]*entity.Comment, 0, len(commentMs))
	for i := range commentMs {
		comments = append(comments, toCommentDomain(&commentMs[i]))
	}

	return comments, nil
}

// DeleteByPostID removes all comments belonging to the given post.
// Zero affected rows is not an error; a post may simply have no comments.
func (repo *commentRepository) DeleteByPostID(ctx context.Context, postID int64) error {
	if err := repo.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.CommentModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete comments by post")
	}

	return nil
}

// --- Mapper Functions ---

func toCommentDomain(data *model.CommentModel) *entity.Comment {
	if data == nil {
		return nil
	}

	return &entity.Comment{
		ID:        data.ID,
		Text:      data.Text,
		Username:  data.Username,
		Timestamp: data.Timestamp,
		PostID:    data.PostID,
	}
}

func fromCommentDomain(data *entity.Comment) *model.CommentModel {
	if data == nil {
		return nil
	}

	return &model.CommentModel{
		ID:        data.ID,
		Text:      data.Text,
		Username:  data.Username,
		Timestamp: data.Timestamp,
		PostID:    data.PostID,
	}
}
