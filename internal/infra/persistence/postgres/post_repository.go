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

// postRepository implements the repository.PostRepository interface using GORM.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

// Create persists a new post row. The caller is responsible for assigning
// the timestamp and owner before calling.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	if err := repo.db.WithContext(ctx).Create(postM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrPostNotFound.WrapMessage("invalid post owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required post information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create post")
	}

	post.ID = postM.ID

	return nil
}

// FindByID retrieves a single post with its owner loaded.
func (repo *postRepository) FindByID(ctx context.Context, id int64) (*entity.Post, error) {
	var postM model.PostModel
	if err := repo.db.WithContext(ctx).Preload("User").First(&postM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post by id")
	}

	return toPostDomain(&postM), nil
}

// FindAll retrieves every post with its owner loaded, newest first.
// No filtering, no pagination.
func (repo *postRepository) FindAll(ctx context.Context) ([]*entity.Post, error) {
	var postMs []model.PostModel
	if err := repo.db.WithContext(ctx).Preload("User").Order("timestamp DESC").Find(&postMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return toPostDomainSlice(postMs), nil
}

// FindByUserID retrieves every post owned by the given user, newest first.
func (repo *postRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Post, error) {
	var postMs []model.PostModel
	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&postMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list posts by user")
	}

	return toPostDomainSlice(postMs), nil
}

// Update modifies only the caption and image fields of an existing post.
// Timestamp and owner columns are deliberately excluded from the update.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"image_url":      post.ImageURL,
			"image_url_type": post.ImageURLType,
			"caption":        post.Caption,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// Delete removes the post row.
func (repo *postRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.PostModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPostDomain converts a GORM PostModel to a domain Post entity.
func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	return &entity.Post{
		ID:           data.ID,
		ImageURL:     data.ImageURL,
		ImageURLType: data.ImageURLType,
		Caption:      data.Caption,
		Timestamp:    data.Timestamp,
		UserID:       data.UserID,
		Owner:        toUserDomain(data.User),
	}
}

func toPostDomainSlice(data []model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, 0, len(data))
	for i := range data {
		posts = append(posts, toPostDomain(&data[i]))
	}

	return posts
}

// fromPostDomain converts a domain Post entity to a GORM PostModel for persistence.
func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	return &model.PostModel{
		ID:           data.ID,
		ImageURL:     data.ImageURL,
		ImageURLType: data.ImageURLType,
		Caption:      data.Caption,
		Timestamp:    data.Timestamp,
		UserID:       data.UserID,
	}
}
