package repositories

import (
	"context"
	"errors"

	"github.com/fit-lynq/api-go/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	FindByReviewerAndReviewee(ctx context.Context, reviewerID, revieweeID uint) (*models.Review, error)
	FindAllByReviewee(ctx context.Context, revieweeID uint) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	UpdateResponse(ctx context.Context, reviewID uint, response string) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByReviewerAndReviewee(ctx context.Context, reviewerID, revieweeID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ? AND reviewee_id = ?", reviewerID, revieweeID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindAllByReviewee(ctx context.Context, revieweeID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("reviewee_id = ?", revieweeID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) UpdateResponse(ctx context.Context, reviewID uint, response string) error {
	return r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", reviewID).
		Update("response", response).Error
}
