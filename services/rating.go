package services

import (
	"context"
	"math"
	"strings"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/repositories"
)

// RatingService enforces the one-review-per-pair rule and keeps the
// reviewee's displayed averages equal to the per-dimension arithmetic
// mean of all stored reviews, rounded to one decimal at the point of
// persisting.
type RatingService struct {
	users   repositories.UserRepository
	reviews repositories.ReviewRepository
}

func NewRatingService(users repositories.UserRepository, reviews repositories.ReviewRepository) *RatingService {
	return &RatingService{users: users, reviews: reviews}
}

type ReviewResult struct {
	Review         *models.Review   `json:"review"`
	AverageRatings models.RatingMap `json:"averageRatings"`
}

// SubmitReview creates a review and recomputes the reviewee's averages in
// the same transaction. The dimension set is selected from the reviewee's
// account type; submitting a dimension outside that set, or a value
// outside [1,5], is an InvalidArgument. requireBusiness additionally
// rejects individual reviewees (the business-review endpoint).
func (s *RatingService) SubmitReview(ctx context.Context, reviewerID, revieweeID uint, content string, ratings map[string]int, requireBusiness bool) (*ReviewResult, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalidArgument("content is required")
	}
	if len(ratings) == 0 {
		return nil, invalidArgument("ratings are required")
	}

	var result ReviewResult
	err := s.users.ReadModifyWrite(ctx, []uint{revieweeID}, func(tx repositories.Tx) error {
		reviewee := tx.User(revieweeID)
		if reviewee == nil {
			return notFound("user not found")
		}
		if requireBusiness && !reviewee.IsBusiness() {
			return invalidArgument("can only review business accounts")
		}

		dims := models.RatingDimensionsFor(reviewee.UserType)
		if err := validateRatings(ratings, dims); err != nil {
			return err
		}

		exists, err := tx.ReviewExists(reviewerID, revieweeID)
		if err != nil {
			return err
		}
		if exists {
			return conflict("you have already reviewed this user")
		}

		review := &models.Review{
			ReviewerID: reviewerID,
			RevieweeID: revieweeID,
			Content:    strings.TrimSpace(content),
			Ratings:    models.ReviewRatings(ratings),
		}
		if err := tx.CreateReview(review); err != nil {
			return err
		}

		all, err := tx.ReviewsFor(revieweeID)
		if err != nil {
			return err
		}
		averages := ComputeAverages(dims, all)
		if reviewee.IsBusiness() {
			reviewee.AverageFacilityRatings = averages
		} else {
			reviewee.AverageRatings = averages
		}
		if err := tx.Save(reviewee); err != nil {
			return err
		}

		result = ReviewResult{Review: review, AverageRatings: averages}
		return nil
	})
	if err != nil {
		return nil, wrapRepoErr(err, "submit review failed")
	}
	return &result, nil
}

// RespondToReview sets the response text on a review. Only the reviewee
// may respond; averages are untouched.
func (s *RatingService) RespondToReview(ctx context.Context, actorID, reviewID uint, response string) (*models.Review, error) {
	if strings.TrimSpace(response) == "" {
		return nil, invalidArgument("response is required")
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, wrapRepoErr(err, "load review failed")
	}
	if review == nil {
		return nil, notFound("review not found")
	}
	if review.RevieweeID != actorID {
		return nil, forbidden("only the reviewee can respond to this review")
	}

	if err := s.reviews.UpdateResponse(ctx, reviewID, strings.TrimSpace(response)); err != nil {
		return nil, wrapRepoErr(err, "update response failed")
	}
	review.Response = strings.TrimSpace(response)
	return review, nil
}

// ListReviews returns all reviews where the user is reviewee, newest
// first.
func (s *RatingService) ListReviews(ctx context.Context, revieweeID uint) ([]models.Review, error) {
	reviewee, err := s.users.FindByID(ctx, revieweeID)
	if err != nil {
		return nil, wrapRepoErr(err, "load user failed")
	}
	if reviewee == nil {
		return nil, notFound("user not found")
	}
	reviews, err := s.reviews.FindAllByReviewee(ctx, revieweeID)
	if err != nil {
		return nil, wrapRepoErr(err, "list reviews failed")
	}
	return reviews, nil
}

func validateRatings(ratings map[string]int, dims []string) error {
	valid := make(map[string]bool, len(dims))
	for _, d := range dims {
		valid[d] = true
	}
	for name, value := range ratings {
		if !valid[name] {
			return invalidArgument("unknown rating dimension: " + name)
		}
		if value < 1 || value > 5 {
			return invalidArgument("rating " + name + " must be between 1 and 5")
		}
	}
	return nil
}

// ComputeAverages returns, per dimension, the mean of the stored values
// across all reviews, rounded half-up to one decimal. A review that omits
// a dimension contributes 0 to that dimension's sum. No reviews yields 0
// for every dimension.
func ComputeAverages(dims []string, reviews []models.Review) models.RatingMap {
	averages := make(models.RatingMap, len(dims))
	for _, d := range dims {
		averages[d] = 0
	}
	if len(reviews) == 0 {
		return averages
	}
	count := float64(len(reviews))
	for _, d := range dims {
		sum := 0
		for _, r := range reviews {
			sum += r.Ratings[d]
		}
		averages[d] = math.Round(float64(sum)/count*10) / 10
	}
	return averages
}
