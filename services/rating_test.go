package services

import (
	"context"
	"testing"

	"github.com/fit-lynq/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRatingFixture() (*RatingService, *fakeStore) {
	store := newFakeStore(
		&models.User{ID: 1, Username: "player1", UserType: models.AccountTypeIndividual},
		&models.User{ID: 2, Username: "player2", UserType: models.AccountTypeIndividual},
		&models.User{ID: 3, Username: "player3", UserType: models.AccountTypeIndividual},
		&models.User{ID: 10, Username: "padelhall", UserType: models.AccountTypeBusiness},
	)
	return NewRatingService(store, reviewRepo{store}), store
}

func TestSubmitReviewStoresReviewAndAverages(t *testing.T) {
	svc, store := newRatingFixture()
	ctx := context.Background()

	result, err := svc.SubmitReview(ctx, 1, 2, "great teammate", map[string]int{
		"sportiness": 5,
		"kindness":   4,
	}, false)
	require.NoError(t, err)
	require.NotNil(t, result.Review)

	assert.Equal(t, 5.0, result.AverageRatings["sportiness"])
	assert.Equal(t, 4.0, result.AverageRatings["kindness"])
	// Omitted dimensions still appear, at zero.
	assert.Equal(t, 0.0, result.AverageRatings["teamwork"])

	reviewee, _ := store.FindByID(ctx, 2)
	assert.Equal(t, 5.0, reviewee.AverageRatings["sportiness"])
}

func TestSubmitReviewTwiceForSamePairIsConflict(t *testing.T) {
	svc, store := newRatingFixture()
	ctx := context.Background()

	first, err := svc.SubmitReview(ctx, 1, 2, "solid", map[string]int{"kindness": 5}, false)
	require.NoError(t, err)

	_, err = svc.SubmitReview(ctx, 1, 2, "changed my mind", map[string]int{"kindness": 1}, false)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	// Averages must still reflect exactly the first review.
	reviewee, _ := store.FindByID(ctx, 2)
	assert.Equal(t, first.AverageRatings["kindness"], reviewee.AverageRatings["kindness"])
	assert.Equal(t, 5.0, reviewee.AverageRatings["kindness"])
}

func TestSubmitReviewMissingRevieweeIsNotFound(t *testing.T) {
	svc, _ := newRatingFixture()

	_, err := svc.SubmitReview(context.Background(), 1, 99, "hi", map[string]int{"kindness": 3}, false)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSubmitReviewValidatesInput(t *testing.T) {
	svc, _ := newRatingFixture()
	ctx := context.Background()

	_, err := svc.SubmitReview(ctx, 1, 2, "   ", map[string]int{"kindness": 3}, false)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	_, err = svc.SubmitReview(ctx, 1, 2, "ok", nil, false)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	_, err = svc.SubmitReview(ctx, 1, 2, "ok", map[string]int{"kindness": 6}, false)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	// Dimension set comes from the reviewee's account type, so a facility
	// dimension on an individual review is rejected.
	_, err = svc.SubmitReview(ctx, 1, 2, "ok", map[string]int{"cleanliness": 4}, false)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestBusinessReviewRequiresBusinessAccount(t *testing.T) {
	svc, _ := newRatingFixture()

	_, err := svc.SubmitReview(context.Background(), 1, 2, "nice courts", map[string]int{"cleanliness": 4}, true)
	require.Error(t, err)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestBusinessAveragesOverThreeReviews(t *testing.T) {
	svc, store := newRatingFixture()
	ctx := context.Background()

	for reviewer, score := range map[uint]int{1: 5, 2: 4, 3: 3} {
		_, err := svc.SubmitReview(ctx, reviewer, 10, "review", map[string]int{"cleanliness": score}, true)
		require.NoError(t, err)
	}

	business, _ := store.FindByID(ctx, 10)
	assert.Equal(t, 4.0, business.AverageFacilityRatings["cleanliness"])
	// Individual map stays untouched for business accounts.
	assert.Empty(t, business.AverageRatings)
}

func TestOmittedDimensionsDragAverageDown(t *testing.T) {
	// A review that omits a dimension contributes 0 to that dimension's
	// sum. Two reviews, only one rating safety at 4, must average 2.0.
	svc, store := newRatingFixture()
	ctx := context.Background()

	_, err := svc.SubmitReview(ctx, 1, 10, "clean and safe", map[string]int{"cleanliness": 5, "safety": 4}, true)
	require.NoError(t, err)
	_, err = svc.SubmitReview(ctx, 2, 10, "clean", map[string]int{"cleanliness": 5}, true)
	require.NoError(t, err)

	business, _ := store.FindByID(ctx, 10)
	assert.Equal(t, 5.0, business.AverageFacilityRatings["cleanliness"])
	assert.Equal(t, 2.0, business.AverageFacilityRatings["safety"])
	assert.Equal(t, 0.0, business.AverageFacilityRatings["valueForMoney"])
}

func TestAveragesRoundToOneDecimal(t *testing.T) {
	svc, store := newRatingFixture()
	ctx := context.Background()

	// 5 + 4 + 4 = 13, 13/3 = 4.333... -> 4.3
	for reviewer, score := range map[uint]int{1: 5, 2: 4, 3: 4} {
		_, err := svc.SubmitReview(ctx, reviewer, 10, "review", map[string]int{"cleanliness": score}, true)
		require.NoError(t, err)
	}

	business, _ := store.FindByID(ctx, 10)
	assert.Equal(t, 4.3, business.AverageFacilityRatings["cleanliness"])
}

func TestRespondToReview(t *testing.T) {
	svc, _ := newRatingFixture()
	ctx := context.Background()

	result, err := svc.SubmitReview(ctx, 1, 2, "good", map[string]int{"kindness": 4}, false)
	require.NoError(t, err)
	reviewID := result.Review.ID

	// Someone other than the reviewee cannot respond.
	_, err = svc.RespondToReview(ctx, 1, reviewID, "thanks")
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))

	review, err := svc.RespondToReview(ctx, 2, reviewID, "thanks!")
	require.NoError(t, err)
	assert.Equal(t, "thanks!", review.Response)

	_, err = svc.RespondToReview(ctx, 2, 999, "hello")
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.RespondToReview(ctx, 2, reviewID, "  ")
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestListReviews(t *testing.T) {
	svc, _ := newRatingFixture()
	ctx := context.Background()

	_, err := svc.SubmitReview(ctx, 1, 2, "good", map[string]int{"kindness": 4}, false)
	require.NoError(t, err)
	_, err = svc.SubmitReview(ctx, 3, 2, "fine", map[string]int{"kindness": 3}, false)
	require.NoError(t, err)

	reviews, err := svc.ListReviews(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = svc.ListReviews(ctx, 99)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestComputeAveragesEmptySetYieldsZeroes(t *testing.T) {
	averages := ComputeAverages(models.BusinessRatingDimensions, nil)
	for _, dim := range models.BusinessRatingDimensions {
		assert.Equal(t, 0.0, averages[dim])
	}
}
