package services

import (
	"context"
	"sync"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/repositories"
)

// fakeStore is an in-memory stand-in for the GORM repositories. Writes
// made inside ReadModifyWrite are staged on copies and only applied when
// the callback returns nil, mirroring the transaction contract.
type fakeStore struct {
	mu           sync.Mutex
	users        map[uint]*models.User
	follows      map[[2]uint]bool
	blocks       map[[2]uint]bool
	reviews      []*models.Review
	nextReviewID uint
}

func newFakeStore(users ...*models.User) *fakeStore {
	s := &fakeStore{
		users:        make(map[uint]*models.User),
		follows:      make(map[[2]uint]bool),
		blocks:       make(map[[2]uint]bool),
		nextReviewID: 1,
	}
	for _, u := range users {
		copied := *u
		s.users[u.ID] = &copied
	}
	return s
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	copied := *u
	if u.AverageRatings != nil {
		copied.AverageRatings = make(models.RatingMap, len(u.AverageRatings))
		for k, v := range u.AverageRatings {
			copied.AverageRatings[k] = v
		}
	}
	if u.AverageFacilityRatings != nil {
		copied.AverageFacilityRatings = make(models.RatingMap, len(u.AverageFacilityRatings))
		for k, v := range u.AverageFacilityRatings {
			copied.AverageFacilityRatings[k] = v
		}
	}
	return &copied
}

func (s *fakeStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.users[id]), nil
}

func (s *fakeStore) FindByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u := s.users[id]; u != nil {
			out = append(out, *copyUser(u))
		}
	}
	return out, nil
}

func (s *fakeStore) ReadModifyWrite(ctx context.Context, ids []uint, fn func(tx repositories.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &fakeTx{
		store:   s,
		users:   make(map[uint]*models.User, len(ids)),
		saved:   make(map[uint]*models.User),
		follows: make(map[[2]uint]bool, len(s.follows)),
		blocks:  make(map[[2]uint]bool, len(s.blocks)),
	}
	for _, id := range ids {
		tx.users[id] = copyUser(s.users[id])
	}
	for k, v := range s.follows {
		tx.follows[k] = v
	}
	for k, v := range s.blocks {
		tx.blocks[k] = v
	}

	if err := fn(tx); err != nil {
		return err
	}

	// Commit staged writes.
	s.follows = tx.follows
	s.blocks = tx.blocks
	for id, u := range tx.saved {
		s.users[id] = copyUser(u)
	}
	for _, r := range tx.newReviews {
		r.ID = s.nextReviewID
		s.nextReviewID++
		s.reviews = append(s.reviews, r)
	}
	return nil
}

func (s *fakeStore) FindByReviewerAndReviewee(ctx context.Context, reviewerID, revieweeID uint) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ReviewerID == reviewerID && r.RevieweeID == revieweeID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) FindAllByReviewee(ctx context.Context, revieweeID uint) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Review
	for _, r := range s.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeStore) FindReviewByID(id uint) *models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == id {
			copied := *r
			return &copied
		}
	}
	return nil
}

func (s *fakeStore) Create(ctx context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	review.ID = s.nextReviewID
	s.nextReviewID++
	s.reviews = append(s.reviews, review)
	return nil
}

func (s *fakeStore) UpdateResponse(ctx context.Context, reviewID uint, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == reviewID {
			r.Response = response
			return nil
		}
	}
	return nil
}

// reviewRepo adapts fakeStore to repositories.ReviewRepository, working
// around the FindByID name already used by the user side.
type reviewRepo struct {
	*fakeStore
}

func (r reviewRepo) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	return r.fakeStore.FindReviewByID(id), nil
}

type fakeTx struct {
	store      *fakeStore
	users      map[uint]*models.User
	saved      map[uint]*models.User
	follows    map[[2]uint]bool
	blocks     map[[2]uint]bool
	newReviews []*models.Review
}

func (t *fakeTx) User(id uint) *models.User {
	return t.users[id]
}

func (t *fakeTx) Save(u *models.User) error {
	t.saved[u.ID] = u
	return nil
}

func (t *fakeTx) FollowExists(followerID, followingID uint) (bool, error) {
	return t.follows[[2]uint{followerID, followingID}], nil
}

func (t *fakeTx) CreateFollow(followerID, followingID uint) error {
	t.follows[[2]uint{followerID, followingID}] = true
	return nil
}

func (t *fakeTx) DeleteFollow(followerID, followingID uint) error {
	delete(t.follows, [2]uint{followerID, followingID})
	return nil
}

func (t *fakeTx) CountFollowers(userID uint) (int64, error) {
	var n int64
	for pair := range t.follows {
		if pair[1] == userID {
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) CountFollowing(userID uint) (int64, error) {
	var n int64
	for pair := range t.follows {
		if pair[0] == userID {
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) BlockExists(blockerID, blockedID uint) (bool, error) {
	return t.blocks[[2]uint{blockerID, blockedID}], nil
}

func (t *fakeTx) CreateBlock(blockerID, blockedID uint) error {
	t.blocks[[2]uint{blockerID, blockedID}] = true
	return nil
}

func (t *fakeTx) DeleteBlock(blockerID, blockedID uint) error {
	delete(t.blocks, [2]uint{blockerID, blockedID})
	return nil
}

func (t *fakeTx) ReviewExists(reviewerID, revieweeID uint) (bool, error) {
	for _, r := range t.store.reviews {
		if r.ReviewerID == reviewerID && r.RevieweeID == revieweeID {
			return true, nil
		}
	}
	for _, r := range t.newReviews {
		if r.ReviewerID == reviewerID && r.RevieweeID == revieweeID {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeTx) CreateReview(r *models.Review) error {
	t.newReviews = append(t.newReviews, r)
	return nil
}

func (t *fakeTx) ReviewsFor(revieweeID uint) ([]models.Review, error) {
	var out []models.Review
	for _, r := range t.store.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, *r)
		}
	}
	for _, r := range t.newReviews {
		if r.RevieweeID == revieweeID {
			out = append(out, *r)
		}
	}
	return out, nil
}
