package repositories

import (
	"context"
	"errors"
	"sort"

	"github.com/fit-lynq/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Tx is the unit of work handed to ReadModifyWrite callbacks. Every read
// observes rows as of the transaction snapshot, with the requested user
// rows locked; every write commits together with the rest of the unit or
// not at all.
type Tx interface {
	// User returns the locked row for an id passed to ReadModifyWrite,
	// or nil if no such user exists. Mutations become visible only after
	// Save.
	User(id uint) *models.User
	Save(u *models.User) error

	FollowExists(followerID, followingID uint) (bool, error)
	CreateFollow(followerID, followingID uint) error
	DeleteFollow(followerID, followingID uint) error
	CountFollowers(userID uint) (int64, error)
	CountFollowing(userID uint) (int64, error)

	BlockExists(blockerID, blockedID uint) (bool, error)
	CreateBlock(blockerID, blockedID uint) error
	DeleteBlock(blockerID, blockedID uint) error

	ReviewExists(reviewerID, revieweeID uint) (bool, error)
	CreateReview(r *models.Review) error
	ReviewsFor(revieweeID uint) ([]models.Review, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	// ReadModifyWrite locks the given user rows, runs fn against them and
	// commits everything fn wrote as one unit. Any error from fn aborts
	// the whole unit.
	ReadModifyWrite(ctx context.Context, ids []uint, fn func(tx Tx) error) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ReadModifyWrite(ctx context.Context, ids []uint, fn func(tx Tx) error) error {
	// Rows are locked in ascending id order so two concurrent operations
	// on the same pair cannot deadlock each other.
	sorted := make([]uint, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		users := make(map[uint]*models.User, len(sorted))
		for _, id := range sorted {
			if _, ok := users[id]; ok {
				continue
			}
			var user models.User
			err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				users[id] = nil
				continue
			}
			if err != nil {
				return err
			}
			users[id] = &user
		}
		return fn(&gormTx{db: db, users: users})
	})
}

type gormTx struct {
	db    *gorm.DB
	users map[uint]*models.User
}

func (t *gormTx) User(id uint) *models.User {
	return t.users[id]
}

func (t *gormTx) Save(u *models.User) error {
	return t.db.Save(u).Error
}

func (t *gormTx) FollowExists(followerID, followingID uint) (bool, error) {
	var count int64
	err := t.db.Model(&models.Follow{}).
		Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (t *gormTx) CreateFollow(followerID, followingID uint) error {
	return t.db.Create(&models.Follow{
		FollowerUserID:  followerID,
		FollowingUserID: followingID,
	}).Error
}

func (t *gormTx) DeleteFollow(followerID, followingID uint) error {
	return t.db.Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (t *gormTx) CountFollowers(userID uint) (int64, error) {
	var count int64
	err := t.db.Model(&models.Follow{}).Where("following_user_id = ?", userID).Count(&count).Error
	return count, err
}

func (t *gormTx) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := t.db.Model(&models.Follow{}).Where("follower_user_id = ?", userID).Count(&count).Error
	return count, err
}

func (t *gormTx) BlockExists(blockerID, blockedID uint) (bool, error) {
	var count int64
	err := t.db.Model(&models.Block{}).
		Where("blocker_user_id = ? AND blocked_user_id = ?", blockerID, blockedID).
		Count(&count).Error
	return count > 0, err
}

func (t *gormTx) CreateBlock(blockerID, blockedID uint) error {
	return t.db.Create(&models.Block{
		BlockerUserID: blockerID,
		BlockedUserID: blockedID,
	}).Error
}

func (t *gormTx) DeleteBlock(blockerID, blockedID uint) error {
	return t.db.Where("blocker_user_id = ? AND blocked_user_id = ?", blockerID, blockedID).
		Delete(&models.Block{}).Error
}

func (t *gormTx) ReviewExists(reviewerID, revieweeID uint) (bool, error) {
	var count int64
	err := t.db.Model(&models.Review{}).
		Where("reviewer_id = ? AND reviewee_id = ?", reviewerID, revieweeID).
		Count(&count).Error
	return count > 0, err
}

func (t *gormTx) CreateReview(r *models.Review) error {
	return t.db.Create(r).Error
}

func (t *gormTx) ReviewsFor(revieweeID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := t.db.Where("reviewee_id = ?", revieweeID).Find(&reviews).Error
	return reviews, err
}
