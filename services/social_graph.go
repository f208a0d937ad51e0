package services

import (
	"context"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/repositories"
)

// SocialGraphService owns every mutation of the follow graph and block
// set. Both sides of an edge and both denormalized counters change inside
// one repository transaction; a request can never leave the graph with a
// dangling one-sided edge. Preconditions are validated against the rows
// read inside that same transaction, so of two concurrent identical
// requests at most one commits and the other fails with Conflict.
type SocialGraphService struct {
	users repositories.UserRepository
}

func NewSocialGraphService(users repositories.UserRepository) *SocialGraphService {
	return &SocialGraphService{users: users}
}

// UserSummary is the minimal profile projection returned after a graph
// mutation, with the freshly recomputed counters.
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Avatar         string `json:"avatar"`
	FollowersCount int64  `json:"followersCount"`
	FollowingCount int64  `json:"followingCount"`
}

type GraphResult struct {
	Actor  UserSummary `json:"actor"`
	Target UserSummary `json:"target"`
}

func summarize(u *models.User) UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		Avatar:         u.Avatar,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}
}

// Follow adds the actor -> target edge to both sides of the graph.
func (s *SocialGraphService) Follow(ctx context.Context, actorID, targetID uint) (*GraphResult, error) {
	if actorID == targetID {
		return nil, invalidArgument("cannot follow yourself")
	}

	var result GraphResult
	err := s.users.ReadModifyWrite(ctx, []uint{actorID, targetID}, func(tx repositories.Tx) error {
		actor, target := tx.User(actorID), tx.User(targetID)
		if actor == nil || target == nil {
			return notFound("user not found")
		}

		exists, err := tx.FollowExists(actorID, targetID)
		if err != nil {
			return err
		}
		if exists {
			return conflict("already following this user")
		}

		if err := tx.CreateFollow(actorID, targetID); err != nil {
			return err
		}
		if err := refreshCounters(tx, actor, target); err != nil {
			return err
		}
		result = GraphResult{Actor: summarize(actor), Target: summarize(target)}
		return nil
	})
	if err != nil {
		return nil, wrapRepoErr(err, "follow failed")
	}
	return &result, nil
}

// Unfollow removes the actor -> target edge from both sides.
func (s *SocialGraphService) Unfollow(ctx context.Context, actorID, targetID uint) (*GraphResult, error) {
	var result GraphResult
	err := s.users.ReadModifyWrite(ctx, []uint{actorID, targetID}, func(tx repositories.Tx) error {
		actor, target := tx.User(actorID), tx.User(targetID)
		if actor == nil || target == nil {
			return notFound("user not found")
		}

		exists, err := tx.FollowExists(actorID, targetID)
		if err != nil {
			return err
		}
		if !exists {
			return conflict("not following this user")
		}

		if err := tx.DeleteFollow(actorID, targetID); err != nil {
			return err
		}
		if err := refreshCounters(tx, actor, target); err != nil {
			return err
		}
		result = GraphResult{Actor: summarize(actor), Target: summarize(target)}
		return nil
	})
	if err != nil {
		return nil, wrapRepoErr(err, "unfollow failed")
	}
	return &result, nil
}

// Block adds target to the actor's block set. Any follow edge between the
// pair, in either direction, is removed in the same transaction. Blocking
// yourself or an already blocked user is a Conflict.
func (s *SocialGraphService) Block(ctx context.Context, actorID, targetID uint) (*GraphResult, error) {
	if actorID == targetID {
		return nil, conflict("cannot block yourself")
	}

	var result GraphResult
	err := s.users.ReadModifyWrite(ctx, []uint{actorID, targetID}, func(tx repositories.Tx) error {
		actor, target := tx.User(actorID), tx.User(targetID)
		if actor == nil || target == nil {
			return notFound("user not found")
		}

		blocked, err := tx.BlockExists(actorID, targetID)
		if err != nil {
			return err
		}
		if blocked {
			return conflict("user already blocked")
		}

		if err := tx.CreateBlock(actorID, targetID); err != nil {
			return err
		}
		for _, pair := range [][2]uint{{actorID, targetID}, {targetID, actorID}} {
			following, err := tx.FollowExists(pair[0], pair[1])
			if err != nil {
				return err
			}
			if following {
				if err := tx.DeleteFollow(pair[0], pair[1]); err != nil {
					return err
				}
			}
		}
		if err := refreshCounters(tx, actor, target); err != nil {
			return err
		}
		result = GraphResult{Actor: summarize(actor), Target: summarize(target)}
		return nil
	})
	if err != nil {
		return nil, wrapRepoErr(err, "block failed")
	}
	return &result, nil
}

// Unblock removes target from the actor's block set. A follow edge torn
// down by a previous Block is not restored.
func (s *SocialGraphService) Unblock(ctx context.Context, actorID, targetID uint) (*GraphResult, error) {
	var result GraphResult
	err := s.users.ReadModifyWrite(ctx, []uint{actorID, targetID}, func(tx repositories.Tx) error {
		actor, target := tx.User(actorID), tx.User(targetID)
		if actor == nil || target == nil {
			return notFound("user not found")
		}

		blocked, err := tx.BlockExists(actorID, targetID)
		if err != nil {
			return err
		}
		if !blocked {
			return conflict("user not blocked")
		}

		if err := tx.DeleteBlock(actorID, targetID); err != nil {
			return err
		}
		result = GraphResult{Actor: summarize(actor), Target: summarize(target)}
		return nil
	})
	if err != nil {
		return nil, wrapRepoErr(err, "unblock failed")
	}
	return &result, nil
}

// RemoveFollower severs an inbound edge: followerID stops following the
// actor, symmetric counters included.
func (s *SocialGraphService) RemoveFollower(ctx context.Context, actorID, followerID uint) (*GraphResult, error) {
	var result GraphResult
	err := s.users.ReadModifyWrite(ctx, []uint{actorID, followerID}, func(tx repositories.Tx) error {
		actor, follower := tx.User(actorID), tx.User(followerID)
		if actor == nil || follower == nil {
			return notFound("user not found")
		}

		exists, err := tx.FollowExists(followerID, actorID)
		if err != nil {
			return err
		}
		if !exists {
			return conflict("user is not a follower")
		}

		if err := tx.DeleteFollow(followerID, actorID); err != nil {
			return err
		}
		if err := refreshCounters(tx, actor, follower); err != nil {
			return err
		}
		result = GraphResult{Actor: summarize(actor), Target: summarize(follower)}
		return nil
	})
	if err != nil {
		return nil, wrapRepoErr(err, "remove follower failed")
	}
	return &result, nil
}

// refreshCounters recomputes both users' counters as the edge-set
// cardinalities visible inside the transaction and persists both rows.
func refreshCounters(tx repositories.Tx, users ...*models.User) error {
	for _, u := range users {
		followers, err := tx.CountFollowers(u.ID)
		if err != nil {
			return err
		}
		following, err := tx.CountFollowing(u.ID)
		if err != nil {
			return err
		}
		u.FollowersCount = followers
		u.FollowingCount = following
		if err := tx.Save(u); err != nil {
			return err
		}
	}
	return nil
}
