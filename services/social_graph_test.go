package services

import (
	"context"
	"testing"

	"github.com/fit-lynq/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraphFixture() (*SocialGraphService, *fakeStore) {
	store := newFakeStore(
		&models.User{ID: 1, Username: "u1", UserType: models.AccountTypeIndividual},
		&models.User{ID: 2, Username: "u2", UserType: models.AccountTypeIndividual},
		&models.User{ID: 3, Username: "u3", UserType: models.AccountTypeIndividual},
	)
	return NewSocialGraphService(store), store
}

func TestFollowUpdatesBothSidesAndCounters(t *testing.T) {
	svc, store := newGraphFixture()
	ctx := context.Background()

	result, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Actor.FollowingCount)
	assert.Equal(t, int64(0), result.Actor.FollowersCount)
	assert.Equal(t, int64(1), result.Target.FollowersCount)
	assert.Equal(t, int64(0), result.Target.FollowingCount)

	u1, _ := store.FindByID(ctx, 1)
	u2, _ := store.FindByID(ctx, 2)
	assert.Equal(t, int64(1), u1.FollowingCount)
	assert.Equal(t, int64(1), u2.FollowersCount)
	assert.True(t, store.follows[[2]uint{1, 2}])
}

func TestFollowSelfIsInvalid(t *testing.T) {
	svc, _ := newGraphFixture()

	_, err := svc.Follow(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Equal(t, KindInvalidArgument, KindOf(err))
}

func TestFollowMissingUserIsNotFound(t *testing.T) {
	svc, _ := newGraphFixture()

	_, err := svc.Follow(context.Background(), 1, 99)
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestFollowTwiceIsConflict(t *testing.T) {
	svc, store := newGraphFixture()
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)

	_, err = svc.Follow(ctx, 1, 2)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	// The failed attempt must not have touched the counters.
	u2, _ := store.FindByID(ctx, 2)
	assert.Equal(t, int64(1), u2.FollowersCount)
}

func TestFollowThenUnfollowRoundTrips(t *testing.T) {
	svc, store := newGraphFixture()
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.Unfollow(ctx, 1, 2)
	require.NoError(t, err)

	u1, _ := store.FindByID(ctx, 1)
	u2, _ := store.FindByID(ctx, 2)
	assert.Equal(t, int64(0), u1.FollowingCount)
	assert.Equal(t, int64(0), u1.FollowersCount)
	assert.Equal(t, int64(0), u2.FollowersCount)
	assert.Equal(t, int64(0), u2.FollowingCount)
	assert.Empty(t, store.follows)
}

func TestUnfollowWithoutEdgeIsConflict(t *testing.T) {
	svc, _ := newGraphFixture()

	_, err := svc.Unfollow(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestBlockRemovesFollowEdgesBothDirections(t *testing.T) {
	svc, store := newGraphFixture()
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, 2, 1)
	require.NoError(t, err)

	_, err = svc.Block(ctx, 1, 2)
	require.NoError(t, err)

	assert.True(t, store.blocks[[2]uint{1, 2}])
	assert.Empty(t, store.follows)

	u1, _ := store.FindByID(ctx, 1)
	u2, _ := store.FindByID(ctx, 2)
	assert.Equal(t, int64(0), u1.FollowingCount)
	assert.Equal(t, int64(0), u1.FollowersCount)
	assert.Equal(t, int64(0), u2.FollowersCount)
	assert.Equal(t, int64(0), u2.FollowingCount)
}

func TestBlockSelfIsConflict(t *testing.T) {
	svc, _ := newGraphFixture()

	_, err := svc.Block(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestBlockTwiceIsConflict(t *testing.T) {
	svc, _ := newGraphFixture()
	ctx := context.Background()

	_, err := svc.Block(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.Block(ctx, 1, 2)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestUnblockDoesNotRestoreFollowEdge(t *testing.T) {
	svc, store := newGraphFixture()
	ctx := context.Background()

	// u1 follows u2, then blocks u2, then unblocks: the follow edge
	// must stay gone.
	_, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)

	u1, _ := store.FindByID(ctx, 1)
	u2, _ := store.FindByID(ctx, 2)
	require.Equal(t, int64(1), u1.FollowingCount)
	require.Equal(t, int64(1), u2.FollowersCount)

	_, err = svc.Block(ctx, 1, 2)
	require.NoError(t, err)

	u1, _ = store.FindByID(ctx, 1)
	u2, _ = store.FindByID(ctx, 2)
	assert.Equal(t, int64(0), u1.FollowingCount)
	assert.Equal(t, int64(0), u2.FollowersCount)
	assert.True(t, store.blocks[[2]uint{1, 2}])

	_, err = svc.Unblock(ctx, 1, 2)
	require.NoError(t, err)

	assert.False(t, store.blocks[[2]uint{1, 2}])
	assert.Empty(t, store.follows)
}

func TestUnblockWithoutBlockIsConflict(t *testing.T) {
	svc, _ := newGraphFixture()

	_, err := svc.Unblock(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestRemoveFollowerSeversInboundEdge(t *testing.T) {
	svc, store := newGraphFixture()
	ctx := context.Background()

	_, err := svc.Follow(ctx, 2, 1)
	require.NoError(t, err)

	_, err = svc.RemoveFollower(ctx, 1, 2)
	require.NoError(t, err)

	u1, _ := store.FindByID(ctx, 1)
	u2, _ := store.FindByID(ctx, 2)
	assert.Equal(t, int64(0), u1.FollowersCount)
	assert.Equal(t, int64(0), u2.FollowingCount)
	assert.Empty(t, store.follows)
}

func TestRemoveFollowerWithoutEdgeIsConflict(t *testing.T) {
	svc, _ := newGraphFixture()

	_, err := svc.RemoveFollower(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestCountersAlwaysMatchEdgeSetCardinality(t *testing.T) {
	svc, store := newGraphFixture()
	ctx := context.Background()

	_, err := svc.Follow(ctx, 1, 2)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, 3, 2)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, 2, 1)
	require.NoError(t, err)

	u2, _ := store.FindByID(ctx, 2)
	assert.Equal(t, int64(2), u2.FollowersCount)
	assert.Equal(t, int64(1), u2.FollowingCount)

	_, err = svc.Unfollow(ctx, 3, 2)
	require.NoError(t, err)

	u2, _ = store.FindByID(ctx, 2)
	assert.Equal(t, int64(1), u2.FollowersCount)
}
