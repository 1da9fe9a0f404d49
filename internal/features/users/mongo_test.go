package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func userDoc(id int64, username string, followers int) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "username", Value: username},
		{Key: "email", Value: username + "@example.com"},
		{Key: "gender", Value: ""},
		{Key: "image", Value: nil},
		{Key: "imageName", Value: nil},
		{Key: "password", Value: "pw1"},
		{Key: "mobile", Value: ""},
		{Key: "followers", Value: followers},
		{Key: "description", Value: ""},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("FindByUsername", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "goalpath.users", mtest.FirstBatch, userDoc(1, "alice", 0)))

		user, err := repo.FindByUsername(ctx, "alice")
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, int64(1), user.ID)
		assert.Nil(mt, user.Image)
	})

	mt.Run("FindAll", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "goalpath.users", mtest.FirstBatch,
			userDoc(1, "alice", 0), userDoc(2, "bob", 5)))

		users, err := repo.FindAll(ctx)
		require.NoError(mt, err)
		require.Len(mt, users, 2)
		assert.Equal(mt, 5, users[1].Followers)
	})

	mt.Run("SaveInsert", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: "users"},
				{Key: "seq", Value: int64(3)},
			}}),
			mtest.CreateSuccessResponse(),
		)

		user := &User{Username: "carol"}
		require.NoError(mt, repo.Save(ctx, user))
		assert.Equal(mt, int64(3), user.ID)
	})

	mt.Run("SaveUpdateKeepsStoredFollowers", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: userDoc(2, "alice2", 7)}))

		user := &User{ID: 2, Username: "alice2", Followers: 3}
		require.NoError(mt, repo.Save(ctx, user))
		assert.Equal(mt, 7, user.Followers)

		cmd := mt.GetStartedEvent().Command
		update := cmd.Lookup("update").Document()
		set := update.Lookup("$set").Document()
		_, err := set.LookupErr("followers")
		assert.Error(mt, err, "followers must not be overwritten")
		assert.Equal(mt, "alice2", set.Lookup("username").StringValue())
	})

	mt.Run("FollowIncrements", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: userDoc(1, "alice", 1)}))

		user, err := repo.AdjustFollowers(ctx, 1, 1)
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, 1, user.Followers)
	})

	mt.Run("FollowMissingUser", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		user, err := repo.AdjustFollowers(ctx, 9, 1)
		require.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("UnfollowAtZeroReturnsCurrent", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "goalpath.users", mtest.FirstBatch, userDoc(1, "alice", 0)),
		)

		user, err := repo.AdjustFollowers(ctx, 1, -1)
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, 0, user.Followers)
	})

	mt.Run("UnfollowMissingUser", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, "goalpath.users", mtest.FirstBatch),
		)

		user, err := repo.AdjustFollowers(ctx, 1, -1)
		require.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("DeleteByID", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, repo.DeleteByID(ctx, 1))
	})
}
