package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/TouhidPavel/Project-CRUD/internal/projects/domain"
)

func mongoDoc(id primitive.ObjectID, title string, created, updated time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "short_des", Value: "b"},
		{Key: "description", Value: "c"},
		{Key: "image", Value: "d.png"},
		{Key: "createdAt", Value: created},
		{Key: "updatedAt", Value: updated},
	}
}

func newMongoRepo(mt *mtest.T) *MongoRepository {
	return NewMongoRepository(mt.Client, "projectModel")
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "projectModel." + CollectionName
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("insert returns the stored record", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		repo.now = fixedClock(created)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p, err := repo.Insert(context.Background(), sampleInput())
		require.NoError(mt, err)
		assert.Len(mt, p.ID, 24)
		assert.Equal(mt, "A", p.Title)
		assert.Equal(mt, "b", p.ShortDescription)
		assert.Equal(mt, created, p.CreatedAt)
		assert.Equal(mt, p.CreatedAt, p.UpdatedAt)
	})

	mt.Run("insert rejects missing fields before touching the server", func(mt *mtest.T) {
		repo := newMongoRepo(mt)

		_, err := repo.Insert(context.Background(), domain.CreateInput{Image: "d.png"})
		assert.ErrorIs(mt, err, domain.ErrValidation)
	})

	mt.Run("insert surfaces server failures as storage errors", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))

		_, err := repo.Insert(context.Background(), sampleInput())
		require.Error(mt, err)
		assert.ErrorIs(mt, err, domain.ErrStorage)
		assert.Contains(mt, err.Error(), "boom")
	})

	mt.Run("find returns the document", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, mongoDoc(id, "A", created, created)))

		p, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, &domain.Project{
			ID:               id.Hex(),
			Title:            "A",
			ShortDescription: "b",
			Description:      "c",
			Image:            "d.png",
			CreatedAt:        created,
			UpdatedAt:        created,
		}, p)
	})

	mt.Run("find with no match is not found", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("malformed ids are not found", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		ctx := context.Background()

		_, err := repo.FindByID(ctx, "123")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
		_, err = repo.UpdateByID(ctx, "xyz", domain.Patch{Title: strPtr("X")})
		assert.ErrorIs(mt, err, domain.ErrNotFound)
		_, err = repo.DeleteByID(ctx, "")
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("update returns the new document", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		later := created.Add(time.Minute)
		repo.now = fixedClock(later)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: mongoDoc(id, "X", created, later)},
		})

		p, err := repo.UpdateByID(context.Background(), id.Hex(), domain.Patch{Title: strPtr("X")})
		require.NoError(mt, err)
		assert.Equal(mt, "X", p.Title)
		assert.Equal(mt, "c", p.Description)
		assert.Equal(mt, later, p.UpdatedAt)
	})

	mt.Run("update computes updatedAt from the stored value", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		repo.now = fixedClock(created)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: mongoDoc(id, "$X", created, created.Add(time.Millisecond))},
		})

		p, err := repo.UpdateByID(context.Background(), id.Hex(), domain.Patch{Title: strPtr("$X")})
		require.NoError(mt, err)
		assert.True(mt, p.UpdatedAt.After(created))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "findAndModify", evt.CommandName)

		stage := evt.Command.Lookup("update", "0", "$set")
		require.Equal(mt, bson.TypeEmbeddedDocument, stage.Type)

		title := stage.Document().Lookup("title", "$literal")
		assert.Equal(mt, "$X", title.StringValue())

		maxArgs, ok := stage.Document().Lookup("updatedAt", "$max").ArrayOK()
		require.True(mt, ok)
		vals, err := maxArgs.Values()
		require.NoError(mt, err)
		require.Len(mt, vals, 2)
		assert.Equal(mt, created, vals[0].Time().UTC())
		add := vals[1].Document().Lookup("$add")
		addVals, err := add.Array().Values()
		require.NoError(mt, err)
		require.Len(mt, addVals, 2)
		assert.Equal(mt, "$updatedAt", addVals[0].StringValue())
		assert.Equal(mt, int64(1), addVals[1].Int64())
	})

	mt.Run("update pipeline only sets supplied fields", func(mt *mtest.T) {
		stage := updatePipeline(domain.Patch{Image: strPtr("")}, created)[0]
		require.Len(mt, stage, 1)
		set, ok := stage[0].Value.(bson.D)
		require.True(mt, ok)
		require.Len(mt, set, 2)
		assert.Equal(mt, "image", set[0].Key)
		assert.Equal(mt, bson.M{"$literal": ""}, set[0].Value)
		assert.Equal(mt, "updatedAt", set[1].Key)
	})

	mt.Run("update with no match is not found", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		_, err := repo.UpdateByID(context.Background(), primitive.NewObjectID().Hex(), domain.Patch{Title: strPtr("X")})
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})

	mt.Run("delete returns the prior document", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: mongoDoc(id, "A", created, created)},
		})

		p, err := repo.DeleteByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), p.ID)
		assert.Equal(mt, "A", p.Title)
	})

	mt.Run("delete with no match is not found", func(mt *mtest.T) {
		repo := newMongoRepo(mt)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: nil},
		})

		_, err := repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, domain.ErrNotFound)
	})
}
