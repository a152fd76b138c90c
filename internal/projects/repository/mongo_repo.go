package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/TouhidPavel/Project-CRUD/internal/projects/domain"
)

// CollectionName is the collection (and redis/postgres namespace) holding projects.
const CollectionName = "projects"

type projectDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	ShortDescription string             `bson:"short_des"`
	Description      string             `bson:"description"`
	Image            string             `bson:"image"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func (d *projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		ShortDescription: d.ShortDescription,
		Description:      d.Description,
		Image:            d.Image,
		CreatedAt:        d.CreatedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
	}
}

// MongoRepository stores projects as documents in a MongoDB collection.
type MongoRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    Clock
}

// NewMongoRepository creates a repository on the projects collection of database.
func NewMongoRepository(client *mongo.Client, database string) *MongoRepository {
	return &MongoRepository{
		client: client,
		coll:   client.Database(database).Collection(CollectionName),
		now:    domain.Now,
	}
}

// Insert validates in and stores it as a new document with a fresh ObjectID.
func (r *MongoRepository) Insert(ctx context.Context, in domain.CreateInput) (*domain.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	at := r.now()
	doc := projectDoc{
		ID:               primitive.NewObjectID(),
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
		Image:            in.Image,
		CreatedAt:        at,
		UpdatedAt:        at,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, storageErr("insert project", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc projectDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, r.mapErr("find project", err)
	}
	return doc.toDomain(), nil
}

// UpdateByID sets the supplied patch fields and returns the new document.
// It runs as a pipeline update so updatedAt can be computed from the stored
// value: the later of now and the previous updatedAt plus one millisecond.
func (r *MongoRepository) UpdateByID(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc projectDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, updatePipeline(patch, r.now()), opts).Decode(&doc)
	if err != nil {
		return nil, r.mapErr("update project", err)
	}
	return doc.toDomain(), nil
}

// updatePipeline builds the single $set stage for UpdateByID. Values are
// wrapped in $literal so strings starting with "$" are not read as field paths.
func updatePipeline(patch domain.Patch, at time.Time) mongo.Pipeline {
	fields := patch.Fields()
	set := bson.D{}
	for _, k := range []string{"title", "short_des", "description", "image"} {
		if v, ok := fields[k]; ok {
			set = append(set, bson.E{Key: k, Value: bson.M{"$literal": v}})
		}
	}
	set = append(set, bson.E{Key: "updatedAt", Value: bson.M{
		"$max": bson.A{at, bson.M{"$add": bson.A{"$updatedAt", time.Millisecond.Milliseconds()}}},
	}})
	return mongo.Pipeline{{{Key: "$set", Value: set}}}
}

// DeleteByID removes the document and returns its last state.
func (r *MongoRepository) DeleteByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc projectDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, r.mapErr("delete project", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *MongoRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoRepository) mapErr(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return storageErr(op, err)
}
