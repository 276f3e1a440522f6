package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogapi/app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// postDocument is the stored shape of a post in MongoDB
type postDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Author  models.Author      `bson:"author"`
	Title   string             `bson:"title"`
	Content string             `bson:"content"`
	Created time.Time          `bson:"created"`
}

func newPostDocument(post *models.BlogPost) postDocument {
	post.BeforeCreate()
	// BSON dates carry millisecond precision
	post.Created = post.Created.Truncate(time.Millisecond)
	oid := primitive.NewObjectID()
	post.ID = oid.Hex()
	return postDocument{
		ID:      oid,
		Author:  post.Author,
		Title:   post.Title,
		Content: post.Content,
		Created: post.Created,
	}
}

func (d postDocument) toModel() *models.BlogPost {
	return &models.BlogPost{
		ID:      d.ID.Hex(),
		Author:  d.Author,
		Title:   d.Title,
		Content: d.Content,
		Created: d.Created.UTC(),
	}
}

// MongoPostRepository implements PostRepository on a MongoDB collection
type MongoPostRepository struct {
	coll *mongo.Collection
}

// NewMongoPostRepository creates a repository over the given collection
func NewMongoPostRepository(coll *mongo.Collection) *MongoPostRepository {
	return &MongoPostRepository{coll: coll}
}

// InsertOne assigns a new ObjectID and stores the post
func (r *MongoPostRepository) InsertOne(ctx context.Context, post *models.BlogPost) error {
	doc := newPostDocument(post)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		post.ID = ""
		return err
	}
	return nil
}

// InsertMany stores a batch of posts in one round trip
func (r *MongoPostRepository) InsertMany(ctx context.Context, posts []*models.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(posts))
	for _, post := range posts {
		docs = append(docs, newPostDocument(post))
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

// FindAll retrieves every post in ObjectID order
func (r *MongoPostRepository) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	posts := make([]*models.BlogPost, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toModel())
	}
	return posts, nil
}

// FindByID retrieves a post by ID
func (r *MongoPostRepository) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc postDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// UpdateByID sets only the fields present in the patch
func (r *MongoPostRepository) UpdateByID(ctx context.Context, id string, patch *models.PostPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	// $set with no fields is rejected by the server
	if patch.Empty() {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}

	set := bson.D{}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *patch.Content})
	}
	if patch.Author != nil {
		set = append(set, bson.E{Key: "author", Value: *patch.Author})
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID deletes a post by ID
func (r *MongoPostRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DropAll drops the whole collection
func (r *MongoPostRepository) DropAll(ctx context.Context) error {
	return r.coll.Drop(ctx)
}

// MongoOptions configures OpenMongo.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore owns a MongoDB client and serves posts from one collection.
type MongoStore struct {
	*MongoPostRepository
	client *mongo.Client
}

// OpenMongo connects to the server and verifies it answers a ping.
func OpenMongo(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	return &MongoStore{
		MongoPostRepository: NewMongoPostRepository(coll),
		client:              client,
	}, nil
}

// Ping checks the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}
