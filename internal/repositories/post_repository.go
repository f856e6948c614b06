package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stitchfold/backend/internal/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByUser(ctx context.Context, userUID string, skip, limit int64) ([]models.Post, error)
	GetFeed(ctx context.Context, userUIDs []string, skip, limit int64) ([]models.Post, error)
	GetReels(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	UpdatePost(ctx context.Context, id, userUID string, req *models.UpdatePostRequest) error
	DeletePost(ctx context.Context, id, userUID string) error
	IncrementLikesCount(ctx context.Context, postID string) error
	DecrementLikesCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByUser retrieves posts by a specific user, newest first
func (r *MongoPostRepository) GetPostsByUser(ctx context.Context, userUID string, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"user_uid": userUID}, skip, limit)
}

// GetFeed retrieves posts authored by any of the given users, newest
// first. Used with the follow repository's following-id list.
func (r *MongoPostRepository) GetFeed(ctx context.Context, userUIDs []string, skip, limit int64) ([]models.Post, error) {
	if len(userUIDs) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"user_uid": bson.M{"$in": userUIDs}}, skip, limit)
}

// GetReels retrieves video posts for the reels surface
func (r *MongoPostRepository) GetReels(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"is_video": true}, skip, limit)
}

// GetAllPosts retrieves all posts with pagination for the browse page
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{}, skip, limit)
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Post, error) {
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates a post's editable fields. The user scope keeps an
// account from editing someone else's post.
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id, userUID string, req *models.UpdatePostRequest) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Caption != "" {
		set["caption"] = req.Caption
	}
	if req.Description != "" {
		set["description"] = req.Description
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "user_uid": userUID},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost deletes a post owned by the given user
func (r *MongoPostRepository) DeletePost(ctx context.Context, id, userUID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID, "user_uid": userUID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementLikesCount increments the likes count of a post
func (r *MongoPostRepository) IncrementLikesCount(ctx context.Context, postID string) error {
	return r.adjustLikes(ctx, postID, 1)
}

// DecrementLikesCount decrements the likes count of a post
func (r *MongoPostRepository) DecrementLikesCount(ctx context.Context, postID string) error {
	return r.adjustLikes(ctx, postID, -1)
}

func (r *MongoPostRepository) adjustLikes(ctx context.Context, postID string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	filter := bson.M{"_id": objID}
	if delta < 0 {
		// Don't let the counter dip below zero.
		filter["likes_count"] = bson.M{"$gt": 0}
	}
	_, err = r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"likes_count": delta}})
	return err
}
