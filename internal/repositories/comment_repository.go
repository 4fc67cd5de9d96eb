package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	PushReply(ctx context.Context, parentID, replyID primitive.ObjectID) error
	PullReply(ctx context.Context, parentID, replyID primitive.ObjectID) error
	DeleteCommentsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	DeleteCommentsByPostID(ctx context.Context, postID string) error
	CountComments(ctx context.Context) (int64, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid comment id", apperr.ErrInvalidInput)
	}

	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments of a post, oldest first
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid post id", apperr.ErrInvalidInput)
	}

	var comments []models.Comment
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"post_id": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// PushReply appends a reply reference to the parent's ordered reply list
func (r *MongoCommentRepository) PushReply(ctx context.Context, parentID, replyID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": parentID}, bson.M{"$push": bson.M{"reply_ids": replyID}})
	return err
}

// PullReply removes a reply reference from the parent's reply list
func (r *MongoCommentRepository) PullReply(ctx context.Context, parentID, replyID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": parentID}, bson.M{"$pull": bson.M{"reply_ids": replyID}})
	return err
}

// DeleteCommentsByIDs bulk-deletes the given comments and returns how many
// records were removed
func (r *MongoCommentRepository) DeleteCommentsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteCommentsByPostID removes every comment of a deleted post
func (r *MongoCommentRepository) DeleteCommentsByPostID(ctx context.Context, postID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: invalid post id", apperr.ErrInvalidInput)
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"post_id": objID})
	return err
}

// CountComments returns the total number of comments
func (r *MongoCommentRepository) CountComments(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}
