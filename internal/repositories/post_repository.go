package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Ougobatec/Breezy-sub000/internal/apperr"
	"github.com/Ougobatec/Breezy-sub000/internal/models"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error)
	GetPostsByAuthors(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error)
	DeletePost(ctx context.Context, id string) error
	AddLiker(ctx context.Context, postID string, userID uint) error
	RemoveLiker(ctx context.Context, postID string, userID uint) error
	AppendReport(ctx context.Context, postID string, report models.Report) error
	ClearReports(ctx context.Context, postID string) error
	GetReportedPosts(ctx context.Context, limit int64) ([]models.Post, error)
	SearchPosts(ctx context.Context, query string, limit int64) ([]models.Post, error)
	SearchPostsByTag(ctx context.Context, tag string, limit int64) ([]models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	CountReportedPosts(ctx context.Context) (int64, error)
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
	post.UpdatedAt = post.CreatedAt
	if post.LikerIDs == nil {
		post.LikerIDs = []uint{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid post id", apperr.ErrInvalidInput)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *MongoPostRepository) find(ctx context.Context, filter interface{}, skip, limit int64) ([]models.Post, error) {
	var posts []models.Post
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAllPosts retrieves all posts newest-first with pagination
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.D{}, skip, limit)
}

// GetPostsByAuthor retrieves posts by a single author newest-first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"author_id": authorID}, skip, limit)
}

// GetPostsByAuthors retrieves posts authored by any of the given accounts,
// newest-first. Used for the flow (followed accounts plus self).
func (r *MongoPostRepository) GetPostsByAuthors(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, skip, limit)
}

// DeletePost deletes a post by ID from MongoDB
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid post id", apperr.ErrInvalidInput)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AddLiker adds an account to the likers set ($addToSet keeps it duplicate-free)
func (r *MongoPostRepository) AddLiker(ctx context.Context, postID string, userID uint) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: invalid post id", apperr.ErrInvalidInput)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$addToSet": bson.M{"liker_ids": userID}})
	return err
}

// RemoveLiker removes an account from the likers set
func (r *MongoPostRepository) RemoveLiker(ctx context.Context, postID string, userID uint) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: invalid post id", apperr.ErrInvalidInput)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$pull": bson.M{"liker_ids": userID}})
	return err
}

// AppendReport appends a report to the post's reports list
func (r *MongoPostRepository) AppendReport(ctx context.Context, postID string, report models.Report) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: invalid post id", apperr.ErrInvalidInput)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"reports": report}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ClearReports empties the post's reports list (report dismissal)
func (r *MongoPostRepository) ClearReports(ctx context.Context, postID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("%w: invalid post id", apperr.ErrInvalidInput)
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"reports": []models.Report{}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// GetReportedPosts retrieves posts with at least one pending report
func (r *MongoPostRepository) GetReportedPosts(ctx context.Context, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"reports.0": bson.M{"$exists": true}}, 0, limit)
}

// SearchPosts performs a case-insensitive substring match over post bodies
func (r *MongoPostRepository) SearchPosts(ctx context.Context, query string, limit int64) ([]models.Post, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return r.find(ctx, bson.M{"content": pattern}, 0, limit)
}

// SearchPostsByTag performs a case-insensitive prefix match over tags
func (r *MongoPostRepository) SearchPostsByTag(ctx context.Context, tag string, limit int64) ([]models.Post, error) {
	pattern := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(tag), Options: "i"}
	return r.find(ctx, bson.M{"tags": pattern}, 0, limit)
}

// CountPosts returns the total number of posts
func (r *MongoPostRepository) CountPosts(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}

// CountReportedPosts returns the number of posts with pending reports
func (r *MongoPostRepository) CountReportedPosts(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"reports.0": bson.M{"$exists": true}})
}
