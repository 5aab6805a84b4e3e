package repositories

import (
	"context"
	"time"

	"github.com/anonto42/linkedin-clone/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository defines the interface for the analytics activity log
type ActivityRepository interface {
	InsertActivity(ctx context.Context, activity *models.Activity) error
	RecentActivity(ctx context.Context, userID uint, limit int64) ([]models.Activity, error)
	Summary(ctx context.Context, userID uint, since time.Time) ([]models.ActivityCount, error)
}

type mongoActivityRepository struct {
	collection *mongo.Collection
}

func NewMongoActivityRepository(mongoDB *mongo.Database) ActivityRepository {
	return &mongoActivityRepository{collection: mongoDB.Collection("user_activities")}
}

// EnsureActivityIndexes creates the (user_id, timestamp) index the queries below use.
func EnsureActivityIndexes(ctx context.Context, mongoDB *mongo.Database) error {
	_, err := mongoDB.Collection("user_activities").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}

func (r *mongoActivityRepository) InsertActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, activity)
	return err
}

func (r *mongoActivityRepository) RecentActivity(ctx context.Context, userID uint, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// Summary counts the user's activities per type since the given time.
func (r *mongoActivityRepository) Summary(ctx context.Context, userID uint, since time.Time) ([]models.ActivityCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "timestamp": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": "$activity_type", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := []models.ActivityCount{}
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
