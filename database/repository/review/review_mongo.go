package reviewRepo

import (
	"context"
	"fmt"
	"time"

	"karigar/database/repository"
	"karigar/models"
	"karigar/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoReviewRepo implements repository.ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a review repository backed by the "reviews" collection.
func NewMongoReviewRepo(db *mongo.Database) repository.ReviewRepository {
	repo := &MongoReviewRepo{coll: db.Collection("reviews")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("Failed to create review indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes makes bookingId unique so a booking can carry one review.
func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := newContext(nil, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_review_booking")},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a review by its unique ID.
func (r *MongoReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByBookingID retrieves the review left for a booking.
func (r *MongoReviewRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Review, error) {
	return r.findOne(ctx, bson.M{"bookingId": bookingID})
}

func (r *MongoReviewRepo) findOne(ctx context.Context, filter bson.M) (*models.Review, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}
	return &review, nil
}

// Create inserts a review document.
func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	review.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Delete removes a review document by its ID.
func (r *MongoReviewRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns one page of reviews, newest first.
func (r *MongoReviewRepo) List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.ProviderID != "" {
		query["providerId"] = filter.ProviderID
	}
	if filter.CustomerID != "" {
		query["customerId"] = filter.CustomerID
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(filter.Page.Skip())).
		SetLimit(int64(filter.Page.Limit))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

// Summary computes the review count and the average rating.
func (r *MongoReviewRepo) Summary(ctx context.Context) (models.RatingSummary, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to summarise reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Count   int64   `bson:"count"`
		Average float64 `bson:"average"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to decode review summary: %w", err)
	}
	if len(rows) == 0 {
		return models.RatingSummary{}, nil
	}
	return models.RatingSummary{Count: rows[0].Count, Average: rows[0].Average}, nil
}

// SummaryByProvider computes the review count and average rating of each
// of the given providers.
func (r *MongoReviewRepo) SummaryByProvider(ctx context.Context, providerIDs []string) (map[string]models.RatingSummary, error) {
	summaries := make(map[string]models.RatingSummary, len(providerIDs))
	if len(providerIDs) == 0 {
		return summaries, nil
	}

	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"providerId": bson.M{"$in": providerIDs}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$providerId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise provider reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ProviderID string  `bson:"_id"`
		Count      int64   `bson:"count"`
		Average    float64 `bson:"average"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode provider review summary: %w", err)
	}
	for _, row := range rows {
		summaries[row.ProviderID] = models.RatingSummary{Count: row.Count, Average: row.Average}
	}
	return summaries, nil
}
