package reportRepo

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

// MongoReportRepo implements repository.ReportRepository using MongoDB.
type MongoReportRepo struct {
	coll *mongo.Collection
}

// NewMongoReportRepo creates a report repository backed by the "reports" collection.
func NewMongoReportRepo(db *mongo.Database) repository.ReportRepository {
	repo := &MongoReportRepo{coll: db.Collection("reports")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("Failed to create report indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoReportRepo) ensureIndexes() error {
	ctx, cancel := newContext(nil, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reporterId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "type", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a report by its unique ID.
func (r *MongoReportRepo) GetByID(ctx context.Context, id string) (*models.Report, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var report models.Report
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch report with id %s: %w", id, err)
	}
	return &report, nil
}

// Create inserts a new report document.
func (r *MongoReportRepo) Create(ctx context.Context, report *models.Report) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// Update writes the moderation fields of a report.
func (r *MongoReportRepo) Update(ctx context.Context, report *models.Report) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	report.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"status":     report.Status,
		"resolution": report.Resolution,
		"updatedAt":  report.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": report.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update report with id %s: %w", report.ID, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a report document by its ID.
func (r *MongoReportRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete report with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns one page of reports matching the filter, newest first.
func (r *MongoReportRepo) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.ReporterID != "" {
		query["reporterId"] = filter.ReporterID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(filter.Page.Skip())).
		SetLimit(int64(filter.Page.Limit))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, total, nil
}

// CountByStatus groups report counts by status.
func (r *MongoReportRepo) CountByStatus(ctx context.Context) (map[models.ReportStatus]int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports by status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.ReportStatus `bson:"_id"`
		Count  int64               `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode report counts: %w", err)
	}
	counts := make(map[models.ReportStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
