package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"karigar/database/repository"
	"karigar/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document at version 1.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 1
	booking.SlotActive = booking.Status.IsActive()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a booking if nobody else wrote it
// since expectedVersion was read.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking, expectedVersion int64) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now().UTC()
	booking.Version = expectedVersion + 1
	booking.SlotActive = booking.Status.IsActive()

	filter := bson.M{"id": booking.ID, "version": expectedVersion}
	update := bson.M{"$set": bson.M{
		"status":        booking.Status,
		"scheduledAt":   booking.ScheduledAt,
		"notes":         booking.Notes,
		"slotActive":    booking.SlotActive,
		"version":       booking.Version,
		"statusHistory": booking.StatusHistory,
		"updatedAt":     booking.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		booking.Version = expectedVersion
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("failed to update booking with id %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		booking.Version = expectedVersion
		return r.missOrConflict(ctx, booking.ID)
	}
	return nil
}

// missOrConflict tells a vanished booking apart from a stale version.
func (r *MongoBookingRepo) missOrConflict(ctx context.Context, id string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to check booking with id %s: %w", id, err)
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return repository.ErrVersionConflict
}

// AttachReview links a review to the booking when none is linked yet.
func (r *MongoBookingRepo) AttachReview(ctx context.Context, bookingID, reviewID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id": bookingID,
		"$or": bson.A{
			bson.M{"reviewId": bson.M{"$exists": false}},
			bson.M{"reviewId": ""},
		},
	}
	update := bson.M{
		"$set": bson.M{"reviewId": reviewID, "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to attach review to booking %s: %w", bookingID, err)
	}
	if result.MatchedCount == 0 {
		err := r.missOrConflict(ctx, bookingID)
		if err == repository.ErrVersionConflict {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// DetachReview unlinks reviewID from the booking.
func (r *MongoBookingRepo) DetachReview(ctx context.Context, bookingID, reviewID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID, "reviewId": reviewID}
	update := bson.M{
		"$unset": bson.M{"reviewId": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
		"$inc":   bson.M{"version": 1},
	}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to detach review from booking %s: %w", bookingID, err)
	}
	return nil
}

// Delete removes a booking document by its ID.
func (r *MongoBookingRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
