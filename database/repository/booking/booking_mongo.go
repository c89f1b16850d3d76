package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"consultly/models"
)

type MongoBookingRepo struct {
	collection *mongo.Collection
}

func NewMongoBookingRepo(col *mongo.Collection) *MongoBookingRepo {
	return &MongoBookingRepo{collection: col}
}

// EnsureIndexes creates the unique id index and the compound index backing
// hydration and per-consultant listings.
func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "consultant_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "requester_id", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) Create(booking models.Booking) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) UpdateStatus(id string, from []models.BookingStatus, to models.BookingStatus, extra map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set := bson.M{"status": to, "updated_at": time.Now().UTC()}
	for k, v := range extra {
		set[k] = v
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"id": id, "status": bson.M{"$in": from}},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		// Either the booking does not exist or its status is not in "from".
		// Disambiguate so callers can report not_found correctly.
		count, cerr := r.collection.CountDocuments(ctx, bson.M{"id": id})
		if cerr == nil && count == 0 {
			return models.ErrNotFound
		}
		return models.ErrInvalidTransition
	}
	return nil
}

func (r *MongoBookingRepo) ListByRequester(requesterID string) ([]models.Booking, error) {
	return r.list(bson.M{"requester_id": requesterID})
}

func (r *MongoBookingRepo) ListByConsultant(consultantID string) ([]models.Booking, error) {
	return r.list(bson.M{"consultant_id": consultantID})
}

func (r *MongoBookingRepo) ListActive() ([]models.Booking, error) {
	return r.list(bson.M{"status": bson.M{"$in": []models.BookingStatus{
		models.BookingStatusPending, models.BookingStatusConfirmed,
	}}})
}

func (r *MongoBookingRepo) ListStalePending(cutoff time.Time) ([]models.Booking, error) {
	return r.list(bson.M{
		"status":     models.BookingStatusPending,
		"created_at": bson.M{"$lt": cutoff},
	})
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
