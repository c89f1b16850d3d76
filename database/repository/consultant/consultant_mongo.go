package consultant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"consultly/models"
)

type MongoConsultantRepo struct {
	collection *mongo.Collection
}

func NewMongoConsultantRepo(col *mongo.Collection) *MongoConsultantRepo {
	return &MongoConsultantRepo{collection: col}
}

func (r *MongoConsultantRepo) Create(consultant models.Consultant) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, consultant); err != nil {
		return fmt.Errorf("failed to insert consultant: %w", err)
	}
	return nil
}

func (r *MongoConsultantRepo) GetByID(id string) (*models.Consultant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var consultant models.Consultant
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&consultant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch consultant %s: %w", id, err)
	}
	return &consultant, nil
}

func (r *MongoConsultantRepo) ReplaceWindows(id string, windows []models.WeeklyWindow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"windows": windows, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to replace windows for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoConsultantRepo) SetActive(id string, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"active": active, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set active for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *MongoConsultantRepo) Update(consultant models.Consultant) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	consultant.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"id": consultant.ID}, consultant)
	if err != nil {
		return fmt.Errorf("failed to update consultant %s: %w", consultant.ID, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
