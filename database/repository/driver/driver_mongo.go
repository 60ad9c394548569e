package driverRepo

import (
	"context"
	"fmt"
	"time"

	"fleetdesk/database"
	"fleetdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDriverRepo implements DriverRepository using MongoDB.
type MongoDriverRepo struct {
	coll *mongo.Collection
}

// NewMongoDriverRepo creates a new instance of DriverRepository using MongoDB.
func NewMongoDriverRepo() DriverRepository {
	coll := database.MongoClient.Database("fleetdesk").Collection("drivers")
	repo := &MongoDriverRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDriverRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mobile", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new driver document.
func (r *MongoDriverRepo) Create(driver *models.Driver) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	driver.CreatedAt = now
	driver.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, driver); err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

// GetByID retrieves a driver by its unique ID.
func (r *MongoDriverRepo) GetByID(id string) (*models.Driver, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByMobile retrieves a driver by mobile number.
func (r *MongoDriverRepo) GetByMobile(mobile string) (*models.Driver, error) {
	return r.findOne(bson.M{"mobile": mobile})
}

func (r *MongoDriverRepo) findOne(filter bson.M) (*models.Driver, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var drv models.Driver
	if err := r.coll.FindOne(ctx, filter).Decode(&drv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch driver: %w", err)
	}
	return &drv, nil
}

// UpdateFCMToken replaces the driver's push token.
func (r *MongoDriverRepo) UpdateFCMToken(id, token string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"fcmToken": token, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update driver %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("driver with id %s not found", id)
	}
	return nil
}
