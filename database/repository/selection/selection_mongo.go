package selectionRepo

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

// MongoSelectionRepo implements SelectionRepository using MongoDB.
type MongoSelectionRepo struct {
	coll    *mongo.Collection
	txnColl *mongo.Collection
}

// NewMongoSelectionRepo creates a new SelectionRepository backed by MongoDB.
func NewMongoSelectionRepo() SelectionRepository {
	db := database.MongoClient.Database("fleetdesk")
	repo := &MongoSelectionRepo{
		coll:    db.Collection("plan_selections"),
		txnColl: db.Collection("gateway_transactions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// unique index on gateway transaction ids is what makes webhook
// check-and-insert dedup atomic.
func (r *MongoSelectionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	selectionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "driverId", Value: 1}}},
		{Keys: bson.D{{Key: "driverMobile", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, selectionIndexes); err != nil {
		return fmt.Errorf("failed to create selection indexes: %w", err)
	}

	txnIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "transactionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.txnColl.Indexes().CreateOne(ctx, txnIndex); err != nil {
		return fmt.Errorf("failed to create gateway transaction index: %w", err)
	}
	return nil
}

// Create inserts a new plan selection document.
func (r *MongoSelectionRepo) Create(sel *models.PlanSelection) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	sel.CreatedAt = now
	sel.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, sel); err != nil {
		return fmt.Errorf("failed to create plan selection: %w", err)
	}
	return nil
}

// GetByID retrieves a selection by its unique ID. Returns (nil, nil) when no
// document matches.
func (r *MongoSelectionRepo) GetByID(id string) (*models.PlanSelection, error) {
	return r.findOne(bson.M{"id": id})
}

// GetActiveByDriver retrieves a driver's non-completed selection.
func (r *MongoSelectionRepo) GetActiveByDriver(driverID string) (*models.PlanSelection, error) {
	return r.findOne(bson.M{
		"driverId": driverID,
		"status":   bson.M{"$ne": models.SelectionCompleted},
	})
}

// GetActiveByMobile is the lookup fallback for selections made before the
// driver record existed.
func (r *MongoSelectionRepo) GetActiveByMobile(mobile string) (*models.PlanSelection, error) {
	return r.findOne(bson.M{
		"driverMobile": mobile,
		"status":       bson.M{"$ne": models.SelectionCompleted},
	})
}

func (r *MongoSelectionRepo) findOne(filter bson.M) (*models.PlanSelection, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var sel models.PlanSelection
	if err := r.coll.FindOne(ctx, filter).Decode(&sel); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch plan selection: %w", err)
	}
	return &sel, nil
}

// GetAllByDriver retrieves every selection a driver has made, newest first.
func (r *MongoSelectionRepo) GetAllByDriver(driverID string) ([]models.PlanSelection, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"driverId": driverID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve selections for driver %s: %w", driverID, err)
	}
	defer cursor.Close(ctx)

	var selections []models.PlanSelection
	for cursor.Next(ctx) {
		var s models.PlanSelection
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode plan selection: %w", err)
		}
		selections = append(selections, s)
	}
	return selections, nil
}

// Delete removes a selection document by its ID.
func (r *MongoSelectionRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete plan selection %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("plan selection %s not found", id)
	}
	return nil
}
