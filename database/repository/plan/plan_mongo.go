package planRepo

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

// MongoPlanRepo implements PlanRepository using MongoDB.
type MongoPlanRepo struct {
	coll *mongo.Collection
}

// NewMongoPlanRepo creates a new instance of PlanRepository using MongoDB.
func NewMongoPlanRepo() PlanRepository {
	coll := database.MongoClient.Database("fleetdesk").Collection("rental_plans")
	repo := &MongoPlanRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPlanRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new plan document.
func (r *MongoPlanRepo) Create(plan *models.RentalPlan) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, plan); err != nil {
		return fmt.Errorf("failed to create rental plan: %w", err)
	}
	return nil
}

// GetByID retrieves a plan by its unique ID.
func (r *MongoPlanRepo) GetByID(id string) (*models.RentalPlan, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var plan models.RentalPlan
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&plan); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch rental plan %s: %w", id, err)
	}
	return &plan, nil
}

// GetAllActive retrieves all plans currently offered.
func (r *MongoPlanRepo) GetAllActive() ([]models.RentalPlan, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rental plans: %w", err)
	}
	defer cursor.Close(ctx)

	var plans []models.RentalPlan
	for cursor.Next(ctx) {
		var p models.RentalPlan
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode rental plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}
