package db

import (
	"context"
	"fmt"
	"time"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSupplierCollection implements SupplierCollection for MongoDB.
type MongoSupplierCollection struct {
	Collection *mongo.Collection
}

// InsertSupplier inserts a supplier record into the collection.
func (c *MongoSupplierCollection) InsertSupplier(ctx context.Context, supplier models.Supplier) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	supplier.CreatedAt = time.Now()
	supplier.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, supplier)
	return err
}

// FindSupplierByID finds a supplier by its ID.
func (c *MongoSupplierCollection) FindSupplierByID(ctx context.Context, id string) (*models.Supplier, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier ID: %w", err)
	}
	var supplier models.Supplier
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&supplier)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("supplier not found")
		}
		return nil, err
	}
	return &supplier, nil
}

// FindSuppliers queries supplier records from the collection.
func (c *MongoSupplierCollection) FindSuppliers(ctx context.Context, filter bson.M) ([]models.Supplier, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var suppliers []models.Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// UpdateSupplier replaces a supplier by its ID.
func (c *MongoSupplierCollection) UpdateSupplier(ctx context.Context, id string, supplier models.Supplier) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	supplier.ID = objectID
	supplier.UpdatedAt = time.Now()
	_, err = c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, supplier)
	return err
}

// DeleteSupplier deletes a supplier by its ID.
func (c *MongoSupplierCollection) DeleteSupplier(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

// MongoEvaluationCollection implements EvaluationCollection for MongoDB.
type MongoEvaluationCollection struct {
	Collection *mongo.Collection
}

// InsertEvaluation inserts a supplier evaluation record.
func (c *MongoEvaluationCollection) InsertEvaluation(ctx context.Context, eval models.SupplierEvaluation) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	eval.CreatedAt = time.Now()
	eval.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, eval)
	return err
}

// FindEvaluationsBySupplier returns all evaluations filed for a supplier.
func (c *MongoEvaluationCollection) FindEvaluationsBySupplier(ctx context.Context, supplierID string) ([]models.SupplierEvaluation, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{"supplier_id": supplierID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var evals []models.SupplierEvaluation
	if err := cursor.All(ctx, &evals); err != nil {
		return nil, err
	}
	return evals, nil
}

// UpdateEvaluation replaces a supplier evaluation by its ID.
func (c *MongoEvaluationCollection) UpdateEvaluation(ctx context.Context, id string, eval models.SupplierEvaluation) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	eval.ID = objectID
	eval.UpdatedAt = time.Now()
	_, err = c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, eval)
	return err
}

// DeleteEvaluation deletes a supplier evaluation by its ID.
func (c *MongoEvaluationCollection) DeleteEvaluation(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
