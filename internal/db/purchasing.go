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

// MongoPurchaseOrderCollection implements PurchaseOrderCollection for MongoDB.
type MongoPurchaseOrderCollection struct {
	Collection *mongo.Collection
}

// InsertPurchaseOrder inserts a purchase order and returns its generated ID.
func (c *MongoPurchaseOrderCollection) InsertPurchaseOrder(ctx context.Context, order models.PurchaseOrder) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, order)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindPurchaseOrderByID finds a purchase order, details included, by its ID.
func (c *MongoPurchaseOrderCollection) FindPurchaseOrderByID(ctx context.Context, id string) (*models.PurchaseOrder, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase order ID: %w", err)
	}
	var order models.PurchaseOrder
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("purchase order not found")
		}
		return nil, err
	}
	return &order, nil
}

// FindPurchaseOrders queries purchase orders from the collection.
func (c *MongoPurchaseOrderCollection) FindPurchaseOrders(ctx context.Context, filter bson.M) ([]models.PurchaseOrder, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var orders []models.PurchaseOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdatePurchaseOrder replaces a purchase order, details included, by its ID.
func (c *MongoPurchaseOrderCollection) UpdatePurchaseOrder(ctx context.Context, id string, order models.PurchaseOrder) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid purchase order ID: %w", err)
	}
	order.ID = objectID
	order.UpdatedAt = time.Now()
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, order)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("purchase order not found")
	}
	return nil
}

// DeletePurchaseOrder deletes a purchase order by its ID.
func (c *MongoPurchaseOrderCollection) DeletePurchaseOrder(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
