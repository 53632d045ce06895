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

// MongoPartCollection implements PartCollection for MongoDB.
type MongoPartCollection struct {
	Collection *mongo.Collection
}

// InsertPart inserts an inventory part record.
func (c *MongoPartCollection) InsertPart(ctx context.Context, part models.Part) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	part.CreatedAt = time.Now()
	part.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, part)
	return err
}

// FindPartByID finds a part by its ID.
func (c *MongoPartCollection) FindPartByID(ctx context.Context, id string) (*models.Part, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid part ID: %w", err)
	}
	var part models.Part
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&part)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("part not found")
		}
		return nil, err
	}
	return &part, nil
}

// FindParts queries part records from the collection.
func (c *MongoPartCollection) FindParts(ctx context.Context, filter bson.M) ([]models.Part, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var parts []models.Part
	if err := cursor.All(ctx, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// FindLowStockParts returns parts at or below their reorder threshold.
func (c *MongoPartCollection) FindLowStockParts(ctx context.Context) ([]models.Part, error) {
	filter := bson.M{"$expr": bson.M{"$lte": bson.A{"$quantity_in_stock", "$minimum_stock"}}}
	return c.FindParts(ctx, filter)
}

// UpdatePart replaces a part by its ID.
func (c *MongoPartCollection) UpdatePart(ctx context.Context, id string, part models.Part) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	part.ID = objectID
	part.UpdatedAt = time.Now()
	_, err = c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, part)
	return err
}

// DeletePart deletes a part by its ID.
func (c *MongoPartCollection) DeletePart(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

// MongoVehicleCollection implements VehicleCollection for MongoDB.
type MongoVehicleCollection struct {
	Collection *mongo.Collection
}

// InsertVehicle inserts a vehicle record and returns its generated ID.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (string, error) {
	if c.Collection == nil {
		return "", fmt.Errorf("mongo collection is nil")
	}
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()
	res, err := c.Collection.InsertOne(ctx, vehicle)
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted ID type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindVehicleByID finds a vehicle by its ID.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID: %w", err)
	}
	var vehicle models.Vehicle
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("vehicle not found")
		}
		return nil, err
	}
	return &vehicle, nil
}

// FindVehicles queries vehicle records from the collection.
func (c *MongoVehicleCollection) FindVehicles(ctx context.Context, filter bson.M) ([]models.Vehicle, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// UpdateVehicle replaces a vehicle by its ID.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id string, vehicle models.Vehicle) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}
	vehicle.ID = objectID
	vehicle.UpdatedAt = time.Now()
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, vehicle)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}

// DeleteVehicle deletes a vehicle by its ID.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("vehicle not found")
	}
	return nil
}

// MongoTechnicianCollection implements TechnicianCollection for MongoDB.
type MongoTechnicianCollection struct {
	Collection *mongo.Collection
}

// InsertTechnician inserts a technician record.
func (c *MongoTechnicianCollection) InsertTechnician(ctx context.Context, technician models.Technician) error {
	technician.CreatedAt = time.Now()
	technician.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, technician)
	return err
}

// FindTechnicianByID finds a technician by their ID.
func (c *MongoTechnicianCollection) FindTechnicianByID(ctx context.Context, id string) (*models.Technician, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var technician models.Technician
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&technician)
	if err != nil {
		return nil, err
	}
	return &technician, nil
}

// FindTechnicians queries technician records from the collection.
func (c *MongoTechnicianCollection) FindTechnicians(ctx context.Context, filter bson.M) ([]models.Technician, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var technicians []models.Technician
	if err := cursor.All(ctx, &technicians); err != nil {
		return nil, err
	}
	return technicians, nil
}

// UpdateTechnician replaces a technician by their ID.
func (c *MongoTechnicianCollection) UpdateTechnician(ctx context.Context, id string, technician models.Technician) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	technician.ID = objectID
	technician.UpdatedAt = time.Now()
	_, err = c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, technician)
	return err
}

// DeleteTechnician deletes a technician by their ID.
func (c *MongoTechnicianCollection) DeleteTechnician(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}

// MongoCustomerCollection implements CustomerCollection for MongoDB.
type MongoCustomerCollection struct {
	Collection *mongo.Collection
}

// InsertCustomer inserts a customer record.
func (c *MongoCustomerCollection) InsertCustomer(ctx context.Context, customer models.Customer) error {
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, customer)
	return err
}

// FindCustomerByID finds a customer by their ID.
func (c *MongoCustomerCollection) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var customer models.Customer
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindCustomers queries customer records from the collection.
func (c *MongoCustomerCollection) FindCustomers(ctx context.Context, filter bson.M) ([]models.Customer, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// UpdateCustomer replaces a customer by their ID.
func (c *MongoCustomerCollection) UpdateCustomer(ctx context.Context, id string, customer models.Customer) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	customer.ID = objectID
	customer.UpdatedAt = time.Now()
	_, err = c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, customer)
	return err
}

// DeleteCustomer deletes a customer by their ID.
func (c *MongoCustomerCollection) DeleteCustomer(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
