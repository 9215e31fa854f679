package mongostore

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/theoremus-urban-solutions/fleet-gps-analytics/fleet"
)

const (
	routesCollection    = "routes"
	vehiclesCollection  = "vehicles"
	positionsCollection = "positions"
)

// Connect dials MongoDB using the MONGO_URI environment variable and
// verifies the connection with a ping.
func Connect(ctx context.Context) (*mongo.Client, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store implements fleet.Store on top of a MongoDB database.
type Store struct {
	routes    *mongo.Collection
	vehicles  *mongo.Collection
	positions *mongo.Collection
}

// New wraps the named database of an already-connected client.
func New(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		routes:    db.Collection(routesCollection),
		vehicles:  db.Collection(vehiclesCollection),
		positions: db.Collection(positionsCollection),
	}
}

func (s *Store) RouteByID(ctx context.Context, id string) (*fleet.Route, error) {
	var route fleet.Route
	err := s.routes.FindOne(ctx, bson.M{"_id": id}).Decode(&route)
	if err == mongo.ErrNoDocuments {
		return nil, fleet.ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (s *Store) RoutesByFleet(ctx context.Context, fleetID string, q fleet.RouteQuery) ([]*fleet.Route, error) {
	filter := bson.M{"fleet_id": fleetID}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.DateFrom != nil {
		filter["route_date"] = bson.M{"$gte": *q.DateFrom}
	}

	cursor, err := s.routes.Find(ctx, filter, options.Find().SetSort(bson.M{"route_date": 1}))
	if err != nil {
		return nil, err
	}
	var routes []*fleet.Route
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

func (s *Store) VehicleByID(ctx context.Context, id string) (*fleet.Vehicle, error) {
	var vehicle fleet.Vehicle
	err := s.vehicles.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err == mongo.ErrNoDocuments {
		return nil, fleet.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (s *Store) VehiclesByFleet(ctx context.Context, fleetID string) ([]*fleet.Vehicle, error) {
	cursor, err := s.vehicles.Find(ctx, bson.M{"fleet_id": fleetID})
	if err != nil {
		return nil, err
	}
	var vehicles []*fleet.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *Store) InProgressRoute(ctx context.Context, vehicleID string) (*fleet.Route, error) {
	var route fleet.Route
	err := s.routes.FindOne(ctx, bson.M{
		"vehicle_id": vehicleID,
		"status":     fleet.RouteInProgress,
	}).Decode(&route)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &route, nil
}

func (s *Store) Positions(ctx context.Context, vehicleID string, from, to time.Time) ([]fleet.PositionSample, error) {
	filter := bson.M{
		"vehicle_id":  vehicleID,
		"recorded_at": bson.M{"$gte": from, "$lte": to},
	}
	cursor, err := s.positions.Find(ctx, filter, options.Find().SetSort(bson.M{"recorded_at": 1}))
	if err != nil {
		return nil, err
	}
	var samples []fleet.PositionSample
	if err := cursor.All(ctx, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// SaveRoute upserts a route document.
func (s *Store) SaveRoute(ctx context.Context, route fleet.Route) error {
	_, err := s.routes.UpdateOne(ctx,
		bson.M{"_id": route.ID},
		bson.M{"$set": route},
		options.Update().SetUpsert(true))
	return err
}

// SaveVehicle upserts a vehicle document.
func (s *Store) SaveVehicle(ctx context.Context, vehicle fleet.Vehicle) error {
	_, err := s.vehicles.UpdateOne(ctx,
		bson.M{"_id": vehicle.ID},
		bson.M{"$set": vehicle},
		options.Update().SetUpsert(true))
	return err
}

// RecordPositions appends position samples.
func (s *Store) RecordPositions(ctx context.Context, samples []fleet.PositionSample) error {
	if len(samples) == 0 {
		return nil
	}
	docs := make([]interface{}, len(samples))
	for i, sample := range samples {
		docs[i] = sample
	}
	_, err := s.positions.InsertMany(ctx, docs)
	return err
}
