package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   *DatabaseConfig
}

type DatabaseConfig struct {
	URI            string
	Database       string
	MaxPoolSize    int
	MinPoolSize    int
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

func NewMongoDB(config *DatabaseConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.URI).
		SetMaxPoolSize(uint64(config.MaxPoolSize)).
		SetMinPoolSize(uint64(config.MinPoolSize)).
		SetSocketTimeout(config.SocketTimeout).
		SetConnectTimeout(config.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	database := client.Database(config.Database)

	return &MongoDB{
		Client:   client,
		Database: database,
		Config:   config,
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

func (m *MongoDB) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes the repositories rely on. Safe to call on
// every startup.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	users := []mongo.IndexModel{
		{Keys: map[string]interface{}{"email": 1}, Options: options.Index().SetUnique(true)},
		{Keys: map[string]interface{}{"role": 1}},
	}
	if _, err := m.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return err
	}

	bookings := []mongo.IndexModel{
		{Keys: map[string]interface{}{"customer_id": 1}},
		{Keys: map[string]interface{}{"driver_id": 1}},
		{Keys: map[string]interface{}{"status": 1}},
		{Keys: map[string]interface{}{"booking_number": 1}, Options: options.Index().SetUnique(true)},
	}
	if _, err := m.Collection("bookings").Indexes().CreateMany(ctx, bookings); err != nil {
		return err
	}

	payments := []mongo.IndexModel{
		{Keys: map[string]interface{}{"booking_id": 1}},
		{Keys: map[string]interface{}{"customer_id": 1}},
	}
	if _, err := m.Collection("payments").Indexes().CreateMany(ctx, payments); err != nil {
		return err
	}

	notifications := []mongo.IndexModel{
		{Keys: map[string]interface{}{"user_id": 1, "created_at": -1}},
	}
	_, err := m.Collection("notifications").Indexes().CreateMany(ctx, notifications)
	return err
}
