package daemon

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuditLog is the AuditLog backed by a MongoDB collection: one
// document per completed run, independent of the result cache.
type MongoAuditLog struct {
	collection *mongo.Collection
}

// NewMongoAuditLog connects to uri and returns a MongoAuditLog writing
// into database.collection.
func NewMongoAuditLog(ctx context.Context, uri, database, collection string) (*MongoAuditLog, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &MongoAuditLog{collection: client.Database(database).Collection(collection)}, nil
}

// Record inserts rec as one audit document.
func (m *MongoAuditLog) Record(ctx context.Context, rec RunRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := m.collection.InsertOne(ctx, rec)
	return err
}
