package db

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

var RDB *redis.Client
var Client *mongo.Client

// InitDB connects to MongoDB and verifies the connection with a ping.
// Nested documents decode as maps so opaque metadata round-trips as JSON.
func InitDB(ctx context.Context, uri string) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(
		ctx,
		options.Client().
			ApplyURI(uri).
			SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}),
	)
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	Client = client
	return nil
}

func GetCollection(database string, collectionName string, client *mongo.Client) *mongo.Collection {
	return client.Database(database).Collection(collectionName)
}

// InitCache connects to redis. The cache is optional; callers skip it when
// no address is configured.
func InitCache(ctx context.Context, addr, password string, database int) error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := RDB.Ping(ctx).Err(); err != nil {
		_ = RDB.Close()
		RDB = nil
		return err
	}

	return nil
}

// Close releases every open connection.
func Close(ctx context.Context) {
	if RDB != nil {
		_ = RDB.Close()
		RDB = nil
	}
	if Client != nil {
		_ = Client.Disconnect(ctx)
		Client = nil
	}
}
