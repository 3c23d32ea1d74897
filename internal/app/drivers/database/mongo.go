package database

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	connectionString := driverConfig.MongoDB.URI
	if connectionString == "" {
		connectionString = buildMongoConnectionString(driverConfig.MongoDB)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	dbOptions := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(ctx, dbOptions)
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client
}

func buildMongoConnectionString(mongoConfig config.MongoDB) string {
	if mongoConfig.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", mongoConfig.Host, mongoConfig.Port)
	}
	return fmt.Sprintf(
		"mongodb://%s:%s@%s:%s",
		mongoConfig.Username,
		mongoConfig.Password,
		mongoConfig.Host,
		mongoConfig.Port,
	)
}
