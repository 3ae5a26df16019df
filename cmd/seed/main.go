package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vote-be/internal/domain"
	"vote-be/pkg/database"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "eventvote"
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/seed [indexes|seed|drop]")
		os.Exit(1)
	}
	command := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewMongoDB(ctx, uri, dbName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	switch command {
	case "indexes":
		if err := createIndexes(ctx, db.Database); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		fmt.Println("✅ Indexes created successfully")

	case "seed":
		if err := seedData(ctx, db.Database); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	case "drop":
		if err := dropCollections(ctx, db.Database); err != nil {
			log.Fatalf("Failed to drop collections: %v", err)
		}
		fmt.Println("✅ Collections dropped successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

// createIndexes backs the hot queries: throttle lookups and per-session
// result listings.
func createIndexes(ctx context.Context, db *mongo.Database) error {
	voteIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "voting_session_id", Value: 1},
				{Key: "device_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("session_device_ts"),
		},
		{
			Keys: bson.D{
				{Key: "voting_session_id", Value: 1},
				{Key: "company_id", Value: 1},
			},
			Options: options.Index().SetName("session_company"),
		},
	}
	if _, err := db.Collection("votes").Indexes().CreateMany(ctx, voteIndexes); err != nil {
		return fmt.Errorf("votes indexes: %w", err)
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	}
	if _, err := db.Collection("voting_sessions").Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("voting_sessions indexes: %w", err)
	}

	return nil
}

func seedData(ctx context.Context, db *mongo.Database) error {
	now := time.Now().UTC()

	companies := []interface{}{
		domain.Company{ID: uuid.NewString(), Name: "Acme Corp", CreatedAt: now},
		domain.Company{ID: uuid.NewString(), Name: "Globex", CreatedAt: now},
	}
	if _, err := db.Collection("companies").InsertMany(ctx, companies); err != nil {
		return fmt.Errorf("companies: %w", err)
	}

	session := domain.VotingSession{
		ID:    uuid.NewString(),
		Title: "Year-end party",
		Sections: []domain.Section{
			{
				ID:       "host",
				Label:    "Who should host?",
				Type:     domain.SectionSingleSelect,
				Required: true,
				Options:  []domain.Option{{Name: "Alice"}, {Name: "Bob"}},
			},
			{
				ID:            "songs",
				Label:         "Pick up to two songs",
				Type:          domain.SectionMultiSelect,
				Required:      true,
				Options:       []domain.Option{{Name: "Song X"}, {Name: "Song Y"}, {Name: "Song Z"}},
				MinSelections: 1,
				MaxSelections: 2,
			},
			{
				ID:    "comment",
				Label: "Anything else?",
				Type:  domain.SectionTextInput,
			},
		},
		IsActive:  true,
		CreatedAt: now,
	}
	if _, err := db.Collection("voting_sessions").InsertOne(ctx, session); err != nil {
		return fmt.Errorf("voting_sessions: %w", err)
	}

	marker := bson.M{"_id": "active_session", "session_id": session.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := db.Collection("settings").ReplaceOne(ctx, bson.M{"_id": "active_session"}, marker, opts); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	fmt.Printf("Seeded session %s with %d companies\n", session.ID, len(companies))
	return nil
}

func dropCollections(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{"votes", "voting_sessions", "companies", "settings"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return nil
}
