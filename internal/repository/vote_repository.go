package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vote-be/internal/domain"
	"vote-be/pkg/database"
)

const votesCollection = "votes"

type MongoVoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository(db *database.MongoDB) *MongoVoteRepository {
	return &MongoVoteRepository{col: db.Database.Collection(votesCollection)}
}

func (r *MongoVoteRepository) Insert(ctx context.Context, vote *domain.Vote) error {
	if _, err := r.col.InsertOne(ctx, vote); err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

// LatestByDevice returns the most recent vote by the device for the session
// with timestamp at or after since, or nil when none exists.
func (r *MongoVoteRepository) LatestByDevice(ctx context.Context, sessionID, deviceID string, since time.Time) (*domain.Vote, error) {
	filter := bson.M{
		"voting_session_id": sessionID,
		"device_id":         deviceID,
		"timestamp":         bson.M{"$gte": since},
	}

	var vote domain.Vote
	err := r.col.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})).Decode(&vote)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest device vote: %w", err)
	}
	return &vote, nil
}

func (r *MongoVoteRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Vote, error) {
	return r.list(ctx, bson.M{"voting_session_id": sessionID})
}

func (r *MongoVoteRepository) ListBySessionAndCompany(ctx context.Context, sessionID, companyID string) ([]domain.Vote, error) {
	return r.list(ctx, bson.M{"voting_session_id": sessionID, "company_id": companyID})
}

func (r *MongoVoteRepository) list(ctx context.Context, filter bson.M) ([]domain.Vote, error) {
	// Timestamp order keeps text responses in submission order.
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer cursor.Close(ctx)

	votes := []domain.Vote{}
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, fmt.Errorf("failed to decode votes: %w", err)
	}
	return votes, nil
}

func (r *MongoVoteRepository) CountBySession(ctx context.Context, sessionID string) (int, error) {
	return r.count(ctx, bson.M{"voting_session_id": sessionID})
}

func (r *MongoVoteRepository) CountBySessionAndCompany(ctx context.Context, sessionID, companyID string) (int, error) {
	return r.count(ctx, bson.M{"voting_session_id": sessionID, "company_id": companyID})
}

func (r *MongoVoteRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, bson.M{})
}

func (r *MongoVoteRepository) count(ctx context.Context, filter bson.M) (int, error) {
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return int(n), nil
}

func (r *MongoVoteRepository) DeleteBySession(ctx context.Context, sessionID string) (int, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"voting_session_id": sessionID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete session votes: %w", err)
	}
	return int(res.DeletedCount), nil
}

func (r *MongoVoteRepository) DeleteByCompany(ctx context.Context, companyID string) (int, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"company_id": companyID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete company votes: %w", err)
	}
	return int(res.DeletedCount), nil
}
