package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vote-be/internal/domain"
	"vote-be/pkg/database"
)

const (
	sessionsCollection = "voting_sessions"
	settingsCollection = "settings"
	activeMarkerID     = "active_session"
)

// activeMarker is the single document naming the active session. Switching
// sessions is one document update, so there is never a dual-active window.
type activeMarker struct {
	ID        string `bson:"_id"`
	SessionID string `bson:"session_id"`
}

type MongoSessionRepository struct {
	col      *mongo.Collection
	settings *mongo.Collection
}

func NewSessionRepository(db *database.MongoDB) *MongoSessionRepository {
	return &MongoSessionRepository{
		col:      db.Database.Collection(sessionsCollection),
		settings: db.Database.Collection(settingsCollection),
	}
}

func (r *MongoSessionRepository) Create(ctx context.Context, session *domain.VotingSession) error {
	if _, err := r.col.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert voting session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) GetByID(ctx context.Context, id string) (*domain.VotingSession, error) {
	var session domain.VotingSession
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get voting session: %w", err)
	}
	return &session, nil
}

func (r *MongoSessionRepository) List(ctx context.Context) ([]domain.VotingSession, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list voting sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []domain.VotingSession{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode voting sessions: %w", err)
	}
	return sessions, nil
}

// GetActive resolves the marker to a session. Returns nil when no session is
// active or the marker points at a deleted session.
func (r *MongoSessionRepository) GetActive(ctx context.Context) (*domain.VotingSession, error) {
	var marker activeMarker
	err := r.settings.FindOne(ctx, bson.M{"_id": activeMarkerID}).Decode(&marker)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read active session marker: %w", err)
	}
	if marker.SessionID == "" {
		return nil, nil
	}

	session, err := r.GetByID(ctx, marker.SessionID)
	if err != nil || session == nil {
		return session, err
	}
	session.IsActive = true
	return session, nil
}

// Activate points the marker at the given session. The is_active flags on
// the session documents are maintained best-effort for listings; the marker
// is the source of truth.
func (r *MongoSessionRepository) Activate(ctx context.Context, id string) error {
	_, err := r.settings.UpdateOne(ctx,
		bson.M{"_id": activeMarkerID},
		bson.M{"$set": bson.M{"session_id": id}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to set active session marker: %w", err)
	}

	if _, err := r.col.UpdateMany(ctx, bson.M{"_id": bson.M{"$ne": id}}, bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		return fmt.Errorf("failed to clear active flags: %w", err)
	}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_active": true}}); err != nil {
		return fmt.Errorf("failed to set active flag: %w", err)
	}
	return nil
}

// Deactivate clears the marker, but only while it still points at the given
// session, so a concurrent activation of another session is not undone.
func (r *MongoSessionRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.settings.UpdateOne(ctx,
		bson.M{"_id": activeMarkerID, "session_id": id},
		bson.M{"$set": bson.M{"session_id": ""}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear active session marker: %w", err)
	}

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_active": false}}); err != nil {
		return fmt.Errorf("failed to clear active flag: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) Count(ctx context.Context) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count voting sessions: %w", err)
	}
	return int(n), nil
}
