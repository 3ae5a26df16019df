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

const companiesCollection = "companies"

type MongoCompanyRepository struct {
	col *mongo.Collection
}

func NewCompanyRepository(db *database.MongoDB) *MongoCompanyRepository {
	return &MongoCompanyRepository{col: db.Database.Collection(companiesCollection)}
}

func (r *MongoCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	if _, err := r.col.InsertOne(ctx, company); err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}
	return nil
}

func (r *MongoCompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	var company domain.Company
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return &company, nil
}

func (r *MongoCompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer cursor.Close(ctx)

	companies := []domain.Company{}
	if err := cursor.All(ctx, &companies); err != nil {
		return nil, fmt.Errorf("failed to decode companies: %w", err)
	}
	return companies, nil
}

func (r *MongoCompanyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *MongoCompanyRepository) Count(ctx context.Context) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return int(n), nil
}
