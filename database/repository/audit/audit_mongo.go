package auditRepo

import (
	"context"
	"fmt"
	"time"

	"dpiportal/database"
	"dpiportal/models"
	"dpiportal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo returns an AuditRepository over the admin_audit collection.
func NewMongoAuditRepo() AuditRepository {
	repo := &mongoAuditRepo{coll: database.Database().Collection("admin_audit")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("audit: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoAuditRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "target_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts an audit entry.
func (r *mongoAuditRepo) Create(ctx context.Context, entry models.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// ListRecent returns the newest entries first.
func (r *mongoAuditRepo) ListRecent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{}, opts)
}

// ListByTarget returns every entry about one account, newest first.
func (r *mongoAuditRepo) ListByTarget(ctx context.Context, targetID int) ([]models.AuditEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"target_id": targetID}, opts)
}

func (r *mongoAuditRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.AuditEntry, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.AuditEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	return entries, nil
}
