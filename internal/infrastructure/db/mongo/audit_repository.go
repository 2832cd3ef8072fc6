package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

const authEventsCollection = "auth_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(authEventsCollection), now: time.Now}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

// EnsureIndexes creates the lookup index on email and timestamp.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("email_timestamp"),
	})
	if err != nil {
		return fmt.Errorf("auth_events index: %w", err)
	}
	return nil
}

// InsertAuthEvent persists an authentication event to the auth_events audit collection.
func (r *AuditRepository) InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error {
	if _, err := r.coll.InsertOne(ctx, authEventDocument(event, r.now())); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func authEventDocument(event *domain.AuthEvent, processedAt time.Time) bson.M {
	doc := bson.M{
		"email":        event.Email,
		"outcome":      string(event.Outcome),
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": processedAt.UTC(),
	}
	if event.UserID != 0 {
		doc["user_id"] = int64(event.UserID)
	}
	return doc
}
