// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Spec is one desired index. None are unique: duplicate registrations are
// legitimate and profile collections were never deduplicated either.
type Spec struct {
	Collection string
	Name       string
	Keys       bson.D
}

// Specs lists the indexes the listing and export queries rely on.
func Specs() []Spec {
	return []Spec{
		{"events", "idx_events_department", bson.D{{Key: "department", Value: 1}}},
		{"events", "idx_events_dept_id", bson.D{{Key: "dept_id", Value: 1}}},
		{"registrations", "idx_registrations_event_id", bson.D{{Key: "event_id", Value: 1}}},
		{"participants", "idx_participants_email", bson.D{{Key: "email", Value: 1}}},
		{"participants", "idx_participants_department_event", bson.D{{Key: "department", Value: 1}, {Key: "event", Value: 1}}},
		{"participants", "idx_participants_dept_name_event_name", bson.D{{Key: "dept_name", Value: 1}, {Key: "event_name", Value: 1}}},
		{"users", "idx_users_email", bson.D{{Key: "email", Value: 1}}},
	}
}

/*
EnsureAll is called at startup. It only creates missing indexes; an index that
already exists on the same keys is reused whatever its name. Problems are
collected so every failing collection is reported at once.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string
	for _, s := range Specs() {
		if err := ensure(ctx, db.Collection(s.Collection), s, logger); err != nil {
			problems = append(problems, fmt.Sprintf("%s(%s): %v", s.Collection, s.Name, err))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type existingIndex struct {
	Name string `bson:"name"`
	Key  bson.D `bson:"key"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func ensure(ctx context.Context, coll *mongo.Collection, s Spec, logger *zap.Logger) error {
	start := time.Now()
	sig := keySig(s.Keys)

	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return err
	}
	var existing []existingIndex
	if err := cur.All(ctx, &existing); err != nil {
		return err
	}
	for _, ex := range existing {
		if keySig(ex.Key) == sig {
			logger.Debug("reusing existing index",
				zap.String("collection", coll.Name()),
				zap.String("name", ex.Name),
				zap.String("keys", sig))
			return nil
		}
	}

	name, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    s.Keys,
		Options: options.Index().SetName(s.Name),
	})
	if err != nil {
		return err
	}
	logger.Info("index ensured",
		zap.String("collection", coll.Name()),
		zap.String("name", name),
		zap.String("keys", sig),
		zap.Duration("took", time.Since(start)))
	return nil
}
