package docstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a Store backed by a MongoDB database. Document IDs are strings held
// in _id; documents imported with ObjectIDs are still addressable by their hex
// form.
type Mongo struct {
	db *mongo.Database
}

// NewMongo wraps db.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// Get implements Store.
func (s *Mongo) Get(ctx context.Context, collection, id string) (Doc, error) {
	c := s.db.Collection(collection)
	for _, key := range idKeys(id) {
		var raw bson.M
		err := c.FindOne(ctx, bson.M{"_id": key}).Decode(&raw)
		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			return Doc{}, err
		}
		return docFromBSON(raw), nil
	}
	return Doc{}, ErrNotFound
}

// Stream implements Store.
func (s *Mongo) Stream(ctx context.Context, collection string) ([]Doc, error) {
	return s.Find(ctx, Query{Collection: collection})
}

// Find implements Store.
func (s *Mongo) Find(ctx context.Context, q Query) ([]Doc, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cur, err := s.db.Collection(q.Collection).Find(ctx, filterToBSON(q.Filters), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, err
	}
	docs := make([]Doc, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, docFromBSON(raw))
	}
	return docs, nil
}

// Create implements Store. Like a document set, an existing id is replaced.
func (s *Mongo) Create(ctx context.Context, collection, id string, fields map[string]any) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	doc["_id"] = id
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update implements Store.
func (s *Mongo) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	c := s.db.Collection(collection)
	for _, key := range idKeys(id) {
		res, err := c.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$set": bson.M(fields)})
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}
	}
	return ErrNotFound
}

// idKeys lists the _id values id may be stored under: the string itself, then
// the ObjectID it encodes when it is a valid hex ObjectID.
func idKeys(id string) []any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return []any{id, oid}
	}
	return []any{id}
}

// Count implements Store.
func (s *Mongo) Count(ctx context.Context, collection string) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx, bson.M{})
}

func filterToBSON(filters []Filter) bson.M {
	if len(filters) == 0 {
		return bson.M{}
	}
	conds := make(bson.A, 0, len(filters))
	for _, f := range filters {
		switch f.Op {
		case OpEq:
			conds = append(conds, bson.M{f.Field: f.Value})
		case OpIn:
			conds = append(conds, bson.M{f.Field: bson.M{"$in": f.Value}})
		}
	}
	if len(conds) == 1 {
		return conds[0].(bson.M)
	}
	return bson.M{"$and": conds}
}

func docFromBSON(raw bson.M) Doc {
	fields := fromBSON(raw).(map[string]any)
	id := idText(fields["_id"])
	delete(fields, "_id")
	return Doc{ID: id, Fields: fields}
}

func idText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return Text(v)
}

// fromBSON converts driver types into the plain Go values Doc promises.
func fromBSON(v any) any {
	switch t := v.(type) {
	case primitive.M:
		return convertMap(t)
	case map[string]any:
		return convertMap(t)
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = fromBSON(e.Value)
		}
		return m
	case primitive.A:
		return convertSlice(t)
	case []any:
		return convertSlice(t)
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return primitive.DateTime(int64(t.T) * 1000).Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	case int32:
		return int64(t)
	}
	return v
}

func convertMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = fromBSON(v)
	}
	return out
}

func convertSlice(in []any) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = fromBSON(v)
	}
	return out
}
