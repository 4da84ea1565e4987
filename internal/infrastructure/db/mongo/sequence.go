package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// Sequence allocates monotonically increasing numeric ids per entity name,
// backed by an atomic findOneAndUpdate on the counters collection. Concurrent
// callers never receive the same value.
type Sequence struct {
	coll *mongo.Collection
}

func NewSequence(db *mongo.Database) *Sequence {
	return &Sequence{coll: db.Collection(countersCollection)}
}

// Next returns the next id for the named entity, starting at 1.
func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return doc.Seq, nil
}
