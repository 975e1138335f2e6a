package adapter

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAdapter implements Adapter on top of a Mongo database. Each model
// name maps to a collection of the same name.
type MongoAdapter struct {
	db *mongo.Database
}

// NewMongoAdapter wraps the given database.
func NewMongoAdapter(db *mongo.Database) *MongoAdapter {
	return &MongoAdapter{db: db}
}

const queryTimeout = 5 * time.Second

func buildFilter(where []Where) bson.M {
	filter := bson.M{}
	for _, w := range where {
		if w.In != nil {
			filter[w.Field] = bson.M{"$in": w.In}
		} else {
			filter[w.Field] = w.Value
		}
	}
	return filter
}

func (a *MongoAdapter) Create(ctx context.Context, model string, doc any) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := a.db.Collection(model).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("error creating %s document: %w", model, err)
	}
	return nil
}

func (a *MongoAdapter) FindOne(ctx context.Context, model string, where []Where, out any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := a.db.Collection(model).FindOne(ctx, buildFilter(where)).Decode(out)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error finding %s document: %w", model, err)
	}
	return true, nil
}

func (a *MongoAdapter) FindMany(ctx context.Context, model string, where []Where, out any) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := a.db.Collection(model).Find(ctx, buildFilter(where))
	if err != nil {
		return fmt.Errorf("error querying %s documents: %w", model, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("error decoding %s documents: %w", model, err)
	}
	return nil
}

func (a *MongoAdapter) Update(ctx context.Context, model string, where []Where, patch map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{}
	for k, v := range patch {
		set[k] = v
	}
	res, err := a.db.Collection(model).UpdateOne(ctx, buildFilter(where), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating %s document: %w", model, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (a *MongoAdapter) Delete(ctx context.Context, model string, where []Where) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := a.db.Collection(model).DeleteMany(ctx, buildFilter(where)); err != nil {
		return fmt.Errorf("error deleting %s documents: %w", model, err)
	}
	return nil
}
