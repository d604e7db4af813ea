package mongo

import (
	"context"

	"dascopy/internal/repository/mongo/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MultiplierRepository struct {
	conn       *mongo.Client
	collection *mongo.Collection
}

func NewMultiplierRepository(conn *mongo.Client) *MultiplierRepository {
	collection := conn.Database("settings").Collection("multipliers")

	return &MultiplierRepository{conn: conn, collection: collection}
}

func (r *MultiplierRepository) LoadAll() ([]structs.SymbolMultiplier, error) {
	cursor, err := r.collection.Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, err
	}

	var out []structs.SymbolMultiplier
	if err := cursor.All(context.TODO(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *MultiplierRepository) Upsert(followerID, symbol string, multiplier float64, source string) error {
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(
		context.TODO(),
		bson.D{{Key: "follower_id", Value: followerID}, {Key: "symbol", Value: symbol}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "multiplier", Value: multiplier}, {Key: "source", Value: source}}}},
		opts,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *MultiplierRepository) Delete(followerID, symbol string) error {
	_, err := r.collection.DeleteOne(
		context.TODO(),
		bson.D{{Key: "follower_id", Value: followerID}, {Key: "symbol", Value: symbol}},
	)
	if err != nil {
		return err
	}

	return nil
}
