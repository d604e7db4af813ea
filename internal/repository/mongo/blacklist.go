package mongo

import (
	"context"

	"dascopy/internal/repository/mongo/structs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type BlacklistRepository struct {
	conn       *mongo.Client
	collection *mongo.Collection
}

func NewBlacklistRepository(conn *mongo.Client) *BlacklistRepository {
	collection := conn.Database("settings").Collection("blacklist")

	return &BlacklistRepository{conn: conn, collection: collection}
}

func (r *BlacklistRepository) LoadAll() ([]structs.BlacklistEntry, error) {
	cursor, err := r.collection.Find(context.TODO(), bson.D{})
	if err != nil {
		return nil, err
	}

	var out []structs.BlacklistEntry
	if err := cursor.All(context.TODO(), &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *BlacklistRepository) Insert(followerID, symbol, reason string) error {
	_, err := r.collection.InsertOne(context.TODO(), structs.BlacklistEntry{
		FollowerID: followerID,
		Symbol:     symbol,
		Reason:     reason,
	})
	if err != nil {
		return err
	}

	return nil
}

func (r *BlacklistRepository) Delete(followerID, symbol string) error {
	_, err := r.collection.DeleteOne(
		context.TODO(),
		bson.D{{Key: "follower_id", Value: followerID}, {Key: "symbol", Value: symbol}},
	)
	if err != nil {
		return err
	}

	return nil
}
