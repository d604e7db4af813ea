package structs

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	SourceBase         = "base"
	SourceUserOverride = "user_override"

	ReasonManual         = "manual"
	ReasonLocateRejected = "locate_rejected"
	ReasonReconciliation = "reconciliation"
)

type SymbolMultiplier struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FollowerID string             `bson:"follower_id"`
	Symbol     string             `bson:"symbol"`
	Multiplier float64            `bson:"multiplier"`
	Source     string             `bson:"source"`
}

type BlacklistEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FollowerID string             `bson:"follower_id"`
	Symbol     string             `bson:"symbol"`
	Reason     string             `bson:"reason"`
}
