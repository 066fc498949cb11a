package testutil

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeededUsers describes the fixture written by SeedUsers.
type SeededUsers struct {
	// SamID is the only seeded id known in advance.
	SamID primitive.ObjectID
	Count int
}

// SeedUsers drops coll and inserts four users: Chris (25, UMM, admin),
// Pat (37, IBM, editor), Jamie (37, OHMNET, viewer) and Sam (45, OHMNET, viewer).
func SeedUsers(ctx context.Context, coll *mongo.Collection) (SeededUsers, error) {
	if err := coll.Drop(ctx); err != nil {
		return SeededUsers{}, fmt.Errorf("drop users: %w", err)
	}

	docs := []interface{}{
		bson.D{
			{Key: "name", Value: "Chris"},
			{Key: "age", Value: 25},
			{Key: "company", Value: "UMM"},
			{Key: "email", Value: "chris@this.that"},
			{Key: "role", Value: "admin"},
			{Key: "avatar", Value: "https://gravatar.com/avatar/8c9616d6cc5de638ea6920fb5d65fc6c?d=identicon"},
		},
		bson.D{
			{Key: "name", Value: "Pat"},
			{Key: "age", Value: 37},
			{Key: "company", Value: "IBM"},
			{Key: "email", Value: "pat@something.com"},
			{Key: "role", Value: "editor"},
			{Key: "avatar", Value: "https://gravatar.com/avatar/b42a11826c3bde672bce7e06ad729d44?d=identicon"},
		},
		bson.D{
			{Key: "name", Value: "Jamie"},
			{Key: "age", Value: 37},
			{Key: "company", Value: "OHMNET"},
			{Key: "email", Value: "jamie@frogs.com"},
			{Key: "role", Value: "viewer"},
			{Key: "avatar", Value: "https://gravatar.com/avatar/d4a6c71dd9470ad4cf58f78c100258bf?d=identicon"},
		},
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return SeededUsers{}, fmt.Errorf("insert users: %w", err)
	}

	samID := primitive.NewObjectID()
	sam := bson.D{
		{Key: "_id", Value: samID},
		{Key: "name", Value: "Sam"},
		{Key: "age", Value: 45},
		{Key: "company", Value: "OHMNET"},
		{Key: "email", Value: "sam@frogs.com"},
		{Key: "role", Value: "viewer"},
		{Key: "avatar", Value: "https://gravatar.com/avatar/08b7610b558a4cbbd20ae99072801f4d?d=identicon"},
	}
	if _, err := coll.InsertOne(ctx, sam); err != nil {
		return SeededUsers{}, fmt.Errorf("insert sam: %w", err)
	}

	return SeededUsers{SamID: samID, Count: len(docs) + 1}, nil
}
