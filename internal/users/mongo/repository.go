// Package mongo provides MongoDB implementation of the users repository.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/user-registry/internal/domain"
	"github.com/bissquit/user-registry/internal/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the collection holding user documents.
const CollectionName = "users"

// Repository implements the users.Repository interface using MongoDB.
type Repository struct {
	coll *mongodriver.Collection
}

// NewRepository creates a new MongoDB repository on db's users collection.
func NewRepository(db *mongodriver.Database) *Repository {
	return &Repository{coll: db.Collection(CollectionName)}
}

type userDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Age     int                `bson:"age"`
	Company string             `bson:"company"`
	Email   string             `bson:"email"`
	Role    string             `bson:"role"`
	Avatar  string             `bson:"avatar"`
}

func (d *userDocument) toDomain() domain.User {
	return domain.User{
		ID:      d.ID.Hex(),
		Name:    d.Name,
		Age:     d.Age,
		Company: d.Company,
		Email:   d.Email,
		Role:    domain.Role(d.Role),
		Avatar:  d.Avatar,
	}
}

// ParseID accepts 24-character hex ObjectIDs and returns them in lowercase form.
// It satisfies users.IDParser.
func ParseID(raw string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", users.ErrInvalidID, raw)
	}
	return oid.Hex(), nil
}

// ListUsers returns users matching filter in collection order.
func (r *Repository) ListUsers(ctx context.Context, filter users.Filter) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, buildFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	result := make([]domain.User, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		result = append(result, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return result, nil
}

// GetUserByID retrieves a user by its hex ObjectID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, users.ErrInvalidID
	}

	var doc userDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, users.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	user := doc.toDomain()
	return &user, nil
}

// CreateUser inserts user and sets user.ID to the assigned ObjectID.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	doc := userDocument{
		Name:    user.Name,
		Age:     user.Age,
		Company: user.Company,
		Email:   user.Email,
		Role:    string(user.Role),
		Avatar:  user.Avatar,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	user.ID = oid.Hex()

	return nil
}

// DeleteUser removes the user with the given hex ObjectID.
func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return users.ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return users.ErrUserNotFound
	}

	return nil
}

// CountUsers returns the number of users matching filter.
func (r *Repository) CountUsers(ctx context.Context, filter users.Filter) (int64, error) {
	if filter.IsEmpty() {
		count, err := r.coll.EstimatedDocumentCount(ctx)
		if err != nil {
			return 0, fmt.Errorf("estimate user count: %w", err)
		}
		return count, nil
	}

	count, err := r.coll.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// buildFilter renders filter as an equality conjunction.
// An empty filter yields an empty document, which matches everything.
func buildFilter(filter users.Filter) bson.D {
	conditions := bson.D{}

	if filter.Age != nil {
		conditions = append(conditions, bson.E{Key: "age", Value: *filter.Age})
	}
	if filter.Company != nil {
		conditions = append(conditions, bson.E{Key: "company", Value: *filter.Company})
	}
	if filter.Role != nil {
		conditions = append(conditions, bson.E{Key: "role", Value: string(*filter.Role)})
	}

	return conditions
}
