package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/runjamaica/auth-api/internal/core/domain"
)

const userCollection = "users"

// UserRepository persists user records in MongoDB. Email uniqueness is
// enforced by a unique index, not an application-level pre-check, so two
// racing signups for the same address resolve in the database: exactly one
// insert succeeds.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	EmailAddress string             `bson:"email_address"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	Salt         string             `bson:"salt"`
	CreatedAt    int64              `bson:"created_at"`
}

// EnsureIndexes creates the unique index on email_address. Call once at
// startup before serving requests.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_address", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		EmailAddress: user.EmailAddress,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		PasswordHash: user.PasswordHash,
		Salt:         user.Salt,
		CreatedAt:    user.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: insert user: %v", domain.ErrStorageUnavailable, err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email_address": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Absence is a normal outcome, not a failure.
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStorageUnavailable, err)
	}

	return &domain.User{
		ID:           mu.ID.Hex(),
		EmailAddress: mu.EmailAddress,
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		PasswordHash: mu.PasswordHash,
		Salt:         mu.Salt,
		CreatedAt:    unixToTime(mu.CreatedAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
