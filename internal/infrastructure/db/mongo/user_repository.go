package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/pkg/crypto"
)

const userCollection = "users"

// MongoUserRepository stores users with their identity fields encrypted at
// rest. Every encrypted field that must support exact-match lookup gets a
// companion _key column holding its deterministic digest; the random-nonce
// ciphertext itself is useless as a query filter.
type MongoUserRepository struct {
	coll   *mongo.Collection
	cipher *crypto.FieldCipher
}

func NewUserRepository(db *mongo.Database, cipher *crypto.FieldCipher) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection), cipher: cipher}
}

type mongoUser struct {
	ID             string   `bson:"_id"`
	Username       string   `bson:"username"`
	UsernameKey    string   `bson:"username_key"`
	Email          string   `bson:"email"`
	EmailKey       string   `bson:"email_key"`
	PasswordHash   string   `bson:"password_hash"`
	Role           string   `bson:"role"`
	RoleKey        string   `bson:"role_key"`
	Enabled        bool     `bson:"enabled"`
	Authorizations []string `bson:"authorizations,omitempty"`
	RefreshToken   string   `bson:"refresh_token,omitempty"`
	CreatedAt      int64    `bson:"created_at"`
	UpdatedAt      int64    `bson:"updated_at"`
}

func (r *MongoUserRepository) toDoc(user *domain.User) (*mongoUser, error) {
	username, err := r.cipher.Encrypt(user.Username)
	if err != nil {
		return nil, fmt.Errorf("encrypt username: %w", err)
	}
	email, err := r.cipher.Encrypt(user.Email)
	if err != nil {
		return nil, fmt.Errorf("encrypt email: %w", err)
	}
	role, err := r.cipher.Encrypt(string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("encrypt role: %w", err)
	}
	refresh, err := r.cipher.Encrypt(user.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("encrypt refresh token: %w", err)
	}

	auths := make([]string, 0, len(user.Authorizations))
	for _, a := range user.Authorizations {
		enc, err := r.cipher.Encrypt(a)
		if err != nil {
			return nil, fmt.Errorf("encrypt authorization: %w", err)
		}
		auths = append(auths, enc)
	}

	return &mongoUser{
		ID:             user.ID,
		Username:       username,
		UsernameKey:    r.cipher.Digest(user.Username),
		Email:          email,
		EmailKey:       r.cipher.Digest(user.Email),
		PasswordHash:   user.PasswordHash,
		Role:           role,
		RoleKey:        r.cipher.Digest(string(user.Role)),
		Enabled:        user.Enabled,
		Authorizations: auths,
		RefreshToken:   refresh,
		CreatedAt:      user.CreatedAt.Unix(),
		UpdatedAt:      user.UpdatedAt.Unix(),
	}, nil
}

func (r *MongoUserRepository) fromDoc(mu *mongoUser) (*domain.User, error) {
	username, err := r.cipher.Decrypt(mu.Username)
	if err != nil {
		return nil, fmt.Errorf("decrypt username: %w", err)
	}
	email, err := r.cipher.Decrypt(mu.Email)
	if err != nil {
		return nil, fmt.Errorf("decrypt email: %w", err)
	}
	role, err := r.cipher.Decrypt(mu.Role)
	if err != nil {
		return nil, fmt.Errorf("decrypt role: %w", err)
	}
	refresh, err := r.cipher.Decrypt(mu.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("decrypt refresh token: %w", err)
	}

	auths := make([]string, 0, len(mu.Authorizations))
	for _, a := range mu.Authorizations {
		dec, err := r.cipher.Decrypt(a)
		if err != nil {
			return nil, fmt.Errorf("decrypt authorization: %w", err)
		}
		auths = append(auths, dec)
	}

	return &domain.User{
		ID:             mu.ID,
		Username:       username,
		Email:          email,
		PasswordHash:   mu.PasswordHash,
		Role:           domain.Role(role),
		Enabled:        mu.Enabled,
		Authorizations: auths,
		RefreshToken:   refresh,
		CreatedAt:      unixToTime(mu.CreatedAt),
		UpdatedAt:      unixToTime(mu.UpdatedAt),
	}, nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc, err := r.toDoc(user)
	if err != nil {
		return nil, err
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return r.fromDoc(&mu)
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username_key": r.cipher.Digest(username)})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email_key": r.cipher.Digest(email)})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		user, err := r.fromDoc(&mu)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) ExistsByRole(ctx context.Context, role domain.Role) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"role_key": r.cipher.Digest(string(role))}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("count role: %w", err)
	}
	return true, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	doc, err := r.toDoc(user)
	if err != nil {
		return err
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
