package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/identity-platform/auth-service/internal/core/domain"
	"github.com/identity-platform/auth-service/internal/pkg/crypto"
)

const serviceAccountCollection = "service_accounts"

// MongoServiceAccountRepository stores machine principals with the clientId
// encrypted at rest, mirroring the user store's digest-column lookup scheme.
type MongoServiceAccountRepository struct {
	coll   *mongo.Collection
	cipher *crypto.FieldCipher
}

func NewServiceAccountRepository(db *mongo.Database, cipher *crypto.FieldCipher) *MongoServiceAccountRepository {
	return &MongoServiceAccountRepository{coll: db.Collection(serviceAccountCollection), cipher: cipher}
}

type mongoServiceAccount struct {
	ID               string   `bson:"_id"`
	ClientID         string   `bson:"client_id"`
	ClientIDKey      string   `bson:"client_id_key"`
	ClientSecretHash string   `bson:"client_secret_hash"`
	Authorizations   []string `bson:"authorizations,omitempty"`
	CreatedAt        int64    `bson:"created_at"`
}

func (r *MongoServiceAccountRepository) FindByClientID(ctx context.Context, clientID string) (*domain.ServiceAccount, error) {
	var ma mongoServiceAccount
	filter := bson.M{"client_id_key": r.cipher.Digest(clientID)}
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrServiceAccountNotFound
		}
		return nil, fmt.Errorf("find service account: %w", err)
	}

	decrypted, err := r.cipher.Decrypt(ma.ClientID)
	if err != nil {
		return nil, fmt.Errorf("decrypt client id: %w", err)
	}

	return &domain.ServiceAccount{
		ID:               ma.ID,
		ClientID:         decrypted,
		ClientSecretHash: ma.ClientSecretHash,
		Authorizations:   ma.Authorizations,
		CreatedAt:        unixToTime(ma.CreatedAt),
	}, nil
}

// Upsert keys on the clientId digest so reseeding on boot replaces the
// existing record instead of duplicating it.
func (r *MongoServiceAccountRepository) Upsert(ctx context.Context, account *domain.ServiceAccount) error {
	encrypted, err := r.cipher.Encrypt(account.ClientID)
	if err != nil {
		return fmt.Errorf("encrypt client id: %w", err)
	}

	doc := mongoServiceAccount{
		ID:               account.ID,
		ClientID:         encrypted,
		ClientIDKey:      r.cipher.Digest(account.ClientID),
		ClientSecretHash: account.ClientSecretHash,
		Authorizations:   account.Authorizations,
		CreatedAt:        account.CreatedAt.Unix(),
	}

	filter := bson.M{"client_id_key": doc.ClientIDKey}
	// Keep the original _id on replacement; ReplaceOne refuses _id changes.
	update := bson.M{"$set": bson.M{
		"client_id":          doc.ClientID,
		"client_id_key":      doc.ClientIDKey,
		"client_secret_hash": doc.ClientSecretHash,
		"authorizations":     doc.Authorizations,
	}, "$setOnInsert": bson.M{
		"_id":        doc.ID,
		"created_at": doc.CreatedAt,
	}}

	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert service account: %w", err)
	}
	return nil
}
