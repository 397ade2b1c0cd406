package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/haguru/resumatch/internal/credentialrepo/constants"
	"github.com/haguru/resumatch/internal/interfaces"
	"github.com/haguru/resumatch/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	mongoClient "github.com/haguru/resumatch/pkg/databases/mongo"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCredentialRepository implements CredentialRepository using the generic DBClient.
type MongoCredentialRepository struct {
	dbClient interfaces.DBClient
}

// mongoCredential is the stored BSON shape of a credential.
type mongoCredential struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Identifier   string             `bson:"identifier"`
	PasswordHash []byte             `bson:"password_hash"`
}

// NewMongoCredentialRepository creates a new MongoDB repository instance.
func NewMongoCredentialRepository(dbClient interfaces.DBClient) (interfaces.CredentialRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	if _, ok := dbClient.(*mongoClient.MongoDBClient); !ok {
		return nil, fmt.Errorf("dbClient must be a MongoDB client")
	}
	return &MongoCredentialRepository{dbClient: dbClient}, nil
}

// AddCredential saves a new credential to MongoDB via DBClient.
func (r *MongoCredentialRepository) AddCredential(ctx context.Context, credential models.Credential) (string, error) {
	doc := map[string]interface{}{
		constants.IdentifierField:   credential.Identifier,
		constants.PasswordHashField: credential.PasswordHash,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.CredentialsCollection, doc)
	if err != nil {
		if errors.Is(err, interfaces.ErrDuplicateKey) {
			return "", models.ErrDuplicateIdentifier
		}
		return "", fmt.Errorf("failed to add credential to MongoDB: %w", err)
	}

	objID, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to ObjectID")
	}
	return objID.Hex(), nil
}

// GetCredential retrieves a credential from MongoDB via DBClient.
func (r *MongoCredentialRepository) GetCredential(ctx context.Context, identifier string) (*models.Credential, error) {
	var stored mongoCredential

	filter := map[string]interface{}{constants.IdentifierField: identifier}
	err := r.dbClient.FindOne(ctx, constants.CredentialsCollection, filter, &stored)
	if err != nil {
		if errors.Is(err, interfaces.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get credential from MongoDB: %w", err)
	}

	return &models.Credential{
		ID:           stored.ID.Hex(),
		Identifier:   stored.Identifier,
		PasswordHash: stored.PasswordHash,
	}, nil
}

// EnsureIndices creates the unique index on identifier.
func (r *MongoCredentialRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: constants.IdentifierField, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	return r.dbClient.EnsureSchema(ctx, constants.CredentialsCollection, indexModel)
}

// Close disconnects the MongoDB client.
func (r *MongoCredentialRepository) Close(ctx context.Context) error {
	return r.dbClient.Disconnect(ctx)
}
