package mongo

import (
	"testing"

	"github.com/haguru/resumatch/config"
	"github.com/haguru/resumatch/pkg/databases/sqldb"
	"github.com/haguru/resumatch/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mongoClient "github.com/haguru/resumatch/pkg/databases/mongo"
)

func TestNewMongoCredentialRepository(t *testing.T) {
	logger := zerolog.NewNopLogger()

	client, err := mongoClient.NewMongoDB(&config.MongoDBConfig{
		DSN:              "mongodb://localhost:27017/resumatch",
		ValidCollections: []string{"credentials"},
		ValidFields:      []string{"identifier", "password_hash"},
	}, logger)
	require.NoError(t, err)

	repo, err := NewMongoCredentialRepository(client)
	assert.NoError(t, err)
	assert.NotNil(t, repo)

	_, err = NewMongoCredentialRepository(nil)
	assert.Error(t, err)

	_, err = NewMongoCredentialRepository(sqldb.NewSQLiteDatabaseClient(&config.SQLiteConfig{}, logger))
	assert.Error(t, err)
}
