package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testJwtPrivateKey is initialized in TestMain.
var testJwtPrivateKey *ecdsa.PrivateKey

func TestMain(m *testing.M) {
	validKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate ECDSA private key for tests: %v", err)
	}
	testJwtPrivateKey = validKey

	validKeyFile := "test_valid_private.pem"
	validKeyOut, err := os.Create(validKeyFile)
	if err != nil {
		log.Fatalf("Failed to create valid private key file: %v", err)
	}
	if err := encodeECDSAPrivateKeyToPEM(validKeyOut, validKey); err != nil {
		log.Fatalf("Failed to write valid private key to PEM: %v", err)
	}
	if err := validKeyOut.Close(); err != nil {
		log.Fatalf("Failed to close valid private key file: %v", err)
	}

	invalidKeyFile := "test_invalid_private.pem"
	invalid := []byte("-----BEGIN INVALID KEY-----\nbm90LWEtcmVhbC1rZXk=\n-----END INVALID KEY-----\n")
	if err := os.WriteFile(invalidKeyFile, invalid, 0600); err != nil {
		log.Fatalf("Failed to write invalid key to PEM: %v", err)
	}

	code := m.Run()

	if err := os.Remove(validKeyFile); err != nil {
		log.Printf("Warning: failed to remove %s: %v", validKeyFile, err)
	}
	if err := os.Remove(invalidKeyFile); err != nil {
		log.Printf("Warning: failed to remove %s: %v", invalidKeyFile, err)
	}

	os.Exit(code)
}

// encodeECDSAPrivateKeyToPEM writes an ECDSA private key to the given writer in PEM format.
func encodeECDSAPrivateKeyToPEM(out *os.File, key *ecdsa.PrivateKey) error {
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal ECDSA private key: %w", err)
	}
	block := &pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: der,
	}
	if err := pem.Encode(out, block); err != nil {
		return fmt.Errorf("failed to encode PEM: %w", err)
	}
	return nil
}

func TestCreateToken(t *testing.T) {
	type args struct {
		identifier string
		ttl        time.Duration
		privateKey *ecdsa.PrivateKey
	}
	tests := []struct {
		name    string
		args    args
		wantErr bool
	}{
		{
			name: "Successful token creation",
			args: args{
				identifier: "a@x.com",
				ttl:        15 * time.Minute,
				privateKey: testJwtPrivateKey,
			},
			wantErr: false,
		},
		{
			name: "Custom ttl",
			args: args{
				identifier: "b@x.com",
				ttl:        time.Hour,
				privateKey: testJwtPrivateKey,
			},
			wantErr: false,
		},
		{
			name: "Error with nil private key",
			args: args{
				identifier: "a@x.com",
				ttl:        time.Minute,
				privateKey: nil,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotTokenString, gotClaims, err := CreateToken(tt.args.identifier, tt.args.ttl, tt.args.privateKey)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, gotClaims)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, gotTokenString)

			parsedToken, err := jwt.ParseWithClaims(gotTokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
				return &tt.args.privateKey.PublicKey, nil
			}, jwt.WithValidMethods([]string{"ES256"}))
			require.NoError(t, err)
			require.True(t, parsedToken.Valid)

			claims, ok := parsedToken.Claims.(*CustomClaims)
			require.True(t, ok)

			assert.Equal(t, tt.args.identifier, claims.Email)
			assert.Equal(t, ISSUER, claims.Issuer)
			assert.Equal(t, SUBJECT, claims.Subject)
			assert.Equal(t, jwt.ClaimStrings{"api." + ISSUER}, claims.Audience)
			assert.WithinDuration(t, time.Now().Add(tt.args.ttl), claims.ExpiresAt.Time, 5*time.Second)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)

			_, err = uuid.Parse(claims.ID)
			assert.NoError(t, err, "jti must be a uuid")
			assert.Equal(t, claims.ID, gotClaims.ID)
			assert.Equal(t, claims.ExpiresAt.Unix(), gotClaims.ExpiresAt.Unix())
		})
	}
}

func TestCreateToken_UniqueIDs(t *testing.T) {
	_, first, err := CreateToken("a@x.com", time.Minute, testJwtPrivateKey)
	require.NoError(t, err)
	_, second, err := CreateToken("a@x.com", time.Minute, testJwtPrivateKey)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestVerifyToken(t *testing.T) {
	valid, _, err := CreateToken("a@x.com", 15*time.Minute, testJwtPrivateKey)
	require.NoError(t, err)

	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	foreign, _, err := CreateToken("a@x.com", 15*time.Minute, otherKey)
	require.NoError(t, err)

	expiredClaims := &CustomClaims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    ISSUER,
			Audience:  []string{"api." + ISSUER},
			ID:        uuid.NewString(),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodES256, expiredClaims).SignedString(testJwtPrivateKey)
	require.NoError(t, err)

	wrongIssuerClaims := *expiredClaims
	wrongIssuerClaims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Minute))
	wrongIssuerClaims.Issuer = "someone-else"
	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodES256, &wrongIssuerClaims).SignedString(testJwtPrivateKey)
	require.NoError(t, err)

	tests := []struct {
		name        string
		tokenString string
		wantErr     bool
	}{
		{name: "valid token", tokenString: valid, wantErr: false},
		{name: "invalid token format", tokenString: "invalid-token-format", wantErr: true},
		{name: "tampered token", tokenString: valid[:len(valid)-4] + "AAAA", wantErr: true},
		{name: "expired token", tokenString: expired, wantErr: true},
		{name: "token signed by different key", tokenString: foreign, wantErr: true},
		{name: "wrong issuer", tokenString: wrongIssuer, wantErr: true},
		{name: "empty token", tokenString: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims, err := VerifyToken(tt.tokenString, &testJwtPrivateKey.PublicKey)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", gotClaims.Email)
			assert.Equal(t, ISSUER, gotClaims.Issuer)
			assert.Equal(t, SUBJECT, gotClaims.Subject)
		})
	}
}
