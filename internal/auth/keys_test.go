package auth

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadECDSAPrivateKey(t *testing.T) {
	tests := []struct {
		name    string
		keyPath string
		wantErr bool
	}{
		{
			name:    "load valid key",
			keyPath: "test_valid_private.pem",
			wantErr: false,
		},
		{
			name:    "load invalid key",
			keyPath: "test_invalid_private.pem",
			wantErr: true,
		},
		{
			name:    "file does not exist",
			keyPath: "non_existent_key.pem",
			wantErr: true,
		},
		{
			name:    "empty key path",
			keyPath: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadECDSAPrivateKey(tt.keyPath)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(testJwtPrivateKey))
		})
	}
}

func pemBlock(t *testing.T, blockType string, der []byte) []byte {
	t.Helper()
	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
}

func TestParseECDSAPrivateKey(t *testing.T) {
	p256, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	_, edKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sec1, err := x509.MarshalECPrivateKey(p256)
	require.NoError(t, err)
	pkcs8, err := x509.MarshalPKCS8PrivateKey(p256)
	require.NoError(t, err)
	sec1P384, err := x509.MarshalECPrivateKey(p384)
	require.NoError(t, err)
	pkcs8Ed, err := x509.MarshalPKCS8PrivateKey(edKey)
	require.NoError(t, err)

	tests := []struct {
		name        string
		data        []byte
		wantErr     bool
		unsupported bool
	}{
		{name: "sec1", data: pemBlock(t, pemTypeEC, sec1)},
		{name: "pkcs8", data: pemBlock(t, pemTypePKCS8, pkcs8)},
		{name: "wrong curve", data: pemBlock(t, pemTypeEC, sec1P384), wantErr: true, unsupported: true},
		{name: "not ecdsa", data: pemBlock(t, pemTypePKCS8, pkcs8Ed), wantErr: true, unsupported: true},
		{name: "rsa block type", data: pemBlock(t, "RSA PRIVATE KEY", sec1), wantErr: true, unsupported: true},
		{name: "corrupt body", data: pemBlock(t, pemTypeEC, []byte("garbage")), wantErr: true},
		{name: "not pem", data: []byte("hello"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseECDSAPrivateKey(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.unsupported, errors.Is(err, ErrUnsupportedKey))
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(p256))

			token, _, err := CreateToken("a@x.com", time.Minute, got)
			require.NoError(t, err)
			_, err = VerifyToken(token, &p256.PublicKey)
			assert.NoError(t, err)
		})
	}
}
