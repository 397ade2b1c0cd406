package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

const (
	pemTypeEC    = "EC PRIVATE KEY"
	pemTypePKCS8 = "PRIVATE KEY"
)

var ErrUnsupportedKey = errors.New("session signing key must be a P-256 ECDSA key")

// LoadECDSAPrivateKey loads the session signing key from a PEM file.
// Both SEC 1 ("EC PRIVATE KEY", openssl ecparam) and PKCS#8 ("PRIVATE KEY",
// openssl genpkey) encodings are accepted. ES256 needs the P-256 curve.
func LoadECDSAPrivateKey(keyPath string) (*ecdsa.PrivateKey, error) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return ParseECDSAPrivateKey(keyData)
}

// ParseECDSAPrivateKey decodes the first PEM block of keyData.
func ParseECDSAPrivateKey(keyData []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	var privateKey *ecdsa.PrivateKey
	switch block.Type {
	case pemTypeEC:
		key, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ECDSA private key: %w", err)
		}
		privateKey = key
	case pemTypePKCS8:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse PKCS#8 private key: %w", err)
		}
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrUnsupportedKey, key)
		}
		privateKey = ecKey
	default:
		return nil, fmt.Errorf("%w: PEM block %q", ErrUnsupportedKey, block.Type)
	}

	if privateKey.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: curve %s", ErrUnsupportedKey, privateKey.Curve.Params().Name)
	}
	return privateKey, nil
}
