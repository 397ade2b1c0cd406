package auth

import (
	"crypto/ecdsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ISSUER  = "github.com/haguru/resumatch"
	SUBJECT = "SESSION"
)

type CustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// CreateToken signs an ES256 session token for identifier valid for ttl.
// The returned claims carry the token id (jti) and expiry.
func CreateToken(identifier string, ttl time.Duration, privateKey *ecdsa.PrivateKey) (string, *CustomClaims, error) {
	if privateKey == nil {
		return "", nil, fmt.Errorf("private key is nil")
	}

	now := time.Now()
	claims := &CustomClaims{
		Email: identifier,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    ISSUER,
			Subject:   SUBJECT,
			Audience:  []string{"api." + ISSUER},
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)

	signToken, err := token.SignedString(privateKey)
	if err != nil {
		return "", nil, err
	}

	return signToken, claims, nil
}

func VerifyToken(tokenString string, publicKey *ecdsa.PublicKey) (*CustomClaims, error) {
	// check key type for the correct signing method
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	},
		jwt.WithIssuer(ISSUER),
		jwt.WithAudience("api."+ISSUER),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token parsing error: %w", err)
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token or claims")
}
