package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/porcinet/herdbook/internal/api/shared/errors"
	"github.com/porcinet/herdbook/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	USER_ID_KEY    contextKey = "user_id"
	JWT_CLAIMS_KEY contextKey = "jwt_claims"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
}

// Authenticator verifies bearer tokens against a parsed RSA public key
type Authenticator struct {
	publicKey *rsa.PublicKey
}

// NewAuthenticator parses the configured public key once
func NewAuthenticator(cfg AuthConfig) (*Authenticator, error) {
	if cfg.JWTPublicKey == "" {
		return nil, errors.New("JWT public key not configured")
	}
	publicKey, err := parseRSAPublicKey(cfg.JWTPublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}
	return &Authenticator{publicKey: publicKey}, nil
}

// Authenticate validates the Authorization header and returns the token claims.
// The token subject is the caller's user id and must be present.
func (a *Authenticator) Authenticate(authHeader string) (*jwt.RegisteredClaims, error) {
	if authHeader == "" {
		return nil, errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return nil, errors.New("invalid Authorization header format")
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return nil, fmt.Errorf("unsupported authorization type: %s", parts[0])
	}

	claims, err := a.validateJWT(parts[1])
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}

// Auth returns a gin middleware for bearer token authentication
func Auth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		c.Set(JWT_CLAIMS_KEY, claims)
		c.Set(USER_ID_KEY, claims.Subject)
		logger.Debug("JWT authentication successful",
			zap.String("path", c.Request.URL.Path),
			zap.String("subject", claims.Subject),
		)

		c.Next()
	}
}

// UserID returns the authenticated user id, empty when the request was not authenticated
func UserID(c *gin.Context) string {
	v, ok := c.Get(USER_ID_KEY)
	if !ok {
		return ""
	}
	userID, _ := v.(string)
	return userID
}

// validateJWT validates a JWT token with RSA signature and returns claims
func (a *Authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is RSA
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	now := time.Now()

	// Check expiration
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return nil, errors.New("token has expired")
	}

	// Check not before
	if claims.NotBefore != nil && claims.NotBefore.After(now) {
		return nil, errors.New("token not yet valid")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
