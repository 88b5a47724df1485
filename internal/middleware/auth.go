package middleware

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const (
	// ContextKeyFirebaseUID is the key for the Firebase UID in the Gin context
	ContextKeyFirebaseUID = "firebase_uid"
	// ContextKeyEmail is the key for the verified email, when the token carries one
	ContextKeyEmail = "email"
)

// DevUID is the identity assigned to every request when auth is disabled.
const DevUID = "dev-user"

// TokenVerifier checks a Firebase ID token and returns its UID and claims.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthMiddleware validates Firebase ID tokens and injects the UID into context
type AuthMiddleware struct {
	client TokenVerifier
}

// NewAuthMiddleware creates a new Firebase auth middleware
func NewAuthMiddleware(projectID string) (*AuthMiddleware, error) {
	ctx := context.Background()

	var app *firebase.App
	var err error

	if projectID != "" {
		conf := &firebase.Config{ProjectID: projectID}
		app, err = firebase.NewApp(ctx, conf)
	} else {
		// Falls back to GOOGLE_APPLICATION_CREDENTIALS or default credentials
		app, err = firebase.NewApp(ctx, nil, option.WithoutAuthentication())
	}

	if err != nil {
		return nil, err
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	return &AuthMiddleware{client: client}, nil
}

// NewAuthMiddlewareWithVerifier builds the middleware around an existing verifier.
func NewAuthMiddlewareWithVerifier(v TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{client: v}
}

// Authenticate is the Gin middleware handler
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing Authorization header",
			})
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid Authorization header format",
			})
			return
		}

		token, err := am.client.VerifyIDToken(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			log.Warn().Err(err).Msg("Failed to verify Firebase token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyFirebaseUID, token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			c.Set(ContextKeyEmail, email)
		}

		c.Next()
	}
}

// StaticIdentity assigns a fixed UID to every request. Used for local
// development when AUTH_DISABLED is set.
func StaticIdentity(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyFirebaseUID, uid)
		c.Next()
	}
}

// GetFirebaseUID extracts the Firebase UID from the Gin context
func GetFirebaseUID(c *gin.Context) string {
	uid, _ := c.Get(ContextKeyFirebaseUID)
	if s, ok := uid.(string); ok {
		return s
	}
	return ""
}
