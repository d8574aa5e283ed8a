package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// currentUserKey is the Gin context key under which the authenticated
// identity is stored.
const currentUserKey = "currentUser"

// CurrentUser is the verified identity of the caller, extracted from the
// Firebase ID token. It is the single source of truth for identity in a
// request; handlers must not read identity from anywhere else.
type CurrentUser struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// ErrorResponse mirrors api.ErrorResponse locally to avoid an import cycle
// between the middleware and handler packages.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware provides Gin middleware for Firebase token authentication.
type AuthMiddleware struct {
	authClient *auth.Client
	logger     *zap.Logger
}

// NewAuthMiddleware creates an AuthMiddleware. The auth client is a hard
// dependency; routes cannot be secured without it.
func NewAuthMiddleware(authClient *auth.Client, logger *zap.Logger) *AuthMiddleware {
	if authClient == nil {
		panic("AuthMiddleware requires a non-nil Firebase Auth client")
	}
	return &AuthMiddleware{authClient: authClient, logger: logger}
}

// VerifyToken verifies the bearer token from the Authorization header and
// stores the resulting CurrentUser in the Gin context.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		token, err := m.authClient.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			m.logger.Warn("Failed to verify Firebase ID token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		user := CurrentUser{UID: token.UID}
		if email, ok := token.Claims["email"].(string); ok {
			user.Email = email
		}
		if name, ok := token.Claims["name"].(string); ok {
			user.DisplayName = name
		}
		if picture, ok := token.Claims["picture"].(string); ok {
			user.PhotoURL = picture
		}
		c.Set(currentUserKey, user)

		c.Next()
	}
}

// UserFromContext returns the authenticated identity placed in the context
// by VerifyToken. The bool is false on unauthenticated routes.
func UserFromContext(c *gin.Context) (CurrentUser, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return CurrentUser{}, false
	}
	user, ok := value.(CurrentUser)
	return user, ok
}
