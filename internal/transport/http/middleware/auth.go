package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	errUnauthorized = "Unauthorized"

	// ContextUserID is the gin context key holding the authenticated
	// user's ID for downstream handlers.
	ContextUserID = "userID"
)

var errNoBearer = errors.New("no bearer token")

// Auth guards a route group with bearer-JWT authentication. Tokens must be
// HS256-signed with jwtKey and carry a non-empty sub claim.
func Auth(jwtKey []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		userID, err := authenticate(parser, jwtKey, c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

func authenticate(parser *jwt.Parser, jwtKey []byte, header string) (string, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return "", errNoBearer
	}

	token, err := parser.Parse(raw, func(*jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}

	userID, err := token.Claims.GetSubject()
	if err != nil || userID == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return userID, nil
}
