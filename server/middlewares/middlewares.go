package middlewares

import (
	"net/http"
	"strings"

	"github.com/Luismorlan/cookmux/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The auth middlewares resolve the request's bearer token to a user id and
// stash it in the request header field "sub". Handlers only ever read "sub";
// they never see the token itself.

const identityHeader = "sub"

// tokenFromRequest extracts the bearer token, either from the standard
// "Authorization: Token <token>" header or from the "token" query parameter.
func tokenFromRequest(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Token ") {
		return strings.TrimPrefix(auth, "Token ")
	}
	return c.Query("token")
}

func resolveToken(db *gorm.DB, token string) (string, bool) {
	var authToken model.AuthToken
	result := db.Where("token = ?", token).First(&authToken)
	if result.RowsAffected != 1 {
		return "", false
	}
	return authToken.UserID, true
}

// TokenAuth rejects requests without a valid auth token. On success it
// replaces the "sub" header with the id of the token's owner.
func TokenAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication credentials were not provided"})
			c.Abort()
			return
		}

		userId, ok := resolveToken(db, token)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
			c.Abort()
			return
		}

		c.Request.Header.Set(identityHeader, userId)
		c.Next()
	}
}

// OptionalTokenAuth resolves the token when present but lets anonymous
// requests through. Used on read endpoints whose payloads carry per-viewer
// flags such as is_favorited.
func OptionalTokenAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// never trust a client provided identity header
		c.Request.Header.Del(identityHeader)

		if token := tokenFromRequest(c); token != "" {
			if userId, ok := resolveToken(db, token); ok {
				c.Request.Header.Set(identityHeader, userId)
			}
		}
		c.Next()
	}
}

// TrustHeader trusts the "sub" header as-is. Only wired in when the server
// runs with -no_auth, and in handler tests.
func TrustHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}
