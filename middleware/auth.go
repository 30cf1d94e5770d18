package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/model"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

type AuthConfig struct {
	sessionNotRequired bool
	// profileNotRequired admits authenticated callers who have not finished
	// onboarding yet (the onboarding endpoint itself needs this).
	profileNotRequired bool
}

func RequireSession() *AuthConfig {
	return &AuthConfig{}
}

func RequireSessionOnly() *AuthConfig {
	return &AuthConfig{profileNotRequired: true}
}

func SessionOptional() *AuthConfig {
	return &AuthConfig{sessionNotRequired: true, profileNotRequired: true}
}

// Auth verifies the Bearer token with the identity provider and attaches the
// token plus the local profile (when one exists) to the request context.
func Auth(userDB db.UserDatabase, authClient *auth.Client, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader, ok := c.Request.Header["Authorization"]
		if !ok || len(authorizationHeader) == 0 {
			if config.sessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no authorization header",
			})
			c.Abort()
			return
		}
		if strings.Index(authorizationHeader[0], "Bearer ") != 0 || len(authorizationHeader[0]) < 8 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "incorrectly formatted authorization header",
			})
			c.Abort()
			return
		}
		token, err := authClient.VerifyIDToken(c, authorizationHeader[0][7:])
		if err != nil {
			if config.sessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}
		c.Set(TOKEN_KEY, token)

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if user == nil {
			if config.profileNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must complete onboarding first",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

// GetUserIdMaybe returns the caller's id or "" when the request carried no
// valid session.
func GetUserIdMaybe(c *gin.Context) string {
	token, ok := c.Get(TOKEN_KEY)
	if !ok {
		return ""
	}
	return token.(*auth.Token).UID
}

func MustGetUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_KEY)
	return user.(*model.User)
}
