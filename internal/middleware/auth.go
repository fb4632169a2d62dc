package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"edustore-service/pkg/common"
)

// RequireAuth validates the bearer token and stores user_id and is_admin on
// the context for the handlers downstream.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Missing bearer token", nil, http.StatusUnauthorized))
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid or expired token", nil, http.StatusUnauthorized))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid token claims", nil, http.StatusUnauthorized))
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("Invalid token claims", nil, http.StatusUnauthorized))
			return
		}

		isAdmin, _ := claims["is_admin"].(bool)
		c.Set("user_id", int(userID))
		c.Set("is_admin", isAdmin)
		c.Next()
	}
}

// RequireAdmin gates the back office. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAdmin, _ := c.Get("is_admin"); isAdmin != true {
			c.AbortWithStatusJSON(http.StatusForbidden, common.NewErrorResponse("Admin access required", nil, http.StatusForbidden))
			return
		}
		c.Next()
	}
}
