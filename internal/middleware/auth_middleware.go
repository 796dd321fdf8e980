package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/deke-r/senseHrm/internal/shared/apperror"
	"github.com/deke-r/senseHrm/internal/shared/contextutil"
	"github.com/deke-r/senseHrm/internal/shared/response"
)

const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// AuthMiddleware validates the bearer token (or the auth cookie the web
// client sends) and stores the caller's identity on the gin context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["id"].(float64)
		if !ok || userID <= 0 {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserID, uint(userID))
		if email, ok := claims["email"].(string); ok {
			c.Set(CtxEmail, email)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(CtxRole, role)
		}

		c.Request = c.Request.WithContext(
			contextutil.WithActorID(c.Request.Context(), uint(userID)),
		)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

// UserID returns the authenticated caller's id set by AuthMiddleware.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Role returns the authenticated caller's role, defaulting to employee.
func Role(c *gin.Context) string {
	if v, ok := c.Get(CtxRole); ok {
		if role, ok := v.(string); ok && role != "" {
			return role
		}
	}
	return "employee"
}
