package middlewares

import (
	"MediSched/models"
	"MediSched/utils"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// contextKey defines a custom context key type to store user details in the context.
type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// TokenAuthMiddleware validates the access token and adds the caller's
// identity to the request context.
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, Response{
				StatusCode: http.StatusUnauthorized,
				Message:    "Missing access token",
				IsError:    true,
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, models.RoleAdmin, models.RoleDoctor, models.RoleUser)
		if err != nil {
			c.JSON(http.StatusUnauthorized, Response{
				StatusCode: http.StatusUnauthorized,
				Message:    "Invalid token",
				IsError:    true,
			})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userRoleKey, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleAuthMiddleware restricts access to callers holding one of the given roles.
func RoleAuthMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := ExtractUserRoleFromContext(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, Response{
				StatusCode: http.StatusUnauthorized,
				Message:    "User role not found in context",
				IsError:    true,
			})
			c.Abort()
			return
		}

		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, Response{
			StatusCode: http.StatusForbidden,
			Message:    "Forbidden: insufficient privileges",
			IsError:    true,
		})
		c.Abort()
	}
}

// bearerToken pulls the access token from the Authorization header, falling
// back to the accessToken query parameter for email-launched pages.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.DefaultQuery("accessToken", "")
}

// CallerFromContext assembles the authenticated caller from the request context.
func CallerFromContext(ctx context.Context) (utils.Caller, error) {
	userID, err := ExtractUserIDFromContext(ctx)
	if err != nil {
		return utils.Caller{}, err
	}
	role, err := ExtractUserRoleFromContext(ctx)
	if err != nil {
		return utils.Caller{}, err
	}
	return utils.Caller{ID: userID, Role: role}, nil
}

// ExtractUserIDFromContext retrieves the userID from the context.
func ExtractUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return "", errors.New("user ID not found in context")
	}
	return userID, nil
}

// ExtractUserRoleFromContext retrieves the user role from the context.
func ExtractUserRoleFromContext(ctx context.Context) (string, error) {
	userRole, ok := ctx.Value(userRoleKey).(string)
	if !ok {
		return "", errors.New("user role not found in context")
	}
	return userRole, nil
}
