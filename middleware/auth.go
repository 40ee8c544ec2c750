package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is issued by an external provider; this middleware only validates
// tokens and surfaces the claims. Keys set on the gin context:
// "user_id", "email", "role".

func parseToken(tokenString string) (jwt.MapClaims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	if v, ok := claims["user_id"].(string); ok {
		c.Set("user_id", v)
	}
	if v, ok := claims["email"].(string); ok {
		c.Set("email", v)
	}
	if v, ok := claims["role"].(string); ok {
		c.Set("role", v)
	}
}

// ValidateToken rejects requests without a valid bearer token.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	setIdentity(c, claims)
	c.Next()
}

// OptionalToken sets identity when a valid token is present and lets the
// request through either way. Guest carts live client-side, so GET /cart
// must answer unauthenticated callers with an empty list rather than a 401.
func OptionalToken(c *gin.Context) {
	if tokenString := c.GetHeader("Authorization"); tokenString != "" {
		if claims, err := parseToken(tokenString); err == nil {
			setIdentity(c, claims)
		}
	}
	c.Next()
}

// RequireRole gates a route group on the caller's role claim.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		c.Abort()
	}
}
