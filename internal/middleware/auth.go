package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	ContextUserID    = "userID"
	ContextCompanyID = "companyID"
	ContextUserRole  = "userRole"
)

// AuthMiddleware validates the HS256 bearer token issued by the login service
// and exposes the user and company ids. There is no default company: a token
// without companyId is rejected.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Sessão não informada.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Sessão inválida.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Sessão expirada ou inválida.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Sessão inválida.")
			c.Abort()
			return
		}

		userID, ok1 := claims["sub"].(float64)
		companyID, ok2 := claims["companyId"].(float64)
		role, _ := claims["role"].(string)
		if !ok1 || !ok2 || companyID <= 0 {
			httperr.Unauthorized(c, "invalid_token_payload", "Sessão sem empresa vinculada.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextCompanyID, uint(companyID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// CompanyID reads the id set by AuthMiddleware.
func CompanyID(c *gin.Context) uint {
	return c.GetUint(ContextCompanyID)
}

func UserID(c *gin.Context) uint {
	return c.GetUint(ContextUserID)
}
