package http

import (
	"net/http"
	"strings"
	"time"

	"storefront/internal/core/domain/model/customer"
	"storefront/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	ctxUserIDKey = "user_id"
	ctxRoleKey   = "user_role"
)

// Claims are the access token claims: sub carries the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 access token. The service itself never logs users
// in; this exists for tooling and tests.
func IssueToken(secret []byte, userID kernel.UUID, role customer.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// Authenticate verifies the bearer token and stores the caller in the echo context.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, raw, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				return fail(c, http.StatusUnauthorized, "Provide token")
			}

			var claims Claims
			_, err := parser.ParseWithClaims(strings.TrimSpace(raw), &claims, func(*jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil {
				return fail(c, http.StatusUnauthorized, "Unauthorized access")
			}

			userID, err := kernel.UUIDFromString(claims.Subject)
			if err != nil {
				return fail(c, http.StatusUnauthorized, "Unauthorized access")
			}
			role := customer.Role(claims.Role)
			if role != customer.RoleUser && role != customer.RoleAdmin {
				return fail(c, http.StatusUnauthorized, "Unauthorized access")
			}

			c.Set(ctxUserIDKey, userID)
			c.Set(ctxRoleKey, role)
			return next(c)
		}
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ctxRoleKey).(customer.Role)
			if !ok {
				return fail(c, http.StatusUnauthorized, "Unauthorized access")
			}
			if !role.IsAdmin() {
				return fail(c, http.StatusForbidden, "Permission denial")
			}
			return next(c)
		}
	}
}

func currentUserID(c echo.Context) (kernel.UUID, error) {
	userID, ok := c.Get(ctxUserIDKey).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized access")
	}
	return userID, nil
}
