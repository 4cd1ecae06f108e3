package middleware

import (
	"fmt"
	"strings"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/repository"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

type AuthMiddleware struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

func CreateAuthMiddleware(userRepo repository.UserRepository, jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{userRepo: userRepo, jwtSecret: jwtSecret}
}

// IsLoggedIn resolves the bearer token to a live account and stashes it
// on the request context. Tokens of deleted users fail the lookup.
func (m *AuthMiddleware) IsLoggedIn(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		userIDClaim, ok := claims["userID"].(float64)
		if !ok {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		user, err := m.userRepo.GetUserByID(c.Request().Context(), int64(userIDClaim))
		if err != nil {
			return response.WriteErrorResponse(c, errs.ErrInternalServer, nil)
		}

		if user.ID == 0 {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		c.Set(userContextKey, user)

		return next(c)
	}
}

func (m *AuthMiddleware) IsAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user.Role != domain.RoleAdmin {
			return response.WriteErrorResponse(c, errs.ErrForbidden, nil)
		}

		return next(c)
	}
}

func CurrentUser(c echo.Context) domain.User {
	user, _ := c.Get(userContextKey).(domain.User)
	return user
}
