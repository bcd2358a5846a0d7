package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ecommerceRecommender/domain"
	"ecommerceRecommender/pkg/logger"
	jsonres "ecommerceRecommender/pkg/response"
	"ecommerceRecommender/pkg/utils"

	"github.com/labstack/echo/v4"
)

// TokenParser verifies a signed access token.
type TokenParser interface {
	ParseJWT(token string) (*utils.JWTClaims, error)
}

// TokenValidator looks a token up in the server-side session store.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uint, error)
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", message, nil))
}

func forbidden(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, jsonres.Error("FORBIDDEN", message, nil))
}

type identity struct {
	token  string
	userID uint
	role   string
}

// authenticate extracts and verifies the bearer token.
func authenticate(c echo.Context, parser TokenParser) (identity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Token is missing!")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Token is missing or invalid in Authorization header!")
	}

	claims, err := parser.ParseJWT(tokenParts[1])
	if err != nil {
		logger.Debug("rejected token", "error", err)
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	userID, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil || userID == 0 {
		logger.Error("invalid user id in token", "user_id", claims.UserID)
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid user ID in token")
	}

	return identity{token: tokenParts[1], userID: uint(userID), role: claims.Role}, nil
}

func (id identity) set(c echo.Context) {
	c.Set("user_id", id.userID)
	c.Set("role", id.role)
	c.Set("token", id.token)
}

// AuthMiddleware authenticates with the token signature alone.
func AuthMiddleware(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := authenticate(c, parser)
			if err != nil {
				return err
			}

			id.set(c)
			return next(c)
		}
	}
}

// AuthMiddlewareWithRedis additionally requires the token to be the user's
// live session.
func AuthMiddlewareWithRedis(parser TokenParser, tokenValidator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := authenticate(c, parser)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			sessionUserID, err := tokenValidator.ValidateToken(ctx, id.token)
			if err != nil {
				logger.Warn("token not found in session store", "user_id", id.userID, "error", err)
				return unauthorized(c, "Token expired or revoked")
			}

			if sessionUserID != id.userID {
				logger.Error("user id mismatch between token and session",
					"token_user_id", id.userID,
					"session_user_id", sessionUserID,
				)
				return unauthorized(c, "Invalid token")
			}

			id.set(c)
			return next(c)
		}
	}
}

func isAdmin(c echo.Context) bool {
	role, ok := c.Get("role").(string)
	return ok && strings.EqualFold(role, domain.RoleAdmin)
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isAdmin(c) {
				return forbidden(c, "Admin access required")
			}

			return next(c)
		}
	}
}

// SelfOrAdmin lets admins through and otherwise requires the :id path param
// to be the caller's own user id.
func SelfOrAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			loggedInUserID, ok := c.Get("user_id").(uint)
			if !ok {
				return unauthorized(c, "User not authenticated")
			}

			if isAdmin(c) {
				return next(c)
			}

			requestedID, err := strconv.ParseUint(c.Param("id"), 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, jsonres.Error(
					"BAD_REQUEST", "Invalid user ID", nil,
				))
			}

			if uint(requestedID) != loggedInUserID {
				return forbidden(c, "Unauthorized access to recommendations for another user.")
			}

			return next(c)
		}
	}
}
