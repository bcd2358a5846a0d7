package rest

import (
	"context"
	"net/http"
	"time"

	"ecommerceRecommender/business/user"
	"ecommerceRecommender/domain"
	"ecommerceRecommender/pkg/logger"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, in user.RegisterInput) (domain.User, error)
	Login(ctx context.Context, username, password string) (user.LoginResult, error)
	Logout(ctx context.Context, userID uint) error
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
}

type UserHandler struct {
	userService UserService
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		timeout:     10 * time.Second,
	}
}

type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req user.RegisterInput
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Missing required fields"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	u, err := h.userService.Register(ctx, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    u,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var req UserLoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "Missing username or password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "Login successful",
		"access_token": res.AccessToken,
		"expires_at":   res.ExpiresAt,
		"user_id":      res.User.ID,
		"username":     res.User.Username,
		"role":         res.User.Role,
		"is_admin":     res.User.IsAdmin(),
	})
}

func (h *UserHandler) Logout(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "User not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.Logout(ctx, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "User not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	u, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, u)
}
