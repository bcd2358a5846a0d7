package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ecommerceRecommender/domain"
	"ecommerceRecommender/pkg/logger"
	"ecommerceRecommender/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateJWT(userID, role string) (string, time.Time, error)
}

// SessionStore keeps issued tokens server-side. Optional.
type SessionStore interface {
	StoreSession(ctx context.Context, userID uint, role, token string, expiresAt time.Time) error
	RevokeSession(ctx context.Context, userID uint) error
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        domain.User
}

type userService struct {
	userRepo UserRepository
	tokens   TokenIssuer
	sessions SessionStore
	validate *validator.Validate
}

// NewUserService builds the service; sessions may be nil, in which case
// tokens are only verified by signature.
func NewUserService(
	userRepo UserRepository,
	tokens TokenIssuer,
	sessions SessionStore,
	validate *validator.Validate,
) *userService {
	return &userService{
		userRepo: userRepo,
		tokens:   tokens,
		sessions: sessions,
		validate: validate,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validate.Struct(in); err != nil {
		logger.Error("invalid registration data", "error", err)
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, registrationProblem(err))
	}

	if _, err := s.userRepo.FindByUsername(ctx, in.Username); err == nil {
		return domain.User{}, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		logger.Error("failed to check username", "error", err)
		return domain.User{}, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return domain.User{}, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		logger.Error("failed to check email", "error", err)
		return domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(passwordHash),
		Role:     domain.RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("failed to create new user", "error", err)
		return domain.User{}, err
	}

	logger.Info("user registered", "user_id", newUser.ID)

	newUser.Password = ""
	return newUser, nil
}

func registrationProblem(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "missing required fields"
	}

	switch fe := verrs[0]; {
	case fe.Field() == "Email" && fe.Tag() == "email":
		return "invalid email format"
	case fe.Field() == "Password" && fe.Tag() == "min":
		return "password must be at least 6 characters"
	case fe.Field() == "Username" && (fe.Tag() == "min" || fe.Tag() == "max"):
		return "username must be between 3 and 50 characters"
	default:
		return "missing required fields"
	}
}

// Login checks the credentials and issues an access token. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (s *userService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if err := ctx.Err(); err != nil {
		return LoginResult{}, fmt.Errorf("context error: %w", err)
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return LoginResult{}, fmt.Errorf("%w: missing username or password", domain.ErrInvalidInput)
	}

	u, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return LoginResult{}, domain.ErrInvalidCredentials
		}
		logger.Error("failed to find user", "error", err)
		return LoginResult{}, err
	}

	if !utils.CheckPassword(password, u.Password) {
		logger.Warn("incorrect password", "user_id", u.ID)
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	token, expAt, err := s.tokens.GenerateJWT(strconv.FormatUint(uint64(u.ID), 10), u.Role)
	if err != nil {
		logger.Error("failed to generate token", "error", err)
		return LoginResult{}, errors.New("failed to generate token")
	}

	if s.sessions != nil {
		if err := s.sessions.StoreSession(ctx, u.ID, u.Role, token, expAt); err != nil {
			logger.Error("failed to store session", "user_id", u.ID, "error", err)
			return LoginResult{}, fmt.Errorf("failed to store session: %w", err)
		}
	}

	u.Password = ""
	return LoginResult{AccessToken: token, ExpiresAt: expAt, User: u}, nil
}

// Logout drops the server-side session. Without a session store it is a no-op.
func (s *userService) Logout(ctx context.Context, userID uint) error {
	if s.sessions == nil {
		return nil
	}

	if err := s.sessions.RevokeSession(ctx, userID); err != nil {
		logger.Warn("failed to revoke session", "user_id", userID, "error", err)
		return err
	}

	return nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to get user by id", "user_id", id, "error", err)
		return domain.User{}, err
	}

	u.Password = ""
	return u, nil
}
