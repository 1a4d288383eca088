package services

import (
	"context"
	"time"

	"github.com/DivyaDarni/ShopSmart/apperrors"
	"github.com/DivyaDarni/ShopSmart/models"
	"github.com/DivyaDarni/ShopSmart/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 24 * time.Hour

// AuthService handles registration, login and token issuance.
type AuthService struct {
	users     repository.UserRepository
	jwtSecret []byte
}

func NewAuthService(users repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(jwtSecret)}
}

// Register creates a customer account. Administrators are provisioned out
// of band (seed tool), never through this endpoint.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, *apperrors.Error) {
	if len(password) < 6 {
		return nil, apperrors.New(400, "Password must be at least 6 characters", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.New(500, "Failed to hash password", err)
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleCustomer,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, apperrors.FromStorage(err, "User")
	}

	zap.L().Info("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, *apperrors.Error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Same response for unknown email and wrong password.
		return "", nil, apperrors.New(401, "Invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.New(401, "Invalid email or password", nil)
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, apperrors.New(500, "Failed to generate token", err)
	}
	return token, user, nil
}

// GetUser loads a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, *apperrors.Error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromStorage(err, "User")
	}
	return user, nil
}

// generateJWT issues an HS256 token with user ID, name and role claims.
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"role":    string(user.Role),
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
