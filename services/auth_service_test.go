package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/DivyaDarni/ShopSmart/apperrors"
	"github.com/DivyaDarni/ShopSmart/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeUserRepo struct {
	users map[string]*models.User // keyed by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Insert(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			// Same shape the driver reports for a unique index violation.
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) FindByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		if u.Role == role {
			copied := *u
			copied.Password = ""
			out = append(out, copied)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	user, appErr := svc.Register(context.Background(), "Demo Customer", "customer@demo.com", "password123")
	require.Nil(t, appErr)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "password123", user.Password, "password must be stored hashed")

	token, logged, appErr := svc.Login(context.Background(), "customer@demo.com", "password123")
	require.Nil(t, appErr)
	assert.Equal(t, user.ID, logged.ID)
	require.NotEmpty(t, token)

	// Token carries the identity claims the middleware relies on.
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, "customer", claims["role"])
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	_, appErr := svc.Register(context.Background(), "Demo", "demo@demo.com", "12345")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	_, appErr := svc.Register(context.Background(), "Demo", "demo@demo.com", "password123")
	require.Nil(t, appErr)

	_, appErr = svc.Register(context.Background(), "Other", "demo@demo.com", "password456")
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrDuplicateEmail, appErr)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	_, appErr := svc.Register(context.Background(), "Demo", "demo@demo.com", "password123")
	require.Nil(t, appErr)

	_, _, unknownEmail := svc.Login(context.Background(), "nobody@demo.com", "password123")
	require.NotNil(t, unknownEmail)
	_, _, wrongPassword := svc.Login(context.Background(), "demo@demo.com", "wrong-password")
	require.NotNil(t, wrongPassword)

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, unknownEmail.Message, wrongPassword.Message)
}

func TestGetUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecret)

	user, appErr := svc.Register(context.Background(), "Demo", "demo@demo.com", "password123")
	require.Nil(t, appErr)

	got, appErr := svc.GetUser(context.Background(), user.ID)
	require.Nil(t, appErr)
	assert.Equal(t, "demo@demo.com", got.Email)

	_, appErr = svc.GetUser(context.Background(), "missing-id")
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}
