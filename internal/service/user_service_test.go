package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickdesk/quickdesk/internal/repository"
)

func TestCreateUserHashesPassword(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository())

	user, err := svc.CreateUser(context.Background(), "ada", "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository())
	_, err := svc.CreateUser(context.Background(), "ada", "one")
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), "ada", "two")

	assert.Equal(t, 409, domainErr(t, err).HTTPStatus)
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository())

	_, err := svc.CreateUser(context.Background(), "  ", "")

	de := domainErr(t, err)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Len(t, de.Fields, 2)
}

func TestGetUserByUsername(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository())
	created, err := svc.CreateUser(context.Background(), "ada", "pw")
	require.NoError(t, err)

	found, err := svc.GetUserByUsername(context.Background(), "ada")

	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestGetUserUnknown(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository())

	_, err := svc.GetUser(context.Background(), "no-such-id")

	assert.Equal(t, 404, domainErr(t, err).HTTPStatus)
}
