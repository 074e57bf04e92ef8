package service

import (
	"context"
	"testing"
	"time"

	"job_portal/internal/model"
	"job_portal/internal/repository"
	"job_portal/internal/utils"

	"github.com/stretchr/testify/require"
)

func newTestAuth(store repository.Store) AuthService {
	return NewAuthService(store, utils.NewJWTUtil("test-secret", time.Hour))
}

func registerUser(t *testing.T, auth AuthService, email, role string) *model.User {
	t.Helper()
	user, err := auth.Register(context.Background(), model.RegisterRequest{
		Name: "User " + email, Email: email, Password: "pass1234", Confirm: "pass1234", Role: role, Company: "Acme",
	})
	require.NoError(t, err)
	return user
}
