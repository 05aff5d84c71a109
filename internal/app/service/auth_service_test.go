package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinocave/vinocave-backend/config"
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/internal/db"
	"github.com/vinocave/vinocave-backend/pkg/util"
)

func setupAuthTest(t *testing.T) AuthService {
	t.Helper()

	database, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(database) })

	jwtCfg := config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}
	return NewAuthService(repository.NewUserRepository(database), jwtCfg)
}

func registerTestUser(t *testing.T, svc AuthService, email string) *model.User {
	t.Helper()

	user, _, err := svc.Register(model.RegisterRequest{
		Email:       email,
		Password:    "motdepasse123",
		DisplayName: "Camille",
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	svc := setupAuthTest(t)

	t.Run("creates the user and issues tokens", func(t *testing.T) {
		user, tokens, err := svc.Register(model.RegisterRequest{
			Email:       "camille@example.com",
			Password:    "motdepasse123",
			DisplayName: "Camille",
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "fr", user.PreferredLanguage)
		assert.Equal(t, model.RoleUser, user.Role)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("normalizes the email", func(t *testing.T) {
		user, _, err := svc.Register(model.RegisterRequest{
			Email:       "  Camille2@Example.COM ",
			Password:    "motdepasse123",
			DisplayName: "Camille",
		})
		require.NoError(t, err)
		assert.Equal(t, "camille2@example.com", user.Email)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		_, _, err := svc.Register(model.RegisterRequest{
			Email:       "camille@example.com",
			Password:    "autremotdepasse",
			DisplayName: "Imposteur",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	svc := setupAuthTest(t)
	registerTestUser(t, svc, "camille@example.com")

	t.Run("valid credentials issue tokens", func(t *testing.T) {
		user, tokens, err := svc.Login(model.LoginRequest{
			Email:    "camille@example.com",
			Password: "motdepasse123",
		})
		require.NoError(t, err)
		assert.Equal(t, "camille@example.com", user.Email)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, _, err := svc.Login(model.LoginRequest{
			Email:    "camille@example.com",
			Password: "mauvais",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gets the same error as a wrong password", func(t *testing.T) {
		_, _, err := svc.Login(model.LoginRequest{
			Email:    "inconnu@example.com",
			Password: "motdepasse123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	svc := setupAuthTest(t)
	registerTestUser(t, svc, "camille@example.com")

	_, tokens, err := svc.Login(model.LoginRequest{
		Email:    "camille@example.com",
		Password: "motdepasse123",
	})
	require.NoError(t, err)

	t.Run("valid refresh token issues a new pair", func(t *testing.T) {
		refreshed, err := svc.RefreshToken(tokens.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEmpty(t, refreshed.RefreshToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := svc.RefreshToken("pas-un-jeton")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfile(t *testing.T) {
	svc := setupAuthTest(t)
	user := registerTestUser(t, svc, "camille@example.com")

	t.Run("updates display name and language", func(t *testing.T) {
		name := "Camille D."
		lang := "en"
		updated, err := svc.UpdateProfile(user.ID, model.UpdateProfileRequest{
			DisplayName:       &name,
			PreferredLanguage: &lang,
		})
		require.NoError(t, err)
		assert.Equal(t, "Camille D.", updated.DisplayName)
		assert.Equal(t, "en", updated.PreferredLanguage)
	})

	t.Run("rejects an unsupported language", func(t *testing.T) {
		lang := "de"
		_, err := svc.UpdateProfile(user.ID, model.UpdateProfileRequest{
			PreferredLanguage: &lang,
		})
		assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		name := "Personne"
		_, err := svc.UpdateProfile(99999, model.UpdateProfileRequest{DisplayName: &name})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestChangePassword(t *testing.T) {
	svc := setupAuthTest(t)
	user := registerTestUser(t, svc, "camille@example.com")

	t.Run("requires the current password", func(t *testing.T) {
		err := svc.ChangePassword(user.ID, model.ChangePasswordRequest{
			CurrentPassword: "mauvais",
			NewPassword:     "nouveaumotdepasse",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("changes the password", func(t *testing.T) {
		err := svc.ChangePassword(user.ID, model.ChangePasswordRequest{
			CurrentPassword: "motdepasse123",
			NewPassword:     "nouveaumotdepasse",
		})
		require.NoError(t, err)

		_, _, err = svc.Login(model.LoginRequest{
			Email:    "camille@example.com",
			Password: "nouveaumotdepasse",
		})
		assert.NoError(t, err)
	})
}
