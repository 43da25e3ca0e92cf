package services

import (
	"testing"

	"botvance_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpProvisionsProfileAndSubscription(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	user, err := auth.SignUp(models.UserRegister{
		Email:    uniqueEmail(t),
		Password: "secret123",
		Nome:     "Maria Silva",
		Telefone: "5511988887777",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	var profile models.Profile
	require.NoError(t, db.First(&profile, user.ID).Error)
	assert.Equal(t, "Maria Silva", profile.Nome)
	assert.Equal(t, "5511988887777", profile.Telefone)

	var sub models.Subscription
	require.NoError(t, db.First(&sub, user.ID).Error)
	assert.False(t, sub.Subscription)
	assert.Equal(t, 0, sub.NumberWorkflows)
}

func TestSignUpRetryIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	req := models.UserRegister{
		Email:    uniqueEmail(t),
		Password: "secret123",
		Nome:     "Maria Silva",
		Telefone: "5511988887777",
	}

	first, err := auth.SignUp(req)
	require.NoError(t, err)

	// Same credentials again: the dropped-response retry path.
	second, err := auth.SignUp(req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var profileCount, subCount int64
	require.NoError(t, db.Model(&models.Profile{}).Count(&profileCount).Error)
	require.NoError(t, db.Model(&models.Subscription{}).Count(&subCount).Error)
	assert.Equal(t, int64(1), profileCount)
	assert.Equal(t, int64(1), subCount)
}

func TestSignUpRejectsTakenEmailWithDifferentPassword(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	email := uniqueEmail(t)
	_, err := auth.SignUp(models.UserRegister{Email: email, Password: "secret123"})
	require.NoError(t, err)

	_, err = auth.SignUp(models.UserRegister{Email: email, Password: "different"})
	assert.EqualError(t, err, "email already registered")
}

func TestLoginAndValidateToken(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	email := uniqueEmail(t)
	user, err := auth.SignUp(models.UserRegister{Email: email, Password: "secret123"})
	require.NoError(t, err)

	token, resp, err := auth.Login(models.UserLogin{Email: email, Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, email, claims.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	email := uniqueEmail(t)
	_, err := auth.SignUp(models.UserRegister{Email: email, Password: "secret123"})
	require.NoError(t, err)

	_, _, err = auth.Login(models.UserLogin{Email: email, Password: "wrong"})
	assert.EqualError(t, err, "invalid email or password")
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestGetAccountWithoutSubscriptionRow(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)

	userID := seedUser(t, db, uniqueEmail(t))
	require.NoError(t, db.Delete(&models.Subscription{}, userID).Error)

	account, err := auth.GetAccount(userID)
	require.NoError(t, err)
	require.NotNil(t, account.Profile)
	assert.Nil(t, account.Subscription)
}
