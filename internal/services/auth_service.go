package services

import (
	"errors"
	"os"
	"time"

	"botvance_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SignUp creates a user account and provisions its profile and subscription
// rows. It is safe to retry after a dropped response: an existing account with
// the same email is reused, the profile takes the update path instead of a
// second insert, and a duplicate subscription row is treated as success.
func (as *AuthService) SignUp(req models.UserRegister) (*models.UserResponse, error) {
	var user models.User
	err := as.db.Where("email = ?", req.Email).First(&user).Error
	switch {
	case err == nil:
		// Retry of a partial sign-up; the password must still match.
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return nil, errors.New("email already registered")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, hashErr
		}
		user = models.User{
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
		}
		if createErr := as.db.Create(&user).Error; createErr != nil {
			return nil, createErr
		}
	default:
		return nil, err
	}

	if err := as.upsertProfile(user.ID, req); err != nil {
		return nil, err
	}

	if err := as.createDefaultSubscription(user.ID); err != nil {
		return nil, err
	}

	return &models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// upsertProfile updates the profile row if one exists for the user, otherwise
// inserts it.
func (as *AuthService) upsertProfile(userID uint, req models.UserRegister) error {
	var profile models.Profile
	err := as.db.First(&profile, userID).Error
	switch {
	case err == nil:
		profile.Nome = req.Nome
		profile.Telefone = req.Telefone
		profile.Email = req.Email
		return as.db.Save(&profile).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = models.Profile{
			ID:       userID,
			Nome:     req.Nome,
			Telefone: req.Telefone,
			Email:    req.Email,
		}
		return as.db.Create(&profile).Error
	default:
		return err
	}
}

// createDefaultSubscription inserts the free-tier subscription row. A
// duplicate-key conflict means a prior sign-up attempt already created it,
// which counts as success.
func (as *AuthService) createDefaultSubscription(userID uint) error {
	sub := models.Subscription{
		ID:              userID,
		Subscription:    false,
		NumberWorkflows: 0,
	}
	if err := as.db.Create(&sub).Error; err != nil {
		var existing models.Subscription
		if lookupErr := as.db.First(&existing, userID).Error; lookupErr != nil {
			return err
		}
	}
	return nil
}

// Login authenticates user and returns JWT token
func (as *AuthService) Login(req models.UserLogin) (string, *models.UserResponse, error) {
	var user models.User
	if err := as.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return "", nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, errors.New("invalid email or password")
	}

	token, err := as.generateJWT(user)
	if err != nil {
		return "", nil, err
	}

	return token, &models.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// GetProfile retrieves the profile row for a user.
func (as *AuthService) GetProfile(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := as.db.First(&profile, userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a profile edit.
func (as *AuthService) UpdateProfile(userID uint, req models.ProfileUpdate) (*models.Profile, error) {
	var profile models.Profile
	if err := as.db.First(&profile, userID).Error; err != nil {
		return nil, err
	}

	profile.Nome = req.Nome
	profile.Telefone = req.Telefone
	profile.Whatsapp = req.Whatsapp
	profile.Prompt = req.Prompt

	if err := as.db.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetAccount bundles profile and subscription for the account panel. A
// missing subscription row is not an error; the panel renders it as the free
// plan.
func (as *AuthService) GetAccount(userID uint) (*models.AccountResponse, error) {
	profile, err := as.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	var sub models.Subscription
	account := &models.AccountResponse{Profile: profile}
	err = as.db.First(&sub, userID).Error
	switch {
	case err == nil:
		account.Subscription = &sub
	case errors.Is(err, gorm.ErrRecordNotFound):
		// leave nil
	default:
		return nil, err
	}
	return account, nil
}

// generateJWT creates a JWT token for the user
func (as *AuthService) generateJWT(user models.User) (string, error) {
	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // 24 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret()))
}

// ValidateToken validates JWT token and returns user claims
func (as *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret()), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// jwtSecret returns the JWT signing key from environment variable
func jwtSecret() string {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		secretKey = "botvance-super-secret-jwt-key-change-in-production" // fallback
	}
	return secretKey
}
