package service

import (
	"regexp"
	"time"

	"github.com/finman-2025/finman-backend/internal/models"
	"github.com/finman-2025/finman-backend/internal/repository"
	"github.com/finman-2025/finman-backend/internal/util"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// TokenPair is the access/refresh token pair issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService handles registration, login and the token lifecycle. The
// current refresh token is stored on the user row and cleared on logout.
type AuthService struct {
	users      *repository.UserRepository
	secret     string
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users *repository.UserRepository, secret, issuer string, accessTTL, refreshTTL time.Duration) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		secret:     secret,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// strongPassword: 8-32 characters with upper, lower and digit.
func strongPassword(pwd string) bool {
	if len(pwd) < 8 || len(pwd) > 32 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range pwd {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(username, password, name, email string) (*models.User, error) {
	if !usernameRe.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if !strongPassword(password) {
		return nil, ErrWeakPassword
	}

	if _, err := s.users.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Email:        email,
	}
	if err := s.users.Create(user); err != nil {
		if err == repository.ErrDuplicateEntry {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": username}).
		Info("user registered")
	return user, nil
}

// Login verifies credentials and issues a fresh token pair. The refresh
// token replaces whatever was stored on the user row.
func (s *AuthService) Login(username, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil, ErrWrongCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		logrus.WithField("username", username).Warn("login failed: bad password")
		return nil, nil, ErrWrongCredentials
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.users.Update(user.ID, map[string]interface{}{"refresh_token": pair.RefreshToken}); err != nil {
		return nil, nil, err
	}

	logrus.WithField("user_id", user.ID).Info("user logged in")
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The token
// must both verify and match the one stored for the user.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := util.ParseToken(s.secret, util.TokenRefresh, refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, ErrInvalidToken
	}

	access, err := util.GenerateToken(s.secret, s.issuer, util.TokenAccess, user.ID, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

// Logout invalidates the stored refresh token.
func (s *AuthService) Logout(userID uint) error {
	return s.users.Update(userID, map[string]interface{}{"refresh_token": ""})
}

// ChangePassword verifies the old password before setting the new one.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return ErrUserNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrWrongCredentials
	}
	if !strongPassword(newPassword) {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.users.Update(userID, map[string]interface{}{"password_hash": string(hash)})
}

func (s *AuthService) issuePair(userID uint) (*TokenPair, error) {
	access, err := util.GenerateToken(s.secret, s.issuer, util.TokenAccess, userID, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := util.GenerateToken(s.secret, s.issuer, util.TokenRefresh, userID, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
