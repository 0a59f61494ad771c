package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"recipebook/internal/models"
	"recipebook/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidEmail is returned when an email has no usable local part.
	ErrInvalidEmail = errors.New("user must have a valid email")
	// ErrEmailTaken is returned when the normalized email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned for any login failure. It never
	// reveals whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles user accounts, credential verification and JWT
// issuance.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// NormalizeEmail canonicalizes an email address: all spaces are removed
// from the local part, and the domain is lower-cased with spaces
// removed. An email without exactly one "@" or with an empty local part
// after normalization is rejected.
func NormalizeEmail(email string) (string, error) {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "", ErrInvalidEmail
	}
	local := strings.ReplaceAll(parts[0], " ", "")
	domain := strings.ToLower(strings.ReplaceAll(parts[1], " ", ""))
	if local == "" {
		return "", ErrInvalidEmail
	}
	return local + "@" + domain, nil
}

// RegisterUser creates a regular account with a normalized email and a
// bcrypt-hashed password.
func (s *AuthService) RegisterUser(email, password, name string) (*models.User, error) {
	return s.createUser(email, password, name, false, false)
}

// CreateSuperuser creates an account with the staff and superuser flags
// forced on.
func (s *AuthService) CreateSuperuser(email, password, name string) (*models.User, error) {
	return s.createUser(email, password, name, true, true)
}

func (s *AuthService) createUser(email, password, name string, isStaff, isSuperuser bool) (*models.User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(normalized); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:       normalized,
		Name:        name,
		Password:    string(hashedPassword),
		IsActive:    true,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates a user and returns a JWT token if successful.
func (s *AuthService) LoginUser(email, password string) (string, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// GetProfile returns the account for the given user ID.
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// ProfileUpdateInput carries the profile fields a user may change about
// themselves. Nil fields are left untouched; email is immutable here.
type ProfileUpdateInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password" validate:"omitempty,min=5"`
}

// UpdateProfile patches the user's own name and/or password.
func (s *AuthService) UpdateProfile(userID uint, input ProfileUpdateInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}
