package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/wellness-app/internal/domain"
	"alcyxob/wellness-app/internal/repository"
	"alcyxob/wellness-app/internal/session"
	"alcyxob/wellness-app/internal/validation"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordCost is the bcrypt cost used for every stored password.
	PasswordCost = 10

	signupProgressNote = "Initial measurements from signup"
)

// SignupResult is everything created by a successful registration.
type SignupResult struct {
	Token           string
	User            *domain.User
	InitialProgress *domain.Progress
}

// AuthService registers users and manages their access tokens.
type AuthService interface {
	Signup(ctx context.Context, in *validation.SignupInput) (*SignupResult, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// Logout revokes tokenString until it would have expired. Tokens that no
	// longer verify are ignored.
	Logout(ctx context.Context, tokenString string) error
	// Authenticate verifies tokenString and loads the user it was issued to.
	Authenticate(ctx context.Context, tokenString string) (*domain.User, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo repository.UserRepository
	progress ProgressService
	tokens   *TokenManager
	denylist session.Denylist
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, progress ProgressService, tokens *TokenManager, denylist session.Denylist, log logrus.FieldLogger) AuthService {
	return &authService{
		userRepo: userRepo,
		progress: progress,
		tokens:   tokens,
		denylist: denylist,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Signup stores the stable profile fields on the user, then records weight and
// measurements as the first progress snapshot.
func (s *authService) Signup(ctx context.Context, in *validation.SignupInput) (*SignupResult, error) {
	// 1. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	// 2. Create the user (only stable fields)
	now := s.now()
	user := &domain.User{
		Name:         in.Name,
		EmailID:      in.EmailID,
		PasswordHash: string(hashedPassword),
		DOB:          in.DOB,
		PhotoURL:     in.PhotoURL,
		Height:       in.Height,
		ResetPlan:    domain.ResetPlan{StartDate: &now},
	}
	if user.PhotoURL == "" {
		user.PhotoURL = domain.DefaultPhotoURL
	}
	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflict("User with this email already exists")
		}
		return nil, err
	}
	user.ID = userID

	// 3. Initial progress entry
	avatar := domain.DefaultPhotoURL
	initial, err := s.progress.AppendSnapshot(ctx, userID, Snapshot{
		Date:         now,
		Weight:       in.Weight,
		Measurements: in.Measurements.ToDomain(),
		PhotoURL:     &avatar,
		Notes:        signupProgressNote,
	})
	if err != nil {
		// Undo the half-finished registration so the email can be used again.
		if delErr := s.userRepo.Delete(ctx, userID); delErr != nil {
			s.log.WithError(delErr).WithField("userId", userID.Hex()).Error("Failed to roll back user after signup failure")
		}
		return nil, fmt.Errorf("create initial progress: %w", err)
	}

	// 4. Generate token
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, err
	}
	return &SignupResult{Token: token, User: user, InitialProgress: initial}, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials // User not found maps to auth failure
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) Logout(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return nil
	}
	claims, err := s.tokens.Parse(tokenString)
	if err != nil || claims.ID == "" {
		return nil
	}
	ttl := s.tokens.Remaining(claims)
	if ttl <= 0 {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, ttl)
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.ID != "" {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, unauthorized("Token has been revoked")
		}
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, unauthorized("Invalid token or missing claims")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, unauthorized("User not found")
		}
		return nil, err
	}
	return user, nil
}
