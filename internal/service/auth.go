package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendorrs/backend/internal/dberr"
	"github.com/vendorrs/backend/internal/errs"
	"github.com/vendorrs/backend/internal/lib/job"
	"github.com/vendorrs/backend/internal/lib/token"
	"github.com/vendorrs/backend/internal/repository"
	"github.com/vendorrs/backend/internal/server"
)

// AuthService implements registration, login, and the password-reset
// flow.
type AuthService struct {
	server *server.Server
	users  *repository.UserRepository
}

func NewAuthService(s *server.Server, users *repository.UserRepository) *AuthService {
	return &AuthService{
		server: s,
		users:  users,
	}
}

// RegisterInput is the validated registration data handed down from
// the handler. Conditional fields are already enforced by validation:
// vendor accounts carry the business fields, center accounts a
// category.
type RegisterInput struct {
	Email        string
	Password     string
	Role         string
	BusinessName string
	PAN          string
	Phone        string
	Province     string
	District     string
	Category     string
}

// AuthResult is a signed bearer token plus the account it represents.
type AuthResult struct {
	Token string           `json:"token"`
	User  *repository.User `json:"user"`
}

// Register creates an account with a bcrypt-hashed password and issues
// a bearer token. A duplicate email surfaces as 400 via the database
// unique index rather than a racy pre-check.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &repository.User{
		Email:        input.Email,
		Password:     string(hash),
		Role:         input.Role,
		BusinessName: input.BusinessName,
		PAN:          input.PAN,
		Phone:        input.Phone,
		Province:     input.Province,
		District:     input.District,
		Category:     input.Category,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if dberr.IsDuplicateKey(err) {
			return nil, errs.NewBadRequestError("An account with this email already exists", nil)
		}
		return nil, err
	}

	return s.issueToken(user)
}

// Login verifies credentials and issues a bearer token.
//
// Unknown email and wrong password produce the identical response, so
// the endpoint cannot be used to probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	invalid := errs.NewBadRequestError("Invalid credentials", nil)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, invalid
	}

	return s.issueToken(user)
}

// CurrentUser loads the profile of the authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*repository.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Unauthorized")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, errs.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

// ForgotPassword starts the reset flow: generate a single-use token,
// store only its hash, and enqueue the email delivery job.
//
// An unknown email returns success without doing anything, so the
// endpoint does not reveal which addresses exist. The rate limiter on
// this route class bounds abuse.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if dberr.IsNotFound(err) {
			s.server.Logger.Info().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	resetToken := hex.EncodeToString(raw)

	expires := time.Now().UTC().Add(time.Duration(s.server.Config.Auth.ResetTokenTTLMinutes) * time.Minute)
	if err := s.users.SetResetToken(ctx, user.ID, hashResetToken(resetToken), expires); err != nil {
		return err
	}

	task, err := job.NewPasswordResetEmailTask(user.Email, resetToken)
	if err != nil {
		return err
	}
	if _, err := s.server.Job.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue password reset email: %w", err)
	}

	return nil
}

// ResetPassword completes the flow: the presented token must hash to a
// stored, unexpired value. The password update clears the token, so a
// token works exactly once.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, password string) error {
	user, err := s.users.FindByResetToken(ctx, hashResetToken(resetToken))
	if err != nil {
		if dberr.IsNotFound(err) {
			return errs.NewBadRequestError("Invalid or expired reset token", nil)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}

func (s *AuthService) issueToken(user *repository.User) (*AuthResult, error) {
	ttl := time.Duration(s.server.Config.Auth.TokenTTLHours) * time.Hour

	signed, err := token.Sign(s.server.Config.Auth.SecretKey, user.ID.Hex(), user.Role, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &AuthResult{Token: signed, User: user}, nil
}

// hashResetToken stores reset tokens hashed, so a database leak does
// not hand out valid reset links.
func hashResetToken(t string) string {
	sum := sha256.Sum256([]byte(t))
	return hex.EncodeToString(sum[:])
}
