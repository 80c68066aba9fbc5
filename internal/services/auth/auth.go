package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type UsersStorage interface {
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	log          *slog.Logger
	storage      UsersStorage
	Tokens       *TokenManager
	mailer       MailProvider
	taskExecutor TaskExecutor
	bcryptCost   int
}

// New builds the service. mailer may be nil, in which case no welcome
// emails are sent.
func New(
	log *slog.Logger,
	storage UsersStorage,
	tokens *TokenManager,
	mailer MailProvider,
	taskExecutor TaskExecutor,
) *AuthService {
	return &AuthService{
		log:          log,
		storage:      storage,
		Tokens:       tokens,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		bcryptCost:   bcrypt.DefaultCost,
	}
}

type SignupParams struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

func (a *AuthService) sendWelcomeEmail(user *models.User) {
	log := a.log.With("op", "auth.AuthService.sendWelcomeEmail", "user_id", user.ID)
	log.Info("sending welcome email")
	err := a.mailer.Send(user.Email, "user_welcome.html", map[string]any{
		"name":   user.Name,
		"userID": user.ID.String(),
	})
	if err != nil {
		log.Error("Error sending welcome email", "errMsg", err.Error())
	}
}

// Signup registers the user and returns it together with its auth token.
func (a *AuthService) Signup(ctx context.Context, params SignupParams) (*models.User, string, error) {
	const op = "auth.AuthService.Signup"
	log := a.log.With("op", op, "email", params.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.bcryptCost)
	if err != nil {
		log.Error("Error hashing password", "errMsg", err.Error())
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user, err := a.storage.Insert(ctx, &models.User{
		Name:         params.Name,
		Email:        strings.ToLower(params.Email),
		PasswordHash: hash,
		IsAdmin:      params.IsAdmin,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("user already exists")
			return nil, "", ErrUserAlreadyExists
		}
		log.Error(err.Error())
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := a.Tokens.Issue(user)
	if err != nil {
		log.Error("Error issuing token", "errMsg", err.Error())
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if a.mailer != nil && a.taskExecutor != nil {
		a.taskExecutor.Add(func() { a.sendWelcomeEmail(user) })
	}
	return user, token, nil
}

func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "email", email)
	user, err := a.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return "", ErrInvalidCredentials
		}
		log.Error(err.Error())
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return "", ErrInvalidCredentials
	}
	return a.Tokens.Issue(user)
}

func (a *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "auth.AuthService.GetUser"
	log := a.log.With("op", op, "id", id)
	user, err := a.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
