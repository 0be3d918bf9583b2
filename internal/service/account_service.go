package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/patient-booking/internal/api/dto"
	"github.com/spec-kit/patient-booking/internal/auth"
	"github.com/spec-kit/patient-booking/internal/config"
	"github.com/spec-kit/patient-booking/internal/domain"
	"github.com/spec-kit/patient-booking/internal/events"
	"github.com/spec-kit/patient-booking/internal/repository"
	"github.com/spec-kit/patient-booking/internal/validation"
	apperrors "github.com/spec-kit/patient-booking/pkg/util/errorutil"
)

// Conflict and status messages surfaced to clients.
const (
	MsgEmailExists  = "Email already exists"
	MsgNameExists   = "This name combination already exists"
	MsgUserCreated  = "User created successfully"
	MsgCreateFailed = "User creation failed"
	MsgListFailed   = "Failed to fetch users"
)

// AccountService coordinates registration, login and listing flows.
type AccountService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	validator  *validation.Validator
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// AccountDependencies encapsulates collaborator requirements.
type AccountDependencies struct {
	AccountRepo repository.AccountRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	v := validation.New().WithMessages(map[string]string{
		"firstName.required": "Please enter your first name",
		"lastName.required":  "Please enter your last name",
		"email.required":     "Email is required",
		"email.email":        "Invalid email",
		"password.required":  "Password must be at least 6 characters long",
		"password.min":       "Password must be at least 6 characters long",
	})

	return &AccountService{
		accounts:   deps.AccountRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		validator:  v,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     deps.Logger,
	}
}

// Register creates a new patient account. The flow is strictly
// validate, check email, check name, hash, insert; nothing is written before
// the last step, so any earlier failure leaves no partial state. The unique
// constraint on email is the authoritative guard for the check-then-insert
// race; the lookups are a fast path.
func (s *AccountService) Register(ctx context.Context, input dto.RegisterRequest) (*domain.Account, error) {
	if errs := s.validator.Struct(input); errs != nil {
		return nil, apperrors.NewValidationError("validation failed", errs.Details())
	}

	if _, err := s.accounts.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict(MsgEmailExists, nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	if _, err := s.accounts.GetByName(ctx, input.FirstName, input.LastName); err == nil {
		return nil, apperrors.NewConflict(MsgNameExists, nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict(MsgEmailExists, nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type: events.EventAccountRegistered,
		Payload: events.AccountRegisteredPayload{
			AccountID: account.ID,
			Email:     account.Email,
			FirstName: account.FirstName,
			LastName:  account.LastName,
		},
	})

	return account, nil
}

// List returns all accounts. The repository projection excludes the password
// hash, so nothing downstream can leak it.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		s.logger.Error("account listing failed", zap.Error(err))
		return nil, apperrors.NewInternalError(err)
	}
	return accounts, nil
}

// Authenticate verifies credentials and issues a session token. Unknown
// email and wrong password produce the same generic failure.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return account, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, event)
}
