package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/patient-booking/internal/api/dto"
	"github.com/spec-kit/patient-booking/internal/config"
	"github.com/spec-kit/patient-booking/internal/domain"
	"github.com/spec-kit/patient-booking/internal/repository"
	apperrors "github.com/spec-kit/patient-booking/pkg/util/errorutil"
)

// fakeAccountRepo is an in-memory AccountRepository that records calls and
// enforces the email unique constraint the way the real table does.
type fakeAccountRepo struct {
	accounts []domain.Account
	nextID   int64
	calls    []string

	getByEmailErr error
	getByNameErr  error
	createErr     error
	listErr       error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{nextID: 1}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	f.calls = append(f.calls, "Create")
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.accounts {
		if existing.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	account.ID = f.nextID
	f.nextID++
	f.accounts = append(f.accounts, *account)
	return nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	f.calls = append(f.calls, "GetByEmail")
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	for i := range f.accounts {
		if f.accounts[i].Email == email {
			account := f.accounts[i]
			return &account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountRepo) GetByName(_ context.Context, firstName, lastName string) (*domain.Account, error) {
	f.calls = append(f.calls, "GetByName")
	if f.getByNameErr != nil {
		return nil, f.getByNameErr
	}
	for i := range f.accounts {
		if f.accounts[i].FirstName == firstName && f.accounts[i].LastName == lastName {
			account := f.accounts[i]
			return &account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAccountRepo) List(_ context.Context) ([]domain.Account, error) {
	f.calls = append(f.calls, "List")
	if f.listErr != nil {
		return nil, f.listErr
	}
	result := make([]domain.Account, 0, len(f.accounts))
	for _, account := range f.accounts {
		// the real query projects the hash out
		account.PasswordHash = ""
		result = append(result, account)
	}
	return result, nil
}

func newAccountService(repo repository.AccountRepository) *AccountService {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 5
	cfg.Auth.BcryptCost = bcrypt.MinCost
	return NewAccountService(cfg, AccountDependencies{
		AccountRepo: repo,
		Logger:      zap.NewNop(),
	})
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@x.com",
		Password:  "secret1",
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates account with hashed password", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		svc := newAccountService(repo)

		account, err := svc.Register(context.Background(), validRegister())
		require.NoError(t, err)

		assert.Equal(t, int64(1), account.ID)
		assert.Equal(t, "Ann", account.FirstName)
		assert.Equal(t, "Lee", account.LastName)
		assert.Equal(t, "ann@x.com", account.Email)
		assert.NotEqual(t, "secret1", account.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret1")))
	})

	t.Run("rejects duplicate email without mutating", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		svc := newAccountService(repo)

		_, err := svc.Register(context.Background(), validRegister())
		require.NoError(t, err)

		second := validRegister()
		second.FirstName = "Other"
		second.LastName = "Person"
		_, err = svc.Register(context.Background(), second)

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Equal(t, MsgEmailExists, domainErr.Message)
		assert.Len(t, repo.accounts, 1)
	})

	t.Run("repeat of identical call deterministically conflicts", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		svc := newAccountService(repo)

		_, err := svc.Register(context.Background(), validRegister())
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = svc.Register(context.Background(), validRegister())
			domainErr := apperrors.ToDomainError(err)
			require.NotNil(t, domainErr)
			assert.Equal(t, MsgEmailExists, domainErr.Message)
		}
		assert.Len(t, repo.accounts, 1)
	})

	t.Run("rejects duplicate name pair even with fresh email", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		svc := newAccountService(repo)

		_, err := svc.Register(context.Background(), validRegister())
		require.NoError(t, err)

		second := validRegister()
		second.Email = "ann2@x.com"
		_, err = svc.Register(context.Background(), second)

		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Equal(t, MsgNameExists, domainErr.Message)
		assert.Len(t, repo.accounts, 1)
	})

	t.Run("validation failures never touch the store", func(t *testing.T) {
		t.Parallel()
		cases := map[string]dto.RegisterRequest{
			"short password":  {FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Password: "abc"},
			"missing names":   {Email: "ann@x.com", Password: "secret1"},
			"malformed email": {FirstName: "Ann", LastName: "Lee", Email: "not-an-email", Password: "secret1"},
		}
		for name, input := range cases {
			input := input
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				repo := newFakeAccountRepo()
				svc := newAccountService(repo)

				_, err := svc.Register(context.Background(), input)
				domainErr := apperrors.ToDomainError(err)
				require.NotNil(t, domainErr)
				assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
				assert.Empty(t, repo.calls)
			})
		}
	})

	t.Run("collects every violated field", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		svc := newAccountService(repo)

		_, err := svc.Register(context.Background(), dto.RegisterRequest{Password: "abc"})
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)

		assert.Equal(t, "Please enter your first name", domainErr.Details["firstName"])
		assert.Equal(t, "Please enter your last name", domainErr.Details["lastName"])
		assert.Equal(t, "Email is required", domainErr.Details["email"])
		assert.Equal(t, "Password must be at least 6 characters long", domainErr.Details["password"])
	})

	t.Run("store outage downgrades to internal error", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		repo.getByEmailErr = errors.New("connection refused")
		svc := newAccountService(repo)

		_, err := svc.Register(context.Background(), validRegister())
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	})

	t.Run("insert-time unique violation maps to email conflict", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		repo.createErr = repository.ErrDuplicateEmail
		svc := newAccountService(repo)

		_, err := svc.Register(context.Background(), validRegister())
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Equal(t, MsgEmailExists, domainErr.Message)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("issues session token for valid credentials", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		svc := newAccountService(repo)

		_, err := svc.Register(context.Background(), validRegister())
		require.NoError(t, err)

		account, token, exp, err := svc.Authenticate(context.Background(), "ann@x.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.False(t, exp.IsZero())

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, account.Email, claims.Email)
		assert.Equal(t, "Ann", claims.FirstName)
		assert.Equal(t, "Lee", claims.LastName)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		svc := newAccountService(repo)

		_, err := svc.Register(context.Background(), validRegister())
		require.NoError(t, err)

		_, _, _, err = svc.Authenticate(context.Background(), "ann@x.com", "wrong")
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		svc := newAccountService(repo)

		_, _, _, err := svc.Authenticate(context.Background(), "nobody@x.com", "secret1")
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
		assert.Equal(t, "invalid credentials", domainErr.Message)
	})
}

func TestList(t *testing.T) {
	t.Parallel()

	t.Run("returns accounts without password hashes", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		svc := newAccountService(repo)

		_, err := svc.Register(context.Background(), validRegister())
		require.NoError(t, err)

		accounts, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Empty(t, accounts[0].PasswordHash)
	})

	t.Run("store failure surfaces as internal error", func(t *testing.T) {
		t.Parallel()
		repo := newFakeAccountRepo()
		repo.listErr = errors.New("relation does not exist")
		svc := newAccountService(repo)

		_, err := svc.List(context.Background())
		domainErr := apperrors.ToDomainError(err)
		require.NotNil(t, domainErr)
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	})
}
