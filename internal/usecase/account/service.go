package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/investhub/backend/internal/domain"
)

// ErrInvalidCredentials is returned on a failed login. It deliberately does
// not distinguish an unknown username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ResetResult is returned after a successful account reset.
type ResetResult struct {
	NewBalance decimal.Decimal `json:"newBalance"`
	Message    string          `json:"message"`
}

// AccountService handles registration, authentication, and account reset.
type AccountService struct {
	Store  domain.Store
	Logger *zap.Logger
}

// NewAccountService creates a new AccountService instance
func NewAccountService(store domain.Store, logger *zap.Logger) *AccountService {
	return &AccountService{
		Store:  store,
		Logger: logger,
	}
}

// Register creates a user with a bcrypt password hash and the fixed
// starting balance.
func (s *AccountService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, &domain.ValidationError{Field: "username", Message: "username must be specified"}
	}
	if password == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "password must be specified"}
	}

	if _, err := s.Store.Users().GetByUsername(ctx, username); err == nil {
		return nil, &domain.AlreadyExistsError{Resource: "User", Identifier: username}
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(username, string(hash))
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.Store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	s.Logger.Info("user registered", zap.String("username", username))
	return user, nil
}

// Authenticate verifies a username/password pair.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.Store.Users().GetByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Reset wipes the user's holdings, transactions, and watchlist and restores
// the starting balance. All four effects apply in one atomic unit or not at
// all.
func (s *AccountService) Reset(ctx context.Context, userID uuid.UUID) (*ResetResult, error) {
	err := s.Store.Atomically(ctx, userID, func(st domain.Store) error {
		if _, err := st.Users().GetByID(ctx, userID); err != nil {
			return err
		}
		if err := st.Holdings().DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		if err := st.Transactions().DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		if err := st.Watchlist().DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		return st.Users().UpdateBalance(ctx, userID, domain.StartingBalance)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("account reset", zap.String("user_id", userID.String()))
	return &ResetResult{
		NewBalance: domain.StartingBalance,
		Message:    "Account reset successful",
	}, nil
}
