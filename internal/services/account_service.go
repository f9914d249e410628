package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"servicehub/internal/geo"
	"servicehub/internal/models"
)

type AccountStore interface {
	CreateAccount(ctx context.Context, a models.Account) (models.Account, error)
	GetAccountByID(ctx context.Context, id int64) (models.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (models.Account, error)
	GetAccountByLogin(ctx context.Context, login string) (models.Account, error)
	UpdateAccount(ctx context.Context, a models.Account) (models.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
}

type SessionStore interface {
	SaveSession(ctx context.Context, token string, accountID int64, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (int64, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteAccountSessions(ctx context.Context, accountID int64) error
}

type Locator interface {
	Update(ctx context.Context, accountID int64, p models.GeoPoint) error
	Remove(ctx context.Context, accountID int64) error
	Nearby(ctx context.Context, center models.GeoPoint, radiusKm float64, limit int) ([]geo.Hit, error)
}

type TokenIssuer interface {
	NewJWT(accountID int64, ttl time.Duration) (string, error)
	NewRefreshToken() (string, error)
}

type AccountService struct {
	AccountRepo AccountStore
	Sessions    SessionStore
	Locator     Locator
	Tokens      TokenIssuer
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	Log         zerolog.Logger
}

func validateCredentials(username, email, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", models.ErrInvalidArgument)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email", models.ErrInvalidArgument)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", models.ErrInvalidArgument)
	}
	return nil
}

func (s *AccountService) Register(ctx context.Context, req models.CreateAccountRequest) (models.Account, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if err := validateCredentials(username, email, req.Password); err != nil {
		return models.Account{}, err
	}

	if _, err := s.AccountRepo.GetAccountByUsername(ctx, username); err == nil {
		return models.Account{}, models.ErrDuplicateUsername
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.Account{}, err
	}
	if _, err := s.AccountRepo.GetAccountByEmail(ctx, email); err == nil {
		return models.Account{}, models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.Account{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, err
	}
	return s.AccountRepo.CreateAccount(ctx, models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
}

// Login accepts either the username or the email as login.
func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	account, err := s.AccountRepo.GetAccountByLogin(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, models.ErrNotFound) {
		return models.LoginResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.LoginResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return models.LoginResponse{}, models.ErrInvalidCredentials
	}
	return s.issueTokens(ctx, account)
}

// Refresh rotates a refresh token: the old one is revoked and a new pair is
// issued.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (models.LoginResponse, error) {
	accountID, err := s.Sessions.GetSession(ctx, refreshToken)
	if errors.Is(err, models.ErrNotFound) {
		return models.LoginResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.LoginResponse{}, err
	}
	account, err := s.AccountRepo.GetAccountByID(ctx, accountID)
	if errors.Is(err, models.ErrNotFound) {
		return models.LoginResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.LoginResponse{}, err
	}
	if err := s.Sessions.DeleteSession(ctx, refreshToken); err != nil {
		return models.LoginResponse{}, err
	}
	return s.issueTokens(ctx, account)
}

func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	return s.Sessions.DeleteSession(ctx, refreshToken)
}

func (s *AccountService) issueTokens(ctx context.Context, account models.Account) (models.LoginResponse, error) {
	access, err := s.Tokens.NewJWT(account.ID, s.AccessTTL)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.Tokens.NewRefreshToken()
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.Sessions.SaveSession(ctx, refresh, account.ID, s.RefreshTTL); err != nil {
		return models.LoginResponse{}, fmt.Errorf("save session: %w", err)
	}
	return models.LoginResponse{
		AccountID:    account.ID,
		Username:     account.Username,
		Token:        access,
		RefreshToken: refresh,
	}, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (models.Account, error) {
	return s.AccountRepo.GetAccountByID(ctx, id)
}

func (s *AccountService) UpdateAccount(ctx context.Context, callerID, id int64, req models.UpdateAccountRequest) (models.Account, error) {
	if callerID != id {
		return models.Account{}, models.ErrNotOwner
	}
	account, err := s.AccountRepo.GetAccountByID(ctx, id)
	if err != nil {
		return models.Account{}, err
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return models.Account{}, fmt.Errorf("%w: username is required", models.ErrInvalidArgument)
		}
		if username != account.Username {
			if _, err := s.AccountRepo.GetAccountByUsername(ctx, username); err == nil {
				return models.Account{}, models.ErrDuplicateUsername
			} else if !errors.Is(err, models.ErrNotFound) {
				return models.Account{}, err
			}
		}
		account.Username = username
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return models.Account{}, fmt.Errorf("%w: invalid email", models.ErrInvalidArgument)
		}
		if email != account.Email {
			if _, err := s.AccountRepo.GetAccountByEmail(ctx, email); err == nil {
				return models.Account{}, models.ErrDuplicateEmail
			} else if !errors.Is(err, models.ErrNotFound) {
				return models.Account{}, err
			}
		}
		account.Email = email
	}
	if req.Password != nil {
		if *req.Password == "" {
			return models.Account{}, fmt.Errorf("%w: password is required", models.ErrInvalidArgument)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.Account{}, err
		}
		account.PasswordHash = string(hash)
	}
	if req.Bio != nil {
		account.Bio = req.Bio
	}
	if req.Website != nil {
		account.Website = req.Website
	}
	if req.Location != nil {
		if !req.Location.Valid() {
			return models.Account{}, models.ErrInvalidLocation
		}
		account.Location = req.Location
	}

	updated, err := s.AccountRepo.UpdateAccount(ctx, account)
	if err != nil {
		return models.Account{}, err
	}
	if req.Location != nil && s.Locator != nil {
		if err := s.Locator.Update(ctx, id, *req.Location); err != nil {
			s.Log.Warn().Err(err).Int64("account_id", id).Msg("geo index update failed")
		}
	}
	return updated, nil
}

// DeleteAccount removes the account with its services, reviews and hashtag
// links, then drops its geo entry and sessions.
func (s *AccountService) DeleteAccount(ctx context.Context, callerID, id int64) error {
	if callerID != id {
		return models.ErrNotOwner
	}
	if err := s.AccountRepo.DeleteAccount(ctx, id); err != nil {
		return err
	}
	if s.Locator != nil {
		if err := s.Locator.Remove(ctx, id); err != nil {
			s.Log.Warn().Err(err).Int64("account_id", id).Msg("geo index cleanup failed")
		}
	}
	if err := s.Sessions.DeleteAccountSessions(ctx, id); err != nil {
		s.Log.Warn().Err(err).Int64("account_id", id).Msg("session cleanup failed")
	}
	return nil
}

// Nearby lists accounts within radiusKm of center, closest first.
func (s *AccountService) Nearby(ctx context.Context, center models.GeoPoint, radiusKm float64) ([]models.NearbyAccount, error) {
	if !center.Valid() || radiusKm <= 0 {
		return nil, models.ErrInvalidLocation
	}
	hits, err := s.Locator.Nearby(ctx, center, radiusKm, 0)
	if err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}

	out := make([]models.NearbyAccount, 0, len(hits))
	for _, hit := range hits {
		account, err := s.AccountRepo.GetAccountByID(ctx, hit.AccountID)
		if errors.Is(err, models.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if account.Location == nil {
			continue
		}
		out = append(out, models.NearbyAccount{
			AccountSummary: models.AccountSummary{ID: account.ID, Username: account.Username, Email: account.Email},
			Location:       *account.Location,
			DistanceKm:     geo.DistanceKm(center, *account.Location),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}
