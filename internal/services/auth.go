// Package services contains the application services of trace diary: the
// authentication state machine over the stored credential and the secret
// cache, and the diary persistence coordinator driving the encrypt/decrypt
// path.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tracediary/internal/common"
	"github.com/dmitrijs2005/tracediary/internal/cryptox"
	"github.com/dmitrijs2005/tracediary/internal/dbx"
	"github.com/dmitrijs2005/tracediary/internal/keyringx"
	"github.com/dmitrijs2005/tracediary/internal/logging"
	"github.com/dmitrijs2005/tracediary/internal/policy"
	"github.com/dmitrijs2005/tracediary/internal/repositories/settings"
)

// StalenessWindow is how long a successful verification is trusted before
// the status query asks for re-verification. The state is derived from
// now - last_verified_at on every query, never stored.
const StalenessWindow = 7 * 24 * time.Hour

// Status reports whether a password exists and whether re-verification is
// due. NeedsVerify is always false while no password is set.
type Status struct {
	PasswordSet bool
	NeedsVerify bool
}

// AuthService manages the password credential and the cached master key.
//
// Contract:
//   - Status: derived state from the stored credential and timestamps.
//   - SetPassword: policy check, hash, fresh-salt key derivation, cache the
//     key, persist hash+salt+timestamps together.
//   - VerifyPassword: check against the stored hash; on success re-derive
//     the key from the stored salt, re-cache it and refresh
//     last_verified_at. On failure nothing changes and the secret cache is
//     never touched.
type AuthService interface {
	Status(ctx context.Context) (Status, error)
	SetPassword(ctx context.Context, password string) error
	VerifyPassword(ctx context.Context, password string) error
}

type authService struct {
	db    *sql.DB
	cache keyringx.Cache
	log   logging.Logger
	now   func() time.Time
}

// NewAuthService constructs an AuthService over the settings store and the
// OS secret cache.
func NewAuthService(db *sql.DB, cache keyringx.Cache, log logging.Logger) AuthService {
	return &authService{db: db, cache: cache, log: log, now: time.Now}
}

func (a *authService) Status(ctx context.Context) (Status, error) {
	repo := settings.NewSQLiteRepository(a.db)

	_, err := repo.Get(ctx, settings.KeyPasswordHash)
	if errors.Is(err, common.ErrNotFound) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to read credential: %w", err)
	}

	st := Status{PasswordSet: true}

	lastVerified, err := repo.Get(ctx, settings.KeyLastVerifiedAt)
	if errors.Is(err, common.ErrNotFound) {
		st.NeedsVerify = true
		return st, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to read verification time: %w", err)
	}

	ts, err := strconv.ParseInt(lastVerified, 10, 64)
	if err != nil {
		return Status{}, fmt.Errorf("%w: malformed last_verified_at: %v", common.ErrCorruptedRecord, err)
	}
	if a.now().Unix()-ts > int64(StalenessWindow/time.Second) {
		st.NeedsVerify = true
	}
	return st, nil
}

func (a *authService) SetPassword(ctx context.Context, password string) error {
	if err := policy.Validate(password); err != nil {
		return err
	}

	encoded, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	saltB64, key, err := cryptox.DeriveNewMasterKey(password)
	if err != nil {
		return fmt.Errorf("failed to derive master key: %w", err)
	}
	defer cryptox.Zero(key)

	if err := a.cache.Store(key); err != nil {
		return err
	}

	nowStr := strconv.FormatInt(a.now().Unix(), 10)
	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := settings.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, settings.KeyPasswordHash, encoded); err != nil {
			return err
		}
		if err := repo.Set(ctx, settings.KeyKdfSalt, saltB64); err != nil {
			return err
		}
		if err := repo.Set(ctx, settings.KeyPasswordSetAt, nowStr); err != nil {
			return err
		}
		return repo.Set(ctx, settings.KeyLastVerifiedAt, nowStr)
	})
	if err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}

	a.log.Info(ctx, "password set")
	return nil
}

func (a *authService) VerifyPassword(ctx context.Context, password string) error {
	repo := settings.NewSQLiteRepository(a.db)

	encoded, err := repo.Get(ctx, settings.KeyPasswordHash)
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("%w: no password set", common.ErrAuthenticationFailed)
	}
	if err != nil {
		return fmt.Errorf("failed to read credential: %w", err)
	}

	saltB64, err := repo.Get(ctx, settings.KeyKdfSalt)
	if errors.Is(err, common.ErrNotFound) {
		// Hash and salt are written together; a hash without its salt means
		// the settings store is inconsistent.
		return fmt.Errorf("%w: credential hash has no kdf salt", common.ErrCorruptedRecord)
	}
	if err != nil {
		return fmt.Errorf("failed to read kdf salt: %w", err)
	}

	if err := cryptox.VerifyPassword(password, encoded); err != nil {
		return err
	}

	key, err := cryptox.DeriveMasterKey(password, saltB64)
	if err != nil {
		return err
	}
	defer cryptox.Zero(key)

	if err := a.cache.Store(key); err != nil {
		return err
	}

	nowStr := strconv.FormatInt(a.now().Unix(), 10)
	if err := repo.Set(ctx, settings.KeyLastVerifiedAt, nowStr); err != nil {
		return fmt.Errorf("failed to refresh verification time: %w", err)
	}

	a.log.Info(ctx, "password verified")
	return nil
}
