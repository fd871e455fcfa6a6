// Package credentials keeps the "remember me" username/password pair on the
// device.
package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/assettrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/assettrack/internal/common"
	"github.com/dmitrijs2005/assettrack/internal/cryptox"
	"github.com/dmitrijs2005/assettrack/internal/dbx"
	"github.com/dmitrijs2005/assettrack/internal/logging"
)

const saltSize = 16

// Credentials is the remembered login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Store is the contract the session manager relies on. Load reports "nothing
// remembered" as (nil, nil).
type Store interface {
	Save(ctx context.Context, username, password string) error
	Load(ctx context.Context) (*Credentials, error)
	Reset(ctx context.Context) error
}

// SQLiteStore seals the pair with AES-GCM in the metadata table. The key is
// derived from a configured secret and a per-device salt stored next to it.
type SQLiteStore struct {
	db     *sql.DB
	secret []byte
	log    logging.Logger
}

func NewSQLiteStore(db *sql.DB, secret string, log logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, secret: []byte(secret), log: log.With("component", "credentials")}
}

func (s *SQLiteStore) Save(ctx context.Context, username, password string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		salt, err := repo.Get(ctx, common.MetaCredentialSalt)
		if err != nil {
			return err
		}
		if salt == nil {
			salt = common.GenerateRandByteArray(saltSize)
			if err := repo.Set(ctx, common.MetaCredentialSalt, salt); err != nil {
				return err
			}
		}

		key := cryptox.DeriveKey(s.secret, salt)
		defer common.WipeByteArray(key)

		sealed, nonce, err := cryptox.Seal(Credentials{Username: username, Password: password}, key)
		if err != nil {
			return fmt.Errorf("seal credentials: %w", err)
		}
		if err := repo.Set(ctx, common.MetaCredentialSealed, sealed); err != nil {
			return err
		}
		return repo.Set(ctx, common.MetaCredentialNonce, nonce)
	})
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Load never fails: storage errors and records that no longer open are
// logged and reported as nothing remembered.
func (s *SQLiteStore) Load(ctx context.Context) (*Credentials, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	values := make(map[string][]byte, 3)
	for _, k := range []string{common.MetaCredentialSalt, common.MetaCredentialSealed, common.MetaCredentialNonce} {
		v, err := repo.Get(ctx, k)
		if err != nil {
			s.log.Warn(ctx, "credentials unreadable", "error", err)
			return nil, nil
		}
		if v == nil {
			return nil, nil
		}
		values[k] = v
	}

	key := cryptox.DeriveKey(s.secret, values[common.MetaCredentialSalt])
	defer common.WipeByteArray(key)

	var c Credentials
	if err := cryptox.Open(values[common.MetaCredentialSealed], values[common.MetaCredentialNonce], key, &c); err != nil {
		s.log.Warn(ctx, "remembered credentials do not open, ignoring them", "error", err)
		return nil, nil
	}
	return &c, nil
}

// Reset removes the remembered pair. The device salt stays.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	repo := metadata.NewSQLiteRepository(s.db)
	if err := repo.Delete(ctx, common.MetaCredentialSealed, common.MetaCredentialNonce); err != nil {
		return fmt.Errorf("reset credentials: %w", err)
	}
	return nil
}
