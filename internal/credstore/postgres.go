package credstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore keeps one credential row per profile.
type PostgresStore struct {
	pool    *pgxpool.Pool
	profile string
	logger  *zap.Logger
}

// NewPostgresStore builds a store for profile. The credential_store table
// must exist; persistence.RunMigrations creates it.
func NewPostgresStore(pool *pgxpool.Pool, profile string, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{pool: pool, profile: profile, logger: logger}
}

func (s *PostgresStore) Save(ctx context.Context, creds Credentials) error {
	if err := requireComplete(creds); err != nil {
		return err
	}
	userJSON, err := encodeUser(creds.User)
	if err != nil {
		return storeErr("save", err)
	}

	const query = `
		INSERT INTO credential_store (profile, token, user_json, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (profile) DO UPDATE
		SET token = EXCLUDED.token, user_json = EXCLUDED.user_json, updated_at = now()`
	if _, err := s.pool.Exec(ctx, query, s.profile, creds.Token, userJSON); err != nil {
		return storeErr("save", err)
	}
	s.logger.Debug("credentials saved", zap.String("profile", s.profile))
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (Credentials, error) {
	const query = `SELECT token, user_json FROM credential_store WHERE profile = $1`

	var (
		token    string
		userJSON []byte
	)
	err := s.pool.QueryRow(ctx, query, s.profile).Scan(&token, &userJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, storeErr("load", err)
	}

	user, err := decodeUser(userJSON)
	if err != nil {
		return Credentials{}, storeErr("load", err)
	}
	return normalize(Credentials{Token: token, User: user}), nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM credential_store WHERE profile = $1`, s.profile); err != nil {
		return storeErr("clear", err)
	}
	return nil
}
