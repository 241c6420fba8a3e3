// Package credstore persists the session credential (bearer token plus the
// serialized user) across process restarts.
//
// Every backend writes and clears both halves atomically. A record where only
// one half is present loads as empty credentials.
package credstore

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/sojus-client/internal/domain"
	apperrors "github.com/spec-kit/sojus-client/pkg/util/errorutil"
)

// Store is the local persistence of the session credential.
type Store interface {
	Save(ctx context.Context, creds Credentials) error
	Load(ctx context.Context) (Credentials, error)
	Clear(ctx context.Context) error
}

// Credentials is the persisted pair.
type Credentials struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Complete reports whether both the token and a valid user are present.
func (c Credentials) Complete() bool {
	return c.Token != "" && c.User.Valid()
}

// Empty reports whether nothing is stored.
func (c Credentials) Empty() bool {
	return !c.Complete()
}

func normalize(c Credentials) Credentials {
	if !c.Complete() {
		return Credentials{}
	}
	return Credentials{Token: c.Token, User: c.User.Clone()}
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return apperrors.NewCredentialStoreError(op, err)
}

func requireComplete(c Credentials) error {
	if c.Complete() {
		return nil
	}
	return apperrors.NewCredentialStoreError("save", errIncomplete)
}

func encodeUser(u *domain.User) ([]byte, error) {
	return json.Marshal(u)
}

func decodeUser(data []byte) (*domain.User, error) {
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
