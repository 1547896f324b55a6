package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beminee/mockauth/pkg/userapi"
)

// Users adapts a KeyValue store to the user collection: the whole
// ordered list is (de)serialized as one blob under UsersKey. A full
// list replace is the unit of persistence; there is no per-record
// update.
type Users struct {
	kv  KeyValue
	key string
}

// NewUsers creates a user collection adapter over kv.
func NewUsers(kv KeyValue) *Users {
	return &Users{kv: kv, key: UsersKey}
}

// Load reads the current collection. A missing key yields an empty
// collection, not an error.
func (s *Users) Load(ctx context.Context) ([]userapi.User, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load user collection: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var users []userapi.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user collection: %w", err)
	}
	return users, nil
}

// Save replaces the persisted collection.
func (s *Users) Save(ctx context.Context, users []userapi.User) error {
	if users == nil {
		users = []userapi.User{}
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user collection: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("failed to save user collection: %w", err)
	}
	return nil
}
