// Package storage provides the key/value backends the progress records are
// persisted in.
package storage

import "context"

// Backend is a string-keyed byte store.
//
// Load returns (nil, nil) when key is absent.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Unavailable is the backend used when no persistence is configured. Every
// call fails with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Load(context.Context, string) ([]byte, error) { return nil, ErrUnavailable }
func (Unavailable) Save(context.Context, string, []byte) error   { return ErrUnavailable }
func (Unavailable) Delete(context.Context, string) error         { return ErrUnavailable }
