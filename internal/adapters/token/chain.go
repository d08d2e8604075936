// Package token resolves the auth token for a run. Sources are tried in
// order: an explicit flag value, the process environment, then a .env
// file in the working directory.
package token

import (
	"context"
	"errors"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
)

type Chain struct {
	sources []ports.TokenSource
}

var _ ports.TokenSource = (*Chain)(nil)

func NewChain(sources ...ports.TokenSource) *Chain {
	return &Chain{sources: sources}
}

// DefaultChain is the resolution order the CLI uses. flagValue may be
// empty, in which case the environment and .env file are consulted.
func DefaultChain(flagValue, envKey, envFilePath string) *Chain {
	return NewChain(
		Static(flagValue),
		Env{Key: envKey},
		EnvFile{Path: envFilePath, Key: envKey},
	)
}

func (c *Chain) Token(ctx context.Context) (string, error) {
	for _, source := range c.sources {
		value, err := source.Token(ctx)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, domain.ErrTokenNotFound) {
			return "", err
		}
	}

	return "", domain.ErrTokenNotFound
}
