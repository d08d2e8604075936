package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/daiimus/paracord/internal/adapters/remote/discord"
	"github.com/daiimus/paracord/internal/adapters/token"
	"github.com/daiimus/paracord/internal/domain"
)

const (
	tokenEnvKey     = "DISCORD_TOKEN"
	tokenEnvFile    = ".env"
	defaultProgress = ".paracord_progress.toml"
)

type app struct {
	apiBaseURL string
	httpClient *http.Client
	now        func() time.Time
}

func wireApp() *app {
	return &app{
		apiBaseURL: envOrDefault("PARACORD_API_BASE", ""),
		httpClient: nil, // discord.NewClient builds its own unless overridden
		now:        time.Now,
	}
}

// resolveToken walks the token chain: --token flag, then the environment,
// then a .env file in the working directory.
func (a *app) resolveToken(ctx context.Context, flagValue string) (string, error) {
	chain := token.DefaultChain(flagValue, tokenEnvKey, tokenEnvFile)
	value, err := chain.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: set %s, create a %s file, or pass --token", err, tokenEnvKey, tokenEnvFile)
	}
	return value, nil
}

func (a *app) client(tok string) (*discord.Client, error) {
	opts := []discord.Option{}
	if a.httpClient != nil {
		opts = append(opts, discord.WithHTTPClient(a.httpClient))
	}

	client, err := discord.NewClient(discord.Config{Token: tok, BaseURL: a.apiBaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("wire remote client: %w", err)
	}
	return client, nil
}

// validate resolves the token and confirms it against the identity
// endpoint, returning the account the run will operate as.
func (a *app) validate(ctx context.Context, flagToken string) (*discord.Client, domain.Identity, error) {
	tok, err := a.resolveToken(ctx, flagToken)
	if err != nil {
		return nil, domain.Identity{}, err
	}

	client, err := a.client(tok)
	if err != nil {
		return nil, domain.Identity{}, err
	}

	identity, err := client.Me(ctx)
	if err != nil {
		return nil, domain.Identity{}, fmt.Errorf("validate token: %w", err)
	}

	return client, identity, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
