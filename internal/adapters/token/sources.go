package token

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/daiimus/paracord/internal/domain"
	"github.com/daiimus/paracord/internal/ports"
	"github.com/spf13/viper"
)

// Static is a literal token, typically from a command-line flag.
type Static string

var _ ports.TokenSource = Static("")

func (s Static) Token(_ context.Context) (string, error) {
	value := strings.TrimSpace(string(s))
	if value == "" {
		return "", domain.ErrTokenNotFound
	}
	return value, nil
}

// Env reads the token from a process environment variable.
type Env struct {
	Key string
}

var _ ports.TokenSource = Env{}

func (e Env) Token(_ context.Context) (string, error) {
	value := strings.TrimSpace(os.Getenv(e.Key))
	if value == "" {
		return "", domain.ErrTokenNotFound
	}
	return value, nil
}

// EnvFile reads the token from a dotenv-style file.
type EnvFile struct {
	Path string
	Key  string
}

var _ ports.TokenSource = EnvFile{}

func (e EnvFile) Token(_ context.Context) (string, error) {
	if _, err := os.Stat(e.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("stat %s: %w", e.Path, err)
	}

	v := viper.New()
	v.SetConfigFile(e.Path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read %s: %w", e.Path, err)
	}

	value := strings.TrimSpace(v.GetString(e.Key))
	if value == "" {
		return "", domain.ErrTokenNotFound
	}
	return strings.Trim(value, `"'`), nil
}
