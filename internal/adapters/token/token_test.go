package token

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daiimus/paracord/internal/domain"
)

func TestStatic(t *testing.T) {
	t.Parallel()

	value, err := Static(" tok ").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", value)

	_, err = Static("").Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestEnv(t *testing.T) {
	t.Setenv("PARACORD_TEST_TOKEN", "env-tok")

	value, err := Env{Key: "PARACORD_TEST_TOKEN"}.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-tok", value)

	_, err = Env{Key: "PARACORD_TEST_TOKEN_UNSET"}.Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestEnvFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DISCORD_TOKEN=\"quoted-tok\"\nOTHER=x\n"), 0o600))

	value, err := EnvFile{Path: path, Key: "DISCORD_TOKEN"}.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "quoted-tok", value, "surrounding quotes are stripped")
}

func TestEnvFileMissing(t *testing.T) {
	t.Parallel()

	source := EnvFile{Path: filepath.Join(t.TempDir(), ".env"), Key: "DISCORD_TOKEN"}
	_, err := source.Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestEnvFileKeyAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OTHER=x\n"), 0o600))

	_, err := EnvFile{Path: path, Key: "DISCORD_TOKEN"}.Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestChainPrecedence(t *testing.T) {
	t.Setenv("PARACORD_TEST_CHAIN", "env-tok")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PARACORD_TEST_CHAIN=file-tok\n"), 0o600))

	// The flag wins over everything.
	value, err := DefaultChain("flag-tok", "PARACORD_TEST_CHAIN", path).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "flag-tok", value)

	// Without a flag the environment wins over the file.
	value, err = DefaultChain("", "PARACORD_TEST_CHAIN", path).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-tok", value)
}

func TestChainFallsThroughToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PARACORD_TEST_FALLBACK=file-tok\n"), 0o600))

	value, err := DefaultChain("", "PARACORD_TEST_FALLBACK", path).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file-tok", value)
}

func TestChainExhausted(t *testing.T) {
	t.Parallel()

	chain := DefaultChain("", "PARACORD_TEST_NOWHERE", filepath.Join(t.TempDir(), ".env"))
	_, err := chain.Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}
