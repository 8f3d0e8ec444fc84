package main

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeReportBackend/internal/auth"
	"tradeReportBackend/internal/config"
	"tradeReportBackend/internal/db"
	"tradeReportBackend/models"
	"tradeReportBackend/repository"
)

func TestBuildAPI_RejectsBadConfig(t *testing.T) {
	d, err := db.Open("file:cmdbuild?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	_, err = buildAPI(&config.Config{Auth: config.AuthConfig{JWTSecret: "", TokenTTLHours: 1, PasswordHash: "bcrypt"}}, d)
	assert.Error(t, err, "empty jwt secret")

	_, err = buildAPI(&config.Config{Auth: config.AuthConfig{JWTSecret: "s", TokenTTLHours: 1, PasswordHash: "md5"}}, d)
	assert.Error(t, err, "unknown hash")

	api, err := buildAPI(&config.Config{Auth: config.AuthConfig{JWTSecret: "s", TokenTTLHours: 1, PasswordHash: "sha256"}}, d)
	require.NoError(t, err)
	assert.NotNil(t, api.NewRouter())
}

func TestConfigHashNamesBuildHashers(t *testing.T) {
	for _, name := range []string{config.HashBcrypt, config.HashSHA256} {
		_, err := auth.NewHasher(name)
		assert.NoError(t, err, name)
	}
}

func TestUserSetRoleCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DB_PATH", path)
	t.Setenv("AUTH_PASSWORD_HASH", "sha256")

	d, err := db.Open(path)
	require.NoError(t, err)
	users := repository.NewUserRepository(d)
	_, err = users.Create(context.Background(), "boss@x.com", "digest")
	require.NoError(t, err)
	require.NoError(t, d.Close())

	rootCmd.SetArgs([]string{"--dev", "user", "set-role", "boss@x.com", "admin"})
	require.NoError(t, rootCmd.Execute())

	d, err = db.Open(path)
	require.NoError(t, err)
	defer d.Close()
	u, err := repository.NewUserRepository(d).GetByEmail(context.Background(), "boss@x.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, models.RoleAdmin, u.Role)

	rootCmd.SetArgs([]string{"--dev", "user", "set-role", "ghost@x.com", "admin"})
	assert.Error(t, rootCmd.Execute())
}

func TestUserListCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.db")
	t.Setenv("DB_PATH", path)

	d, err := db.Open(path)
	require.NoError(t, err)
	users := repository.NewUserRepository(d)
	_, err = users.Create(context.Background(), "a@x.com", "digest")
	require.NoError(t, err)
	_, err = users.Create(context.Background(), "b@x.com", "digest")
	require.NoError(t, err)
	require.NoError(t, users.UpdateRoleByEmail(context.Background(), "b@x.com", models.RoleAdmin))
	require.NoError(t, d.Close())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootCmd.SetArgs([]string{"--dev", "user", "list"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "1\ta@x.com\tuser\n2\tb@x.com\tadmin\n", out.String())
}

func TestMigrateDownCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mig.db")
	t.Setenv("DB_PATH", path)

	rootCmd.SetArgs([]string{"--dev", "migrate", "up"})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"--dev", "migrate", "down"})
	require.NoError(t, rootCmd.Execute())

	// db.Open would re-apply the reverted migration, so inspect through a raw handle.
	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer raw.Close()
	versions, err := db.AppliedVersions(raw)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, versions)
}
