//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/authd/internal/model"
	repo "github.com/dtroode/authd/internal/repository/redis"
)

var addr string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		panic(err)
	}
	addr = fmt.Sprintf("%s:%s", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestTokenRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	tr := repo.NewTokenRepository(conn)
	userID := uuid.New()

	ok, err := tr.Exists(ctx, model.TokenClassAccess, userID)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, tr.Save(ctx, model.TokenClassAccess, userID, "token-one", time.Minute))

	ok, err = tr.Exists(ctx, model.TokenClassAccess, userID)
	require.NoError(t, err)
	require.True(t, ok)

	// other class is independent
	ok, err = tr.Exists(ctx, model.TokenClassRefresh, userID)
	require.NoError(t, err)
	require.False(t, ok)

	// overwriting keeps a single live entry
	require.NoError(t, tr.Save(ctx, model.TokenClassAccess, userID, "token-two", time.Minute))
	got, err := conn.Get(ctx, fmt.Sprintf("access_token:%s", userID)).Result()
	require.NoError(t, err)
	require.Equal(t, "token-two", got)

	require.NoError(t, tr.Delete(ctx, model.TokenClassAccess, userID))
	ok, err = tr.Exists(ctx, model.TokenClassAccess, userID)
	require.NoError(t, err)
	require.False(t, ok)

	// deleting an absent key is a no-op
	require.NoError(t, tr.Delete(ctx, model.TokenClassAccess, userID))
}

func TestTokenRepository_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	tr := repo.NewTokenRepository(conn)
	userID := uuid.New()

	require.NoError(t, tr.Save(ctx, model.TokenClassRefresh, userID, "short-lived", 500*time.Millisecond))

	ok, err := tr.Exists(ctx, model.TokenClassRefresh, userID)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(time.Second)

	ok, err = tr.Exists(ctx, model.TokenClassRefresh, userID)
	require.NoError(t, err)
	require.False(t, ok)
}
