package service

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ibplan-go-api/internal/models"
	"github.com/noah-isme/ibplan-go-api/internal/repository"
	"github.com/noah-isme/ibplan-go-api/internal/store"
)

func newSessionFixture(t *testing.T) (*miniredis.Miniredis, *store.KV, *repository.MemoryDirectory) {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	kv := store.NewKV(redisClient, zerolog.Nop())
	return mini, kv, repository.NewDemoDirectory()
}

func TestSessionLoginKnownCredentials(t *testing.T) {
	_, kv, directory := newSessionFixture(t)
	svc := NewSessionService(directory, kv, "test-secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	for _, user := range repository.DemoUsers() {
		result, err := svc.Login(ctx, user.Email, user.Password)
		require.NoError(t, err)
		require.NotEmpty(t, result.Token)
		require.Equal(t, user.Email, result.User.Email)

		current, ok := svc.Current()
		require.True(t, ok)
		require.Equal(t, user.Email, current.Email)
	}
}

func TestSessionLoginRejectsBadCredentials(t *testing.T) {
	mini, kv, directory := newSessionFixture(t)
	svc := NewSessionService(directory, kv, "test-secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "talal@gmail.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@gmail.com", "IloveIB!")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, ok := svc.Current()
	require.False(t, ok)
	require.False(t, mini.Exists(store.KeyCurrentIdentity))
}

func TestSessionLoginSigningFailureLeavesNoDurableRecord(t *testing.T) {
	mini, kv, directory := newSessionFixture(t)
	svc := NewSessionService(directory, kv, "test-secret", time.Hour, zerolog.Nop()).(*sessionService)
	svc.sign = func(models.Identity) (string, error) {
		return "", errors.New("signer unavailable")
	}
	ctx := context.Background()

	_, err := svc.Login(ctx, "talal@gmail.com", "IloveIB!")
	require.Error(t, err)

	// The failed login must not persist an identity: the durable record
	// is written only after a token has been issued.
	_, ok := svc.Current()
	require.False(t, ok)
	require.False(t, mini.Exists(store.KeyCurrentIdentity))
}

func TestSessionLogoutClearsDurableRecord(t *testing.T) {
	mini, kv, directory := newSessionFixture(t)
	svc := NewSessionService(directory, kv, "test-secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "talal@gmail.com", "IloveIB!")
	require.NoError(t, err)
	require.True(t, mini.Exists(store.KeyCurrentIdentity))

	require.NoError(t, svc.Logout(ctx))
	_, ok := svc.Current()
	require.False(t, ok)
	require.False(t, mini.Exists(store.KeyCurrentIdentity))

	// Logging out again is a no-op.
	require.NoError(t, svc.Logout(ctx))
}

func TestUpdateSelectedSubjectsNoOpWhenUnauthenticated(t *testing.T) {
	mini, kv, directory := newSessionFixture(t)
	svc := NewSessionService(directory, kv, "test-secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.UpdateSelectedSubjects(ctx, []string{"physics-hl"}))
	require.NoError(t, svc.UpdateProgress(ctx, 50))

	_, ok := svc.Current()
	require.False(t, ok)
	require.False(t, mini.Exists(store.KeyCurrentIdentity))
}

func TestUpdateSelectedSubjectsRecomputesDerivedProgress(t *testing.T) {
	_, kv, directory := newSessionFixture(t)
	svc := NewSessionService(directory, kv, "test-secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "talal@gmail.com", "IloveIB!")
	require.NoError(t, err)

	// physics-hl baseline 75, chemistry-hl baseline 45 -> round(120/2) = 60.
	require.NoError(t, svc.UpdateSelectedSubjects(ctx, []string{"physics-hl", "chemistry-hl"}))
	current, ok := svc.Current()
	require.True(t, ok)
	require.Equal(t, []string{"physics-hl", "chemistry-hl"}, current.Subjects)
	require.Equal(t, 60, current.Progress)

	// Unchanged selection leaves the memoized figure alone even after an
	// explicit progress write in between.
	require.NoError(t, svc.UpdateProgress(ctx, 10))
	require.NoError(t, svc.UpdateSelectedSubjects(ctx, []string{"physics-hl", "chemistry-hl"}))
	current, _ = svc.Current()
	require.Equal(t, 10, current.Progress)

	// Clearing the selection drops the aggregate to zero.
	require.NoError(t, svc.UpdateSelectedSubjects(ctx, []string{}))
	current, _ = svc.Current()
	require.Empty(t, current.Subjects)
	require.Equal(t, 0, current.Progress)
}

func TestSessionMirrorsIntoDirectory(t *testing.T) {
	_, kv, directory := newSessionFixture(t)
	svc := NewSessionService(directory, kv, "test-secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "abrah@gmail.com", "IloveIB!")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateSelectedSubjects(ctx, []string{"math-aa-hl"}))
	require.NoError(t, svc.Logout(ctx))

	// A fresh login within the same process sees the mirrored update.
	result, err := svc.Login(ctx, "abrah@gmail.com", "IloveIB!")
	require.NoError(t, err)
	require.Equal(t, []string{"math-aa-hl"}, result.User.Subjects)
}

func TestSessionRehydrateRoundTrip(t *testing.T) {
	_, kv, directory := newSessionFixture(t)
	svc := NewSessionService(directory, kv, "test-secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "ali@gmail.com", "IloveIB!")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateSelectedSubjects(ctx, []string{"physics-hl", "economics-hl"}))
	persisted, ok := svc.Current()
	require.True(t, ok)

	// Simulate a process restart: a new service over the same store.
	restarted := NewSessionService(repository.NewDemoDirectory(), kv, "test-secret", time.Hour, zerolog.Nop())
	require.NoError(t, restarted.Rehydrate(ctx))

	rehydrated, ok := restarted.Current()
	require.True(t, ok)
	require.Equal(t, persisted, rehydrated)
}

func TestSessionRehydrateToleratesMalformedRecord(t *testing.T) {
	mini, kv, directory := newSessionFixture(t)
	require.NoError(t, mini.Set(store.KeyCurrentIdentity, "{not json"))

	svc := NewSessionService(directory, kv, "test-secret", time.Hour, zerolog.Nop())
	require.NoError(t, svc.Rehydrate(context.Background()))

	_, ok := svc.Current()
	require.False(t, ok)
}
