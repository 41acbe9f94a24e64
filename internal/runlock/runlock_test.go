package runlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_RejectsSecondHolder(t *testing.T) {
	var l Local
	ctx := context.Background()

	release, err := l.Acquire(ctx)
	require.NoError(t, err)

	_, err = l.Acquire(ctx)
	assert.ErrorIs(t, err, ErrHeld)

	release()
	release2, err := l.Acquire(ctx)
	require.NoError(t, err)
	release2()
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedis_Lease(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	a := NewRedis(client, "import:run", time.Minute)
	b := NewRedis(client, "import:run", time.Minute)

	release, err := a.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists("import:run"))

	_, err = b.Acquire(ctx)
	assert.ErrorIs(t, err, ErrHeld)

	release()
	assert.False(t, mr.Exists("import:run"))

	releaseB, err := b.Acquire(ctx)
	require.NoError(t, err)
	releaseB()
}

func TestRedis_StaleReleaseKeepsNewHolder(t *testing.T) {
	mr, client := newRedis(t)
	ctx := context.Background()
	a := NewRedis(client, "import:run", time.Second)
	b := NewRedis(client, "import:run", time.Minute)

	releaseA, err := a.Acquire(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	releaseB, err := b.Acquire(ctx)
	require.NoError(t, err)

	releaseA()
	assert.True(t, mr.Exists("import:run"), "expired holder must not release the new lease")

	releaseB()
	assert.False(t, mr.Exists("import:run"))
}

func TestChain_ReleasesOnFailure(t *testing.T) {
	_, client := newRedis(t)
	ctx := context.Background()
	local := &Local{}
	other := NewRedis(client, "import:run", time.Minute)

	releaseOther, err := other.Acquire(ctx)
	require.NoError(t, err)

	chain := Chain{local, NewRedis(client, "import:run", time.Minute)}
	_, err = chain.Acquire(ctx)
	assert.ErrorIs(t, err, ErrHeld)

	// the local lock taken before the failure was given back
	release, err := local.Acquire(ctx)
	require.NoError(t, err)
	release()
	releaseOther()

	releaseChain, err := chain.Acquire(ctx)
	require.NoError(t, err)
	releaseChain()
}
