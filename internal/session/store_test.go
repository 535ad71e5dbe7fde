package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtflow/intake-server-go/internal/model"
	"github.com/courtflow/intake-server-go/internal/redis"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &redis.Client{Client: goredis.NewClient(&goredis.Options{Addr: mr.Addr()})}
	return NewStore(client, 2*time.Minute), mr
}

func TestKey(t *testing.T) {
	assert.Equal(t, "session:42", Key(42))
	assert.Equal(t, "session:-7", Key(-7))
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := model.NewIntakeSession()
	sess.State = model.StateWaitingForEvidences
	sess.LawyerID = "lawyer_a"
	sess.Evidences = append(sess.Evidences, model.Attachment{
		SourceFileID: "file-1",
		LocalPath:    "/tmp/abc_contract.pdf",
		DisplayName:  "contract.pdf",
		Data:         []byte("never stored"),
	})

	require.NoError(t, store.Set(ctx, 42, sess))

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.StateWaitingForEvidences, got.State)
	assert.Equal(t, "lawyer_a", got.LawyerID)
	require.Len(t, got.Evidences, 1)
	assert.Equal(t, "file-1", got.Evidences[0].SourceFileID)
	assert.Equal(t, "contract.pdf", got.Evidences[0].DisplayName)
	assert.Nil(t, got.Evidences[0].Data, "file bytes must not round-trip through the store")
}

func TestStoreMissingSession(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreTTLRefreshedOnWrite(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 42, model.NewIntakeSession()))
	assert.Equal(t, 2*time.Minute, mr.TTL(Key(42)))

	mr.FastForward(time.Minute)
	require.NoError(t, store.Set(ctx, 42, model.NewIntakeSession()))
	assert.Equal(t, 2*time.Minute, mr.TTL(Key(42)))
}

func TestStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 42, model.NewIntakeSession()))
	mr.FastForward(3 * time.Minute)

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreCorruptValueTreatedAsAbsent(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set(Key(42), "{not json"))

	got, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreReturnsUnknownStateVerbatim(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set(Key(42), `{"state":"garbage","evidences":[],"fullDocs":[]}`))

	got, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, got, "an unknown state is the intake service's call, not the store's")
	assert.Equal(t, model.IntakeState("garbage"), got.State)
}

func TestStoreChatIsolation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a := model.NewIntakeSession()
	a.LawyerID = "lawyer_a"
	b := model.NewIntakeSession()
	b.LawyerID = "lawyer_b"

	require.NoError(t, store.Set(ctx, 1, a))
	require.NoError(t, store.Set(ctx, 2, b))

	gotA, err := store.Get(ctx, 1)
	require.NoError(t, err)
	gotB, err := store.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "lawyer_a", gotA.LawyerID)
	assert.Equal(t, "lawyer_b", gotB.LawyerID)
}
