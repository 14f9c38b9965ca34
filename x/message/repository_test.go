package message

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/internal/testutil"
)

var ctx = context.Background()

func TestRepository(t *testing.T) {

	log.Println("Test Start")

	db, cleanup_db := testutil.CreateDB()
	defer cleanup_db()

	rdb, cleanup_rdb := testutil.CreateRDB()
	defer cleanup_rdb()

	mc, cleanup_mc := testutil.CreateMC()
	defer cleanup_mc()

	repo := NewRepository(db, rdb, mc)
	pivot := time.Now().UTC().Truncate(time.Millisecond)

	// :: empty list is not nil ::
	empty, err := repo.List(ctx)
	if assert.NoError(t, err) {
		assert.Len(t, empty, 0)
	}

	// :: Create two messages ::
	second, err := repo.Create(ctx, core.Message{
		ID:            "cn0000000000000000b0",
		WalletAddress: User1Address,
		Message:       "second",
		Signature:     "0x02",
		Timestamp:     pivot,
	})
	if assert.NoError(t, err) {
		assert.Equal(t, "second", second.Message)
	}

	_, err = repo.Create(ctx, core.Message{
		ID:            "cn0000000000000000a0",
		WalletAddress: User1Address,
		Message:       "first",
		Signature:     "0x01",
		Timestamp:     pivot.Add(-time.Minute),
	})
	assert.NoError(t, err)

	// :: List is oldest first and gets cached ::
	messages, err := repo.List(ctx)
	if assert.NoError(t, err) {
		assert.Len(t, messages, 2)
		assert.Equal(t, "first", messages[0].Message)
		assert.Equal(t, "second", messages[1].Message)
		assert.Equal(t, "0x01", messages[0].Signature)
	}

	exists, err := rdb.Exists(ctx, core.MessageListKey).Result()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	// :: Create drops the cache ::
	_, err = repo.Create(ctx, core.Message{
		ID:            "cn0000000000000000c0",
		WalletAddress: User1Address,
		Message:       "third",
		Signature:     "0x03",
		Timestamp:     pivot.Add(time.Minute),
	})
	assert.NoError(t, err)

	exists, err = rdb.Exists(ctx, core.MessageListKey).Result()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), exists)

	messages, err = repo.List(ctx)
	if assert.NoError(t, err) {
		assert.Len(t, messages, 3)
		assert.Equal(t, "third", messages[2].Message)
	}

	count, err := repo.Count(ctx)
	if assert.NoError(t, err) {
		assert.Equal(t, int64(3), count)
	}

	// :: Signature guard ::
	assert.NoError(t, repo.ClaimSignature(ctx, "0xfeed"))
	assert.ErrorIs(t, repo.ClaimSignature(ctx, "0xfeed"), core.ErrorAlreadyExists{})
	assert.NoError(t, repo.ClaimSignature(ctx, "0xbeef"))

	assert.NoError(t, repo.ReleaseSignature(ctx, "0xfeed"))
	assert.NoError(t, repo.ClaimSignature(ctx, "0xfeed"))
	assert.NoError(t, repo.ReleaseSignature(ctx, "0xcafe"))
}
