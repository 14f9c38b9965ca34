//go:generate go run go.uber.org/mock/mockgen -source=repository.go -destination=mock/repository.go
package message

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dogechoco/messageboard/core"
)

const (
	listCacheTTL      = 10 * time.Minute
	signatureGuardTTL = int32(10 * 60)
)

// Repository is the interface for message repository
type Repository interface {
	Create(ctx context.Context, message core.Message) (core.Message, error)
	List(ctx context.Context) ([]core.Message, error)
	Count(ctx context.Context) (int64, error)
	ClaimSignature(ctx context.Context, signature string) error
	ReleaseSignature(ctx context.Context, signature string) error
}

type repository struct {
	db  *gorm.DB
	rdb *redis.Client
	mc  *memcache.Client
}

// NewRepository creates a new message repository
func NewRepository(db *gorm.DB, rdb *redis.Client, mc *memcache.Client) Repository {
	return &repository{db, rdb, mc}
}

// Create stores a message and drops the cached list
func (r *repository) Create(ctx context.Context, message core.Message) (core.Message, error) {
	ctx, span := tracer.Start(ctx, "Message.Repository.Create")
	defer span.End()

	err := r.db.WithContext(ctx).Create(&message).Error
	if err != nil {
		span.RecordError(err)
		return core.Message{}, errors.Wrap(err, "failed to insert message")
	}

	err = r.rdb.Del(ctx, core.MessageListKey).Err()
	if err != nil {
		span.RecordError(err)
	}

	return message, nil
}

// List returns every message, oldest first
func (r *repository) List(ctx context.Context) ([]core.Message, error) {
	ctx, span := tracer.Start(ctx, "Message.Repository.List")
	defer span.End()

	cached, err := r.rdb.Get(ctx, core.MessageListKey).Bytes()
	if err == nil {
		var messages []core.Message
		if err := json.Unmarshal(cached, &messages); err == nil {
			return messages, nil
		}
	} else if err != redis.Nil {
		span.RecordError(err)
	}

	var messages []core.Message
	err = r.db.WithContext(ctx).Order("timestamp asc").Order("id asc").Find(&messages).Error
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to list messages")
	}

	data, err := json.Marshal(messages)
	if err == nil {
		err = r.rdb.Set(ctx, core.MessageListKey, data, listCacheTTL).Err()
		if err != nil {
			span.RecordError(err)
		}
	}

	return messages, nil
}

// Count returns the number of stored messages
func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Message.Repository.Count")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&core.Message{}).Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	return count, nil
}

// ClaimSignature fails with ErrorAlreadyExists when signature was seen recently
func (r *repository) ClaimSignature(ctx context.Context, signature string) error {
	_, span := tracer.Start(ctx, "Message.Repository.ClaimSignature")
	defer span.End()

	err := r.mc.Add(&memcache.Item{
		Key:        signatureKey(signature),
		Value:      []byte("1"),
		Expiration: signatureGuardTTL,
	})
	if err == memcache.ErrNotStored {
		return core.NewErrorAlreadyExists()
	}
	if err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "failed to record signature")
	}
	return nil
}

// ReleaseSignature forgets a claimed signature so it can be posted again
func (r *repository) ReleaseSignature(ctx context.Context, signature string) error {
	_, span := tracer.Start(ctx, "Message.Repository.ReleaseSignature")
	defer span.End()

	err := r.mc.Delete(signatureKey(signature))
	if err != nil && err != memcache.ErrCacheMiss {
		span.RecordError(err)
		return errors.Wrap(err, "failed to release signature")
	}
	return nil
}

func signatureKey(signature string) string {
	return core.SignatureKeyPfx + hex.EncodeToString(core.GetHash([]byte(signature)))
}
