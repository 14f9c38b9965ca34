package message

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/dogechoco/messageboard/core"
)

type service struct {
	repository Repository
	socket     core.SocketService
}

// NewService creates a new message service
func NewService(repository Repository, socket core.SocketService) core.MessageService {
	return &service{repository, socket}
}

// Post validates and stores a signed message, then notifies listeners
func (s *service) Post(ctx context.Context, request core.SendMessageRequest) (core.Message, error) {
	ctx, span := tracer.Start(ctx, "Message.Service.Post")
	defer span.End()

	if !core.IsValidAddress(request.WalletAddress) {
		return core.Message{}, core.NewErrorBadRequest("invalid wallet address")
	}
	if strings.TrimSpace(request.Message) == "" {
		return core.Message{}, core.NewErrorBadRequest("empty message")
	}
	signature := core.NormalizeSignature(request.Signature)
	if signature == "" {
		return core.Message{}, core.NewErrorBadRequest("missing signature")
	}

	err := s.repository.ClaimSignature(ctx, signature)
	if err != nil {
		span.RecordError(err)
		return core.Message{}, err
	}

	created, err := s.repository.Create(ctx, core.Message{
		ID:            xid.New().String(),
		WalletAddress: request.WalletAddress,
		Message:       request.Message,
		Signature:     signature,
		Timestamp:     time.Now().UTC(),
	})
	if err != nil {
		span.RecordError(err)
		// let the same signed message be retried once storage is back
		if rerr := s.repository.ReleaseSignature(ctx, signature); rerr != nil {
			slog.ErrorContext(ctx, "failed to release signature", slog.String("error", rerr.Error()))
		}
		return core.Message{}, err
	}

	err = s.socket.Publish(ctx, core.Event{
		Type:          core.EventTypeMessage,
		ID:            created.ID,
		WalletAddress: created.WalletAddress,
		Timestamp:     created.Timestamp,
	})
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to publish message event", slog.String("id", created.ID), slog.String("error", err.Error()))
	}

	return created, nil
}

// List returns every message oldest first, without signatures
func (s *service) List(ctx context.Context) ([]core.Message, error) {
	ctx, span := tracer.Start(ctx, "Message.Service.List")
	defer span.End()

	messages, err := s.repository.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	public := make([]core.Message, len(messages))
	for i, m := range messages {
		public[i] = m.Public()
	}
	return public, nil
}

// Count returns the number of stored messages
func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Message.Service.Count")
	defer span.End()

	return s.repository.Count(ctx)
}
