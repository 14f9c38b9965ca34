package admin

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/x/message"
)

type service struct {
	repository message.Repository
	config     core.Config
}

// NewService creates a new admin service
func NewService(repository message.Repository, config core.Config) core.AdminService {
	return &service{repository, config}
}

// Authorize accepts a signature equal to one of the configured admin tokens.
// The token is the admin wallet's signature of core.AdminChallenge; it is
// compared as a bearer value and never expires.
func (s *service) Authorize(ctx context.Context, signature string) error {
	_, span := tracer.Start(ctx, "Admin.Service.Authorize")
	defer span.End()

	given := core.NormalizeSignature(signature)
	if given == "" {
		return core.NewErrorPermissionDenied()
	}
	for _, token := range s.config.AdminTokens {
		if core.NormalizeSignature(token) == given {
			return nil
		}
	}
	return core.NewErrorPermissionDenied()
}

// Export returns every message, signatures included, as indented JSON
func (s *service) Export(ctx context.Context, signature string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Admin.Service.Export")
	defer span.End()

	err := s.Authorize(ctx, signature)
	if err != nil {
		return nil, err
	}

	messages, err := s.repository.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if messages == nil {
		messages = []core.Message{}
	}

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "failed to encode export")
	}
	return data, nil
}
