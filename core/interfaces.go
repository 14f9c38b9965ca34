//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mock/services.go
package core

import (
	"context"
)

type MessageService interface {
	Post(ctx context.Context, request SendMessageRequest) (Message, error)
	List(ctx context.Context) ([]Message, error)
	Count(ctx context.Context) (int64, error)
}

type AdminService interface {
	Authorize(ctx context.Context, signature string) error
	Export(ctx context.Context, signature string) ([]byte, error)
}

type SocketService interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context) (<-chan Event, func(), error)
}
