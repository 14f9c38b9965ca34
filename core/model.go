package core

import (
	"time"
)

// Message is one signed note left on the board.
// immutable
type Message struct {
	ID            string    `json:"id,omitempty" gorm:"primaryKey;type:char(20)"`
	WalletAddress string    `json:"walletAddress" gorm:"type:char(42);index"`
	Message       string    `json:"message" gorm:"type:text;not null"`
	Signature     string    `json:"signature,omitempty" gorm:"type:text;not null"`
	Timestamp     time.Time `json:"timestamp" gorm:"type:timestamp with time zone;not null;index"`
}

// Public returns the message without its signature, as served by the list endpoint.
func (m Message) Public() Message {
	m.Signature = ""
	return m
}

// Event is websocket root packet model
type Event struct {
	Type          string    `json:"type"`
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// SendMessageRequest is the body of POST /api/send-message
type SendMessageRequest struct {
	WalletAddress string `json:"walletAddress"`
	Message       string `json:"message"`
	Signature     string `json:"signature"`
}

// AdminExportRequest is the body of POST /api/admin/messages-file
type AdminExportRequest struct {
	Signature string `json:"signature"`
}
