package core

const (
	// AdminChallenge is the text the admin wallet signs to request an export.
	// The backend compares against the exact bytes, do not translate.
	AdminChallenge = "Soy el administrador de la dApp"

	DefaultAdminAddress = "0x4794d0B88F5579117Ca8e7ab8FF8b5f95DbD0213"
	DefaultEndpoint     = "https://dogechoco-backend.onrender.com"
)

const (
	SendMessagePath  = "/api/send-message"
	MessagesPath     = "/api/messages"
	AdminExportPath  = "/api/admin/messages-file"
	SocketPath       = "/api/socket"
	ExportFilePrefix = "respaldo-mensajes-"
)

const (
	MessageChannel  = "messageboard:messages"
	MessageListKey  = "messageboard:messages:list"
	SignatureKeyPfx = "mb-sig-"
)

const (
	EventTypeMessage = "message"
)
