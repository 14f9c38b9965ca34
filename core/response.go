package core

type ResponseBase[T any] struct {
	Status  string `json:"status"`
	Content T      `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

func NewErrorResponse(err error) ResponseBase[any] {
	return ResponseBase[any]{Status: "error", Error: err.Error()}
}

func NewOKResponse[T any](content T) ResponseBase[T] {
	return ResponseBase[T]{Status: "ok", Content: content}
}
