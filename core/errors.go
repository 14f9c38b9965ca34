package core

type ErrorAlreadyExists struct {
}

func (e ErrorAlreadyExists) Error() string {
	return "Already Exists"
}

func NewErrorAlreadyExists() ErrorAlreadyExists {
	return ErrorAlreadyExists{}
}

type ErrorPermissionDenied struct {
}

func (e ErrorPermissionDenied) Error() string {
	return "Permission Denied"
}

func NewErrorPermissionDenied() ErrorPermissionDenied {
	return ErrorPermissionDenied{}
}

type ErrorBadRequest struct {
	Reason string
}

func (e ErrorBadRequest) Error() string {
	if e.Reason == "" {
		return "Bad Request"
	}
	return "Bad Request: " + e.Reason
}

func NewErrorBadRequest(reason string) ErrorBadRequest {
	return ErrorBadRequest{Reason: reason}
}
