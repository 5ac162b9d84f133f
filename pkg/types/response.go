package types

type SuccessEnvelope struct {
	Data          any      `json:"data"`
	Notifications []Notice `json:"notifications,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error         APIError `json:"error"`
	Notifications []Notice `json:"notifications,omitempty"`
}

// Notice is a user-facing toast emitted while handling a request.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
