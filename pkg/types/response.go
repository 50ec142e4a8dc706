package types

type SuccessEnvelope struct {
	Data any `json:"data"`
	// Warning carries non-fatal failures the client should surface,
	// e.g. a durable write that failed after the in-memory mutation.
	Warning *APIWarning `json:"warning,omitempty"`
}

type APIWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
