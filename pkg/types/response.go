package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type ListEnvelope struct {
	Data any `json:"data"`
	Meta any `json:"meta"`
}

type MessageEnvelope struct {
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
