package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// HealthStatus is the readiness payload; Checks maps a dependency name to "ok" or its error.
type HealthStatus struct {
	Status string            `json:"status"`
	Env    string            `json:"env,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}
