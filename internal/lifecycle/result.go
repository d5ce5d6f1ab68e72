// ABOUTME: Uniform result envelope and the closed error-code set for all
// ABOUTME: lifecycle operations.

package lifecycle

// Error codes form a closed set; every anticipated failure maps to one.
const (
	CodeInvalidInput     = "invalid_input"
	CodeSoftwareNotFound = "software_not_found"
	CodeAlreadyInstalled = "already_installed"
	CodeNotInstalled     = "not_installed"
	CodeUpToDate         = "up_to_date"
	CodeRegistryError    = "registry_error"
	CodeConfigMissing    = "config_missing"
)

// ErrorInfo is the structured error payload of a failed operation.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// Result is the envelope returned by every operation. Exactly one of Data and
// Error is populated: Data when OK, Error when not.
type Result struct {
	OK    bool           `json:"ok"`
	Data  map[string]any `json:"data,omitempty"`
	Error *ErrorInfo     `json:"error,omitempty"`
}

func ok(data map[string]any) Result {
	return Result{OK: true, Data: data}
}

func fail(code, message string) Result {
	return Result{OK: false, Error: &ErrorInfo{Code: code, Message: message}}
}

func failHint(code, message, hint string) Result {
	return Result{OK: false, Error: &ErrorInfo{Code: code, Message: message, Hint: hint}}
}
