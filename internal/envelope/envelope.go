// Package envelope provides the standardized wrapper for all tool
// responses: a schema version, the payload, non-fatal warnings, and a
// structured error when the operation failed.
package envelope

// CurrentSchemaVersion is the current envelope schema version.
const CurrentSchemaVersion = "1.0"

// Warning represents a non-fatal issue, such as budget exhaustion or a
// skipped unreadable file.
type Warning struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ErrorBody is the structured error carried by failed responses.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Response is the standard envelope for all tool responses.
type Response struct {
	SchemaVersion string      `json:"schemaVersion"`
	Data          interface{} `json:"data"`
	Warnings      []Warning   `json:"warnings,omitempty"`
	Error         *ErrorBody  `json:"error,omitempty"`
}

// IsError reports whether the response carries an error.
func (r *Response) IsError() bool {
	return r.Error != nil
}
