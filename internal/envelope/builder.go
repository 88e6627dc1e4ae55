package envelope

import (
	stderrors "errors"

	"cbx/internal/errors"
)

// Builder constructs Response envelopes using a fluent API.
type Builder struct {
	resp *Response
}

// New creates a new envelope builder.
func New() *Builder {
	return &Builder{
		resp: &Response{
			SchemaVersion: CurrentSchemaVersion,
		},
	}
}

// Data sets the tool-specific payload.
func (b *Builder) Data(data interface{}) *Builder {
	b.resp.Data = data
	return b
}

// Warning appends a non-fatal warning.
func (b *Builder) Warning(code, message string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Code: code, Message: message})
	return b
}

// Error sets the structured error from err. CbxErrors keep their stable
// code; anything else maps to INTERNAL_ERROR.
func (b *Builder) Error(err error) *Builder {
	if err == nil {
		return b
	}

	body := &ErrorBody{
		Code:    string(errors.InternalError),
		Message: err.Error(),
	}
	var ce *errors.CbxError
	if stderrors.As(err, &ce) {
		body.Code = string(ce.Code)
		body.Message = ce.Message
		body.Details = ce.Details
	}
	b.resp.Error = body
	return b
}

// Build returns the envelope response.
func (b *Builder) Build() *Response {
	return b.resp
}

// Ok wraps a payload in a plain success envelope.
func Ok(data interface{}) *Response {
	return New().Data(data).Build()
}

// Fail wraps an error in a plain failure envelope.
func Fail(err error) *Response {
	return New().Error(err).Build()
}
