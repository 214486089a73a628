package errs

// codeOrDefault returns *code when set, otherwise the kind's default code.
func codeOrDefault(kind Kind, code *string) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(kind.String())
}

// NewInvalidArgumentError creates an InvalidArgument Error.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "INVALID_ARGUMENT")
//   - errors: optional slice of field errors (validation errors)
func NewInvalidArgumentError(message string, override bool, code *string, errors []FieldError) *Error {
	return &Error{
		Code:     codeOrDefault(KindInvalidArgument, code),
		Message:  message,
		Kind:     KindInvalidArgument,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a NotFound Error.
func NewNotFoundError(message string, override bool, code *string) *Error {
	return &Error{
		Code:     codeOrDefault(KindNotFound, code),
		Message:  message,
		Kind:     KindNotFound,
		Override: override,
	}
}

// NewAlreadyExistsError creates an AlreadyExists Error.
func NewAlreadyExistsError(message string, override bool, code *string) *Error {
	return &Error{
		Code:     codeOrDefault(KindAlreadyExists, code),
		Message:  message,
		Kind:     KindAlreadyExists,
		Override: override,
	}
}

// NewInternalError creates an Internal Error.
//
// The message is always generic; the real cause is attached with WithCause
// so it can be logged without reaching the caller.
func NewInternalError() *Error {
	return &Error{
		Code:     codeOrDefault(KindInternal, nil),
		Message:  "An error occurred while processing your request",
		Kind:     KindInternal,
		Override: false,
	}
}

// ValidationError converts a generic validation error into an InvalidArgument Error.
func ValidationError(err error) *Error {
	return NewInvalidArgumentError("Validation failed: "+err.Error(), false, nil, nil)
}
