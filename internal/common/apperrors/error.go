package apperrors

// Error is the application error type. Errors form chains: a base error is
// declared once (with an HTTP status code) and call sites derive from it with
// New or attach causes with Err. errors.Is matches any error against the
// chain it was derived from.
type Error interface {
	Error() string
	ErrorAll() string
	New(msg string) Error
	Msg(msg string) Error
	MsgErr(msg string, err ...error) Error
	Err(err ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetExpandError(expand bool) Error
	SetStatusCode(code int) Error
	StatusCode() int
}
