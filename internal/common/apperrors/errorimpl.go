package apperrors

// appError implements the Error interface.
type appError struct {
	msg         string
	base        Error
	wrapped     []error
	statuscode  int
	expandError bool
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll returns the message together with the wrapped causes when the
// error was marked expandable. Non-expandable errors keep causes out of
// client-visible text.
func (e *appError) ErrorAll() string {
	if !e.expandError || len(e.wrapped) == 0 {
		return e.msg
	}
	msg := e.msg + ": "
	for i, err := range e.wrapped {
		if i > 0 {
			msg += "; "
		}
		msg += err.Error()
	}
	return msg
}

func (e *appError) Unwrap() []error {
	return e.wrapped
}

// New derives a child error. The child keeps the parent's status code and
// expansion setting until overridden.
func (e *appError) New(msg string) Error {
	return &appError{
		msg:         msg,
		base:        e,
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

// child clones e with itself as base. Errors are declared as shared package
// vars, so call-site decoration must never mutate the receiver.
func (e *appError) child() *appError {
	return &appError{
		msg:         e.msg,
		base:        e,
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

func (e *appError) Msg(msg string) Error {
	c := e.child()
	c.msg = msg
	return c
}

func (e *appError) MsgErr(msg string, err ...error) Error {
	c := e.child()
	c.msg = msg
	c.wrapped = append(c.wrapped, err...)
	return c
}

func (e *appError) Err(err ...error) Error {
	c := e.child()
	c.wrapped = append(c.wrapped, err...)
	return c
}

func (e *appError) Is(target error) bool {
	if e == target || e.base == target {
		return true
	}
	if e.base != nil && e.base.Is(target) {
		return true
	}
	for _, err := range e.wrapped {
		if err == target {
			return true
		}
	}
	return false
}

func (e *appError) SetExpandError(expand bool) Error {
	e.expandError = expand
	return e
}

func (e *appError) SetStatusCode(code int) Error {
	e.statuscode = code
	return e
}

func (e *appError) StatusCode() int {
	return e.statuscode
}

func New(msg string) Error {
	return &appError{msg: msg}
}
