// Package errcode gives boot-time wiring errors a stable, comparable
// identity. The control loop itself never returns one of these: once the
// controller is running, all error handling is the timeout/filter/watchdog
// taxonomy the firmware implements directly (see internal/mode, internal/servo).
package errcode

// Code is a short, stable error identifier. It is a string newtype,
// comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

const (
	InvalidParams Code = "invalid_params"
	PinInUse      Code = "pin_in_use"
	UnknownPin    Code = "unknown_pin"
	HardwareFault Code = "hardware_fault"

	Error Code = "error" // generic fallback
)

// E wraps a Code with an operation name and a cause, for wiring failures
// that need more context than the bare code.
type E struct {
	C   Code
	Op  string
	Err error
}

func (e *E) Error() string {
	if e.Err != nil {
		return e.Op + ": " + string(e.C) + ": " + e.Err.Error()
	}
	return e.Op + ": " + string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return ""
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
