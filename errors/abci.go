package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode declares an ABCI response use 0 to signal that the
	// processing was successful and no error is returned.
	SuccessABCICode = 0

	// All unclassified errors that do not provide an ABCI code are clubbed
	// under an internal error code and a generic message instead of
	// detailed error string.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the ABCI error information as consumed by the tendermint
// client. Returned code and log message should be used as a ABCI response.
// Any error that does not provide ABCICode information is categorized as error
// with code 1.
// When not running in a debug mode all messages of errors that do not provide
// ABCICode information are replaced with generic "internal error".
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}

	if code := abciCode(err); code != internalABCICode {
		if debug {
			return code, fmt.Sprintf("%+v", err)
		}
		return code, err.Error()
	}

	if debug {
		return internalABCICode, fmt.Sprintf("%+v", err)
	}
	return internalABCICode, internalABCILog
}

// ABCIError returns an error instance for the given ABCI code and log. If
// the code belongs to a registered root error, the returned error wraps it so
// that Is works on the client side as it does in the handler.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	if root, ok := usedCodes[code]; ok && root != nil {
		return &wrappedError{parent: root, msg: trimDesc(log, root.desc)}
	}
	return &wrappedError{
		parent: &Error{code: code, desc: "unknown error"},
		msg:    log,
	}
}

// trimDesc removes the root description that ABCIInfo appended to the log,
// so that the rebuilt error prints the same message as the original.
func trimDesc(log, desc string) string {
	suffix := ": " + desc
	if len(log) > len(suffix) && log[len(log)-len(suffix):] == suffix {
		return log[:len(log)-len(suffix)]
	}
	return log
}

type coder interface {
	ABCICode() uint32
}

// abciCode test if given error contains an ABCI code and returns the value of
// it if available. This function is testing for the causer interface as well
// and unwraps the error.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}

	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalABCICode
		}
	}
}

// Redact replace all errors that are not registered with a generic internal
// error instance. This function is supposed to hide implementation details
// errors and leave only those that are part of the public API.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalABCILog)
	}
	if abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
