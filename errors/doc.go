/*
Package errors implements the error model used by notepool.

Every failure that can reach a client wraps one of the root errors declared
with Register. A root error carries an ABCI code, so the client side can
rebuild it from a transaction result and test it with Is, exactly as the
handler did:

	if notes.ErrAlreadyRedeemed.Is(err) {
		...
	}

Create errors at the point of failure with ErrXyz.New, ErrXyz.Newf or Wrap so
that a stack trace is attached to the innermost frame. Only the first wrap
records a stack trace.

Formatting an error with %+v prints the full stack trace.
*/
package errors
