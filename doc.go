/*
Package notepool defines the interfaces used throughout the ledger: storage,
transactions, handlers, results and queries. It also contains helpers to work
with context, addresses and conditions.

The ledger is an ordered state machine. Every message is executed inside one
transaction over a cache wrapped store, so a handler either writes all of its
changes or none of them. Extensions under x/ plug into this machinery by
providing handlers, query handlers and genesis initializers.
*/
package notepool

// Version should be set by build flags: `git describe --tags`
var Version = "please set in makefile"
