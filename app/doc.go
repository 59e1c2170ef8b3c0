/*
Package app contains the ABCI state machine of the ledger.

StoreApp owns the commit store, answers queries and handles the block life
cycle. BaseApp adds CheckTx and DeliverTx on top, decoding every transaction
and passing it through a chain of decorators into a Router that dispatches
the message to the handler registered for its path.
*/
package app
