/*
Package client is the user side of the note pool: it signs and submits
transactions, reads balances and notes back from the ledger and screens
redemption destinations.

A Client talks to a node through a Conn. HTTPConn reaches a tendermint node
over RPC, LocalConn runs an application in process and is used by tests and
tools.

The secret of a note is returned by Deposit and handed back to Redeem. It
is never logged and never stored by the client.
*/
package client
