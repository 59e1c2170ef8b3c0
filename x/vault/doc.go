/*
Package vault implements the custody vault: per asset account balances and
allowances, and the escrow accounts that back open notes.

Funds enter escrow only through Lock, which pulls an amount the depositor has
previously approved for PoolAddress. Funds leave escrow only through
Release, which is called by the note registry when a note is redeemed. No
message is routed to Release.

The vault owner may mint and burn balances. Handlers obtain a MintCapability
with Authorize, which only succeeds when the configured owner signed the
transaction.
*/
package vault
