/*
Package notes implements the commitment ledger and the redemption verifier.

A depositor commits to keccak256(secret) while locking funds in the vault.
Anyone who later presents the 16 byte secret can redeem the note once, to
any destination. The secret is a bearer capability: it is never stored nor
logged, only its commitment is.

Every note is Open until it is Redeemed. There is no other transition and
notes are never deleted, so a commitment can only ever be used once.
*/
package notes
