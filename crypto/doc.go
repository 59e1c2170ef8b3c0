/*
Package crypto holds the ed25519 keys used to sign transactions.

Public keys are turned into conditions under the "sigs" extension, so the
address of a key is NewCondition("sigs", "ed25519", pubkey).Address().
*/
package crypto
