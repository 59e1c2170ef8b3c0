/*
Package notetest provides mocks and helpers used by tests of the ledger
extensions. Nothing in here should be imported by production code.
*/
package notetest
