/*
Package network keeps the static profiles of the chains the client can talk
to and tracks which one is active.

Everything that differs between chains (names, endpoints, contract and token
addresses) is data in a Profile. Switching the active chain asks an
Environment, usually a browser or desktop wallet reached over JSON-RPC, to
switch as well.
*/
package network
