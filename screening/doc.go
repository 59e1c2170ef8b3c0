/*
Package screening gives an advisory opinion about a destination address
before funds are sent there.

Screening runs in two steps. The address must first have the right shape
for its family; a malformed address is the only result that blocks. Then
the address is looked up on its chain: an address that never sent a
transaction gets a warning, since funds sent to a typo are lost. If the
lookup fails or times out the result is indeterminate and does not block.
*/
package screening
