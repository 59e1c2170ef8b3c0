package config

// DefaultValues is the default configuration
const DefaultValues = `
[Log]
Level = "info"

[Node]
URL = "tcp://localhost:26657"
ChainID = ""

[Keys]
Path = ""

[Network]
ChainID = 421614
WalletURL = ""

[Screening]
Timeout = "5s"
EVMURL = "https://sepolia-rollup.arbitrum.io/rpc"
SolanaURL = "https://api.devnet.solana.com"

[Poll]
Interval = "10s"
`
