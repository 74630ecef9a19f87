// Package modelnode provides types describing the state of a node.
package modelnode

// WalletInfo describes the node wallet.
type WalletInfo struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

// Stats describes the size of the node state.
type Stats struct {
	ChainLength    int `json:"chain_length"`
	PoolSize       int `json:"pool_size"`
	KnownAddresses int `json:"known_addresses"`
}
