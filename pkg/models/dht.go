package models

import "math/rand/v2"

// DHTStatistics é um retrato estático das estatísticas da DHT.
type DHTStatistics struct {
	NumTokens           int            `json:"num_tokens"`
	RoutingTableBuckets int            `json:"routing_table_buckets"`
	NumKeysInStore      int            `json:"num_keys_in_store"`
	NumStoreForMe       map[string]int `json:"num_store_for_me"`
	NumPeersInStore     map[string]int `json:"num_peers_in_store"`
	NodeID              string         `json:"node_id"`
	PeerID              string         `json:"peer_id"`
	RoutingTableSize    int            `json:"routing_table_size"`
}

func NewDHTStatistics(rng *rand.Rand) DHTStatistics {
	return DHTStatistics{
		NumTokens:           RandInt(rng, 10, 50),
		RoutingTableBuckets: RandInt(rng, 1, 10),
		NumKeysInStore:      RandInt(rng, 100, 500),
		NumStoreForMe:       map[string]int{RandomHex(rng, 20): RandInt(rng, 1, 8)},
		NumPeersInStore:     map[string]int{},
		NodeID:              RandomHex(rng, 20),
		PeerID:              RandomHex(rng, 20),
		RoutingTableSize:    RandInt(rng, 10, 50),
	}
}
