package domain

import "time"

// CatalogEntry describes one contract stored in the local catalog.

type CatalogEntry struct {
	// Key is the catalog file name stem, derived from the contract title.
	Key        string    `json:"key"`
	ContractID string    `json:"contract_id"`
	Title      string    `json:"title"`
	Version    string    `json:"version"`
	Dialect    string    `json:"dialect,omitempty"`
	Source     string    `json:"source,omitempty"`
	StoredAt   time.Time `json:"stored_at"`
}
