package domain

import "time"

// NFTRecord is a locally kept record of a token minted through the creation tool.
type NFTRecord struct {
	ID          string    `json:"id"`
	TokenID     string    `json:"token_id"`
	TokenName   string    `json:"token_name"`
	TokenSymbol string    `json:"token_symbol"`
	TokenMemo   string    `json:"token_memo"`
	TokenType   string    `json:"token_type"`  // "NFT" or "FT"
	SupplyType  string    `json:"supply_type"` // "Infinite" or "Finite"
	Metadata    *Metadata `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
