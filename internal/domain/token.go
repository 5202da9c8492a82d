package domain

// Token is one entry of the connected account's inventory. Balance counts
// the units currently available, staked units are not included.
type Token struct {
	TokenID  string   `json:"token_id"`
	Metadata Metadata `json:"metadata"`
	Balance  int      `json:"balance"`
}

func (t Token) Clone() Token {
	t.Metadata = t.Metadata.Clone()
	return t
}

// TokenGroup is the set of inventory tokens sharing one card type.
type TokenGroup struct {
	Type   CardType `json:"type"`
	Tokens []Token  `json:"tokens"`
}
