package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/omnia-labs/omnia-api/internal/domain"
)

type CreateNFTRecordRequest struct {
	TokenID     string           `json:"token_id"`
	TokenName   string           `json:"token_name"`
	TokenSymbol string           `json:"token_symbol"`
	TokenMemo   string           `json:"token_memo"`
	TokenType   string           `json:"token_type"`
	SupplyType  string           `json:"supply_type"`
	Metadata    *domain.Metadata `json:"metadata,omitempty"`
}

func (req *CreateNFTRecordRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TokenID, validation.Required, IsLedgerID),
		validation.Field(&req.TokenName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.TokenSymbol, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.TokenMemo, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.TokenType, validation.Required, validation.In("NFT", "FT")),
		validation.Field(&req.SupplyType, validation.Required, validation.In("Infinite", "Finite")),
	)
}

func (req *CreateNFTRecordRequest) Record() domain.NFTRecord {
	return domain.NFTRecord{
		TokenID:     req.TokenID,
		TokenName:   req.TokenName,
		TokenSymbol: req.TokenSymbol,
		TokenMemo:   req.TokenMemo,
		TokenType:   req.TokenType,
		SupplyType:  req.SupplyType,
		Metadata:    req.Metadata,
	}
}
