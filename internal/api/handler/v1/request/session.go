package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateSessionRequest struct {
	AccountID string `json:"account_id"`
}

func (req *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AccountID, validation.Required, IsLedgerID),
	)
}
