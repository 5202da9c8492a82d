package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type PutSupplyKeyRequest struct {
	SupplyKey string `json:"supply_key"`
}

func (req *PutSupplyKeyRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.SupplyKey, validation.Required, validation.Length(1, 512)),
	)
}
