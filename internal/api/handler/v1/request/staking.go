package request

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/omnia-labs/omnia-api/internal/domain"
)

// Token ids are opaque to the board; only account ids are ledger-shaped.
const maxTokenIDLen = 128

var errTokenOrAuto = errors.New("either token_id or auto must be set, not both")

type PlaceLandRequest struct {
	TokenID string `json:"token_id"`
}

func (req *PlaceLandRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TokenID, validation.Required, validation.Length(1, maxTokenIDLen)),
	)
}

type StakeRequest struct {
	TokenID string `json:"token_id,omitempty"`
	Auto    bool   `json:"auto,omitempty"`
}

func (req *StakeRequest) Validate() error {
	if (req.TokenID == "") == !req.Auto {
		return errTokenOrAuto
	}
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TokenID, validation.Length(0, maxTokenIDLen)),
	)
}

type ImportInventoryRequest struct {
	Tokens []domain.Token `json:"tokens"`
}

func (req *ImportInventoryRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Tokens, validation.NotNil),
	)
	if err != nil {
		return err
	}
	return validateTokens(req.Tokens)
}

type RestoreStateRequest struct {
	Tokens        []domain.Token        `json:"tokens"`
	LandInstances []domain.LandInstance `json:"land_instances"`
}

func (req *RestoreStateRequest) Validate() error {
	return validateTokens(req.Tokens)
}

func (req *RestoreStateRequest) State() domain.StakingState {
	return domain.StakingState{
		Tokens:        req.Tokens,
		LandInstances: req.LandInstances,
	}
}

func validateTokens(tokens []domain.Token) error {
	for i := range tokens {
		t := &tokens[i]
		err := validation.ValidateStruct(
			t,
			validation.Field(&t.TokenID, validation.Required, validation.Length(1, maxTokenIDLen)),
			validation.Field(&t.Balance, validation.Min(0)),
		)
		if err != nil {
			return fmt.Errorf("tokens[%d]: %w", i, err)
		}
	}
	return nil
}
