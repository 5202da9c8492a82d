package cardschema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/omnia-labs/omnia-api/internal/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const baseURL = "https://omnia.land/schemas/"

var ErrInvalidDescriptor = errors.New("card descriptor does not match its schema")

var schemaFiles = map[domain.CardType]string{
	domain.CardLand:          "land.json",
	domain.CardTree:          "tree.json",
	domain.CardPeople:        "people.json",
	domain.CardTool:          "tool.json",
	domain.CardModifier:      "modifier.json",
	domain.CardStructure:     "structure.json",
	domain.CardFungibleToken: "fungible_token.json",
}

// Validator checks card descriptors. Shape only checks the common envelope,
// Descriptor additionally applies the rules of the card's own type.
type Validator struct {
	base   *jsonschema.Schema
	byType map[domain.CardType]*jsonschema.Schema
}

func New() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("schemaFS.ReadDir -> %w", err)
	}
	for _, e := range entries {
		b, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("schemaFS.ReadFile -> %w", err)
		}
		if err = c.AddResource(baseURL+e.Name(), bytes.NewReader(b)); err != nil {
			return nil, fmt.Errorf("c.AddResource %s -> %w", e.Name(), err)
		}
	}

	v := &Validator{byType: make(map[domain.CardType]*jsonschema.Schema, len(schemaFiles))}
	if v.base, err = c.Compile(baseURL + "card.json"); err != nil {
		return nil, fmt.Errorf("c.Compile card.json -> %w", err)
	}
	for ct, name := range schemaFiles {
		s, err := c.Compile(baseURL + name)
		if err != nil {
			return nil, fmt.Errorf("c.Compile %s -> %w", name, err)
		}
		v.byType[ct] = s
	}

	return v, nil
}

// Shape validates the envelope every descriptor shares.
func (v *Validator) Shape(md domain.Metadata) error {
	return validate(v.base, md)
}

// Descriptor validates md against the schema of its card type.
func (v *Validator) Descriptor(md domain.Metadata) error {
	s, ok := v.byType[md.Type]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCardType, md.Type)
	}
	return validate(s, md)
}

func validate(s *jsonschema.Schema, md domain.Metadata) error {
	b, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err = dec.Decode(&doc); err != nil {
		return fmt.Errorf("dec.Decode -> %w", err)
	}

	if err = s.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s", ErrInvalidDescriptor, leafMessage(ve))
		}
		return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	return nil
}

// leafMessage picks the deepest cause, which names the offending field.
func leafMessage(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	if ve.InstanceLocation == "" {
		return ve.Message
	}
	return ve.InstanceLocation + ": " + ve.Message
}
