// Package schema validates campaign inputs against embedded JSON Schema
// documents. The create and update schemas check the structure of the
// whole input; one schema per campaign type checks the type-specific
// payload.
package schema

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/currency"

	"brandhub/internal/core/domain"
	"brandhub/internal/core/port"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const baseURL = "https://brandhub.local/schemas/"

var typeSchemas = map[domain.CampaignType]string{
	domain.TypeProduct:        "type_product.schema.json",
	domain.TypeService:        "type_service.schema.json",
	domain.TypeEvent:          "type_event.schema.json",
	domain.TypeBrandAwareness: "type_brand_awareness.schema.json",
}

// Validator implements port.CampaignValidator. It is safe for concurrent
// use once constructed.
type Validator struct {
	create *jsonschema.Schema
	update *jsonschema.Schema
	types  map[domain.CampaignType]*jsonschema.Schema
}

var _ port.CampaignValidator = (*Validator)(nil)

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		raw, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			return nil, err
		}
		if err = c.AddResource(baseURL+e.Name(), strings.NewReader(string(raw))); err != nil {
			return nil, fmt.Errorf("schema %s load failed: %w", e.Name(), err)
		}
	}

	v := &Validator{types: make(map[domain.CampaignType]*jsonschema.Schema, len(typeSchemas))}
	if v.create, err = c.Compile(baseURL + "campaign_create.schema.json"); err != nil {
		return nil, fmt.Errorf("create schema compile failed: %w", err)
	}
	if v.update, err = c.Compile(baseURL + "campaign_update.schema.json"); err != nil {
		return nil, fmt.Errorf("update schema compile failed: %w", err)
	}
	for t, name := range typeSchemas {
		compiled, err := c.Compile(baseURL + name)
		if err != nil {
			return nil, fmt.Errorf("%s schema compile failed: %w", t, err)
		}
		v.types[t] = compiled
	}
	return v, nil
}

// ValidateCreate checks a full create input.
func (v *Validator) ValidateCreate(in port.CreateCampaignInput) ([]port.FieldError, error) {
	fields, err := v.validate(v.create, in, "")
	if err != nil {
		return nil, err
	}
	return append(fields, checkCurrency(in.Currency)...), nil
}

// ValidateUpdate checks a partial update input. No field is required.
func (v *Validator) ValidateUpdate(in port.UpdateCampaignInput) ([]port.FieldError, error) {
	fields, err := v.validate(v.update, in, "")
	if err != nil {
		return nil, err
	}
	if in.Currency != nil {
		fields = append(fields, checkCurrency(*in.Currency)...)
	}
	return fields, nil
}

// ValidateTypeData checks a type-specific payload against the schema of
// campaign type t.
func (v *Validator) ValidateTypeData(t domain.CampaignType, data map[string]any) ([]port.FieldError, error) {
	s, ok := v.types[t]
	if !ok {
		return []port.FieldError{{Field: "type", Message: fmt.Sprintf("unknown campaign type %q", t)}}, nil
	}
	if data == nil {
		data = map[string]any{}
	}
	return v.validate(s, data, "type_data")
}

// validate runs s against the JSON form of in. Fields are reported with
// their path below prefix.
func (v *Validator) validate(s *jsonschema.Schema, in any, prefix string) ([]port.FieldError, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}
	var doc any
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}

	err = s.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var fields []port.FieldError
	collectLeaves(ve, prefix, &fields)
	return fields, nil
}

// collectLeaves flattens the cause tree into one entry per failing keyword.
func collectLeaves(ve *jsonschema.ValidationError, prefix string, out *[]port.FieldError) {
	if len(ve.Causes) == 0 {
		*out = append(*out, port.FieldError{
			Field:   fieldName(prefix, ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, prefix, out)
	}
}

// fieldName converts a JSON pointer such as "/target_location/country"
// into "target_location.country".
func fieldName(prefix, pointer string) string {
	name := strings.ReplaceAll(strings.Trim(pointer, "/"), "/", ".")
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "." + name
	}
}

func checkCurrency(code string) []port.FieldError {
	if code == "" {
		return nil
	}
	if _, err := currency.ParseISO(code); err != nil {
		return []port.FieldError{{Field: "currency", Message: fmt.Sprintf("unknown currency code %q", code)}}
	}
	return nil
}
