package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

// CampaignType classifies a campaign and selects the shape of its
// type-specific payload.
type CampaignType string

const (
	TypeProduct        CampaignType = "PRODUCT"
	TypeService        CampaignType = "SERVICE"
	TypeEvent          CampaignType = "EVENT"
	TypeBrandAwareness CampaignType = "BRAND_AWARENESS"
)

// CampaignTypes lists every declared campaign type.
var CampaignTypes = []CampaignType{TypeProduct, TypeService, TypeEvent, TypeBrandAwareness}

// Valid reports whether t is a declared campaign type.
func (t CampaignType) Valid() bool {
	switch t {
	case TypeProduct, TypeService, TypeEvent, TypeBrandAwareness:
		return true
	}
	return false
}

var ErrUnknownCampaignType = errors.New("unknown campaign type")

// TypeData is the type-specific payload of a campaign. Each campaign type
// has exactly one variant.
type TypeData interface {
	CampaignType() CampaignType
}

// ProductData is carried by PRODUCT campaigns. ProductID must reference a
// product of the campaign's own store.
type ProductData struct {
	ProductID        string  `json:"product_id"`
	Quantity         int     `json:"quantity,omitempty"`
	ProductValue     float64 `json:"product_value,omitempty"`
	ShippingRequired bool    `json:"shipping_required,omitempty"`
}

func (ProductData) CampaignType() CampaignType { return TypeProduct }

type ServiceData struct {
	ServiceName        string `json:"service_name"`
	ServiceDescription string `json:"service_description,omitempty"`
	Location           string `json:"location,omitempty"`
}

func (ServiceData) CampaignType() CampaignType { return TypeService }

type EventData struct {
	EventName string `json:"event_name"`
	EventDate string `json:"event_date,omitempty"`
	Venue     string `json:"venue,omitempty"`
}

func (EventData) CampaignType() CampaignType { return TypeEvent }

type AwarenessData struct {
	KeyMessage string   `json:"key_message,omitempty"`
	Hashtags   []string `json:"hashtags,omitempty"`
}

func (AwarenessData) CampaignType() CampaignType { return TypeBrandAwareness }

// DecodeTypeData converts a JSON object into the variant for t.
func DecodeTypeData(t CampaignType, fields map[string]any) (TypeData, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return UnmarshalTypeData(t, raw)
}

// UnmarshalTypeData decodes a stored JSON document into the variant for t.
func UnmarshalTypeData(t CampaignType, raw []byte) (TypeData, error) {
	switch t {
	case TypeProduct:
		var d ProductData
		return d, unmarshalInto(raw, &d)
	case TypeService:
		var d ServiceData
		return d, unmarshalInto(raw, &d)
	case TypeEvent:
		var d EventData
		return d, unmarshalInto(raw, &d)
	case TypeBrandAwareness:
		var d AwarenessData
		return d, unmarshalInto(raw, &d)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCampaignType, t)
}

func unmarshalInto[T any](raw []byte, dst *T) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode type data: %w", err)
	}
	return nil
}

// TypeDataFields returns the payload as a JSON object. A nil payload yields
// an empty object.
func TypeDataFields(d TypeData) (map[string]any, error) {
	fields := map[string]any{}
	if d == nil {
		return fields, nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// ProductID returns the referenced product of a PRODUCT payload, if any.
func ProductID(d TypeData) string {
	if p, ok := d.(ProductData); ok {
		return p.ProductID
	}
	return ""
}

// MergeTypeData merges patch into base one key at a time. Keys only in
// base are kept, keys in patch overwrite or extend base. Neither argument
// is modified.
func MergeTypeData(base, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(patch))
	maps.Copy(merged, base)
	maps.Copy(merged, patch)
	return merged
}
