package model

import (
	"encoding/json"

	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/BayFX/omtsf/pkg/omtsf/rawvalue"
)

// EdgeProperties is the typed property bag attached to an edge. Which
// fields are meaningful depends on edge_type (see the edge-identity
// property table in the identity package); all are optional here.
type EdgeProperties struct {
	Percentage        *float64            `json:"percentage,omitempty"`
	Direct            *bool               `json:"direct,omitempty"`
	ControlType       *ControlType        `json:"control_type,omitempty"`
	ConsolidationBasis *ConsolidationBasis `json:"consolidation_basis,omitempty"`
	EventType         *EventType          `json:"event_type,omitempty"`
	EffectiveDate     *string             `json:"effective_date,omitempty"`
	Commodity         *string             `json:"commodity,omitempty"`
	ContractRef       *string             `json:"contract_ref,omitempty"`
	Volume            *float64            `json:"volume,omitempty"`
	VolumeUnit        *string             `json:"volume_unit,omitempty"`
	AnnualValue       *float64            `json:"annual_value,omitempty"`
	ValueCurrency     *string             `json:"value_currency,omitempty"`
	Tier              *int                `json:"tier,omitempty"`
	ServiceType       *ServiceType        `json:"service_type,omitempty"`
	Scope             *string             `json:"scope,omitempty"`

	Labels      []Label      `json:"labels,omitempty"`
	DataQuality *DataQuality `json:"data_quality,omitempty"`

	// PropertySensitivity overrides the default property-sensitivity table
	// (§4.8) per property name on this edge, when string-valued.
	PropertySensitivity map[string]Sensitivity `json:"_property_sensitivity,omitempty"`

	Extra rawvalue.Map `json:"-"`
}

var edgePropertiesKnownKeys = []string{
	"percentage", "direct", "control_type", "consolidation_basis",
	"event_type", "effective_date", "commodity", "contract_ref",
	"volume", "volume_unit", "annual_value", "value_currency",
	"tier", "service_type", "scope", "labels", "data_quality",
	"_property_sensitivity",
}

func (p EdgeProperties) MarshalJSON() ([]byte, error) {
	type alias EdgeProperties
	base, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	return mergeExtraIntoObject(base, p.Extra)
}

func (p *EdgeProperties) UnmarshalJSON(data []byte) error {
	type alias EdgeProperties
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, knownSet(edgePropertiesKnownKeys...))
	if err != nil {
		return err
	}
	a.Extra = extra
	*p = EdgeProperties(a)
	return nil
}

// Edge is a directed, typed, labeled relationship between two nodes.
type Edge struct {
	Id       primitives.EdgeId `json:"id"`
	EdgeType EdgeTypeTag       `json:"edge_type"`
	Source   primitives.NodeId `json:"source"`
	Target   primitives.NodeId `json:"target"`

	Identifiers []Identifier   `json:"identifiers,omitempty"`
	Properties  EdgeProperties `json:"properties"`

	Extra rawvalue.Map `json:"-"`
}

var edgeKnownKeys = []string{
	"id", "edge_type", "source", "target", "identifiers", "properties",
}

func (e Edge) MarshalJSON() ([]byte, error) {
	type alias Edge
	base, err := json.Marshal(alias(e))
	if err != nil {
		return nil, err
	}
	return mergeExtraIntoObject(base, e.Extra)
}

func (e *Edge) UnmarshalJSON(data []byte) error {
	type alias Edge
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, knownSet(edgeKnownKeys...))
	if err != nil {
		return err
	}
	a.Extra = extra
	*e = Edge(a)
	return nil
}
