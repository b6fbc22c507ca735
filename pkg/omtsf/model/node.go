package model

import (
	"encoding/json"

	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/BayFX/omtsf/pkg/omtsf/rawvalue"
)

// Geo is an optional geographic coordinate on a facility node.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Node is a vertex in the supply-chain graph: an organization, facility,
// good, person, attestation, consignment, or boundary-ref. Every field
// beyond id/node_type is optional — which ones are meaningful depends on
// node_type, but the type itself imposes no constraint at decode time; that
// is the validation engine's job.
type Node struct {
	Id       primitives.NodeId `json:"id"`
	NodeType NodeTypeTag       `json:"node_type"`

	Identifiers []Identifier  `json:"identifiers,omitempty"`
	Labels      []Label       `json:"labels,omitempty"`
	DataQuality *DataQuality  `json:"data_quality,omitempty"`

	Name        *string `json:"name,omitempty"`
	Jurisdiction *primitives.CountryCode `json:"jurisdiction,omitempty"`
	Status      *OrganizationStatus `json:"status,omitempty"`

	GovernanceStructure *string `json:"governance_structure,omitempty"`
	Operator            *string `json:"operator,omitempty"`
	Address              *string `json:"address,omitempty"`
	Geo                  *Geo    `json:"geo,omitempty"`

	CommodityCode *string `json:"commodity_code,omitempty"`
	Unit          *string `json:"unit,omitempty"`
	Role          *string `json:"role,omitempty"`

	AttestationType   *AttestationType   `json:"attestation_type,omitempty"`
	Standard          *string            `json:"standard,omitempty"`
	Issuer            *string            `json:"issuer,omitempty"`
	ValidFrom         *string            `json:"valid_from,omitempty"`
	ValidTo           *OptionalDate      `json:"valid_to,omitempty"`
	Outcome           *AttestationOutcome `json:"outcome,omitempty"`
	AttestationStatus *AttestationStatus `json:"attestation_status,omitempty"`
	Reference         *string            `json:"reference,omitempty"`
	RiskSeverity      *RiskSeverity      `json:"risk_severity,omitempty"`
	RiskLikelihood    *RiskLikelihood    `json:"risk_likelihood,omitempty"`

	LotId          *string `json:"lot_id,omitempty"`
	Quantity       *float64 `json:"quantity,omitempty"`
	ProductionDate *string `json:"production_date,omitempty"`
	OriginCountry  *primitives.CountryCode `json:"origin_country,omitempty"`

	DirectEmissionsCO2e   *float64 `json:"direct_emissions_co2e,omitempty"`
	IndirectEmissionsCO2e *float64 `json:"indirect_emissions_co2e,omitempty"`
	EmissionFactorSource  *EmissionFactorSource `json:"emission_factor_source,omitempty"`
	InstallationId        *string `json:"installation_id,omitempty"`

	Extra rawvalue.Map `json:"-"`
}

var nodeKnownKeys = []string{
	"id", "node_type", "identifiers", "labels", "data_quality",
	"name", "jurisdiction", "status",
	"governance_structure", "operator", "address", "geo",
	"commodity_code", "unit", "role",
	"attestation_type", "standard", "issuer", "valid_from", "valid_to",
	"outcome", "attestation_status", "reference", "risk_severity", "risk_likelihood",
	"lot_id", "quantity", "production_date", "origin_country",
	"direct_emissions_co2e", "indirect_emissions_co2e", "emission_factor_source",
	"installation_id",
}

func (n Node) MarshalJSON() ([]byte, error) {
	type alias Node
	base, err := json.Marshal(alias(n))
	if err != nil {
		return nil, err
	}
	return mergeExtraIntoObject(base, n.Extra)
}

func (n *Node) UnmarshalJSON(data []byte) error {
	type alias Node
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	extra, err := extractExtra(data, knownSet(nodeKnownKeys...))
	if err != nil {
		return err
	}
	a.Extra = extra
	*n = Node(a)
	return nil
}

// ReservedConflictsKey is the extension-field key under which the merge
// engine records per-field scalar conflicts it could not resolve.
const ReservedConflictsKey = "_conflicts"

// FieldConflict records disagreeing values for one field across merged
// source records.
type FieldConflict struct {
	Field  string               `json:"field"`
	Values []FieldConflictValue `json:"values"`
}

// FieldConflictValue pairs one disagreeing value with a label identifying
// its source (e.g. the origin file index).
type FieldConflictValue struct {
	Value      json.RawMessage `json:"value"`
	SourceLabel string         `json:"source_label"`
}
