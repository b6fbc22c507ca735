// Package model defines the OMTSF graph data model: the node and edge
// records that make up a File, their enumerated type vocabularies, and the
// identifier/label structures attached to them. Enum values serialize as
// their snake_case JSON string directly; the two tag types (NodeTypeTag,
// EdgeTypeTag) additionally accept any string not in the known vocabulary,
// storing it as an extension rather than failing to decode.
package model

// DisclosureScope is the file-level disclosure scope declaration.
type DisclosureScope string

const (
	DisclosureInternal DisclosureScope = "internal"
	DisclosurePartner  DisclosureScope = "partner"
	DisclosurePublic   DisclosureScope = "public"
)

// NodeType enumerates the known node types defined by the core specification.
type NodeType string

const (
	NodeOrganization NodeType = "organization"
	NodeFacility     NodeType = "facility"
	NodeGood         NodeType = "good"
	NodePerson       NodeType = "person"
	NodeAttestation  NodeType = "attestation"
	NodeConsignment  NodeType = "consignment"
	NodeBoundaryRef  NodeType = "boundary_ref"
)

var knownNodeTypes = map[NodeType]bool{
	NodeOrganization: true,
	NodeFacility:     true,
	NodeGood:         true,
	NodePerson:       true,
	NodeAttestation:  true,
	NodeConsignment:  true,
	NodeBoundaryRef:  true,
}

// EdgeType enumerates the known edge types defined by the core specification.
type EdgeType string

const (
	EdgeOwnership          EdgeType = "ownership"
	EdgeOperationalControl EdgeType = "operational_control"
	EdgeLegalParentage     EdgeType = "legal_parentage"
	EdgeFormerIdentity     EdgeType = "former_identity"
	EdgeBeneficialOwnership EdgeType = "beneficial_ownership"
	EdgeSupplies           EdgeType = "supplies"
	EdgeSubcontracts       EdgeType = "subcontracts"
	EdgeTolls              EdgeType = "tolls"
	EdgeDistributes        EdgeType = "distributes"
	EdgeBrokers            EdgeType = "brokers"
	EdgeOperates           EdgeType = "operates"
	EdgeProduces           EdgeType = "produces"
	EdgeComposedOf         EdgeType = "composed_of"
	EdgeSellsTo            EdgeType = "sells_to"
	EdgeAttestedBy         EdgeType = "attested_by"
	EdgeSameAs             EdgeType = "same_as"
)

var knownEdgeTypes = map[EdgeType]bool{
	EdgeOwnership:           true,
	EdgeOperationalControl:  true,
	EdgeLegalParentage:      true,
	EdgeFormerIdentity:      true,
	EdgeBeneficialOwnership: true,
	EdgeSupplies:            true,
	EdgeSubcontracts:        true,
	EdgeTolls:               true,
	EdgeDistributes:         true,
	EdgeBrokers:             true,
	EdgeOperates:            true,
	EdgeProduces:            true,
	EdgeComposedOf:          true,
	EdgeSellsTo:             true,
	EdgeAttestedBy:          true,
	EdgeSameAs:              true,
}

// AttestationType is the type of attestation record.
type AttestationType string

const (
	AttestationCertification         AttestationType = "certification"
	AttestationAudit                 AttestationType = "audit"
	AttestationDueDiligenceStatement AttestationType = "due_diligence_statement"
	AttestationSelfDeclaration       AttestationType = "self_declaration"
	AttestationOther                 AttestationType = "other"
)

// Confidence is the data-quality confidence level.
type Confidence string

const (
	ConfidenceVerified Confidence = "verified"
	ConfidenceReported Confidence = "reported"
	ConfidenceInferred Confidence = "inferred"
	ConfidenceEstimated Confidence = "estimated"
)

// Sensitivity is an identifier or property sensitivity level.
type Sensitivity string

const (
	SensitivityPublic       Sensitivity = "public"
	SensitivityRestricted   Sensitivity = "restricted"
	SensitivityConfidential Sensitivity = "confidential"
)

// VerificationStatus is an identifier verification status.
type VerificationStatus string

const (
	VerificationVerified   VerificationStatus = "verified"
	VerificationReported   VerificationStatus = "reported"
	VerificationInferred   VerificationStatus = "inferred"
	VerificationUnverified VerificationStatus = "unverified"
)

// OrganizationStatus is the lifecycle state of an organization node.
type OrganizationStatus string

const (
	OrgActive    OrganizationStatus = "active"
	OrgDissolved OrganizationStatus = "dissolved"
	OrgMerged    OrganizationStatus = "merged"
	OrgSuspended OrganizationStatus = "suspended"
)

// AttestationOutcome is the outcome of an attestation evaluation.
type AttestationOutcome string

const (
	OutcomePass            AttestationOutcome = "pass"
	OutcomeConditionalPass AttestationOutcome = "conditional_pass"
	OutcomeFail            AttestationOutcome = "fail"
	OutcomePending         AttestationOutcome = "pending"
	OutcomeNotApplicable   AttestationOutcome = "not_applicable"
)

// AttestationStatus is the lifecycle state of an attestation.
type AttestationStatus string

const (
	AttestationActive    AttestationStatus = "active"
	AttestationSuspended AttestationStatus = "suspended"
	AttestationRevoked   AttestationStatus = "revoked"
	AttestationExpired   AttestationStatus = "expired"
	AttestationWithdrawn AttestationStatus = "withdrawn"
)

// RiskSeverity is a risk severity classification.
type RiskSeverity string

const (
	RiskCritical RiskSeverity = "critical"
	RiskHigh     RiskSeverity = "high"
	RiskMedium   RiskSeverity = "medium"
	RiskLow      RiskSeverity = "low"
)

// RiskLikelihood is the likelihood of an identified risk materializing.
type RiskLikelihood string

const (
	LikelihoodVeryLikely RiskLikelihood = "very_likely"
	LikelihoodLikely     RiskLikelihood = "likely"
	LikelihoodPossible   RiskLikelihood = "possible"
	LikelihoodUnlikely   RiskLikelihood = "unlikely"
)

// EmissionFactorSource is the source of an emissions factor used for CO2e calculations.
type EmissionFactorSource string

const (
	EmissionFactorActual        EmissionFactorSource = "actual"
	EmissionFactorDefaultEu     EmissionFactorSource = "default_eu"
	EmissionFactorDefaultCountry EmissionFactorSource = "default_country"
)

// ControlType is the type of operational control arrangement.
type ControlType string

const (
	ControlFranchise             ControlType = "franchise"
	ControlManagement            ControlType = "management"
	ControlTolling               ControlType = "tolling"
	ControlLicensedManufacturing ControlType = "licensed_manufacturing"
	ControlOther                 ControlType = "other"
)

// ConsolidationBasis is the accounting consolidation basis for legal parentage edges.
type ConsolidationBasis string

const (
	ConsolidationIfrs10       ConsolidationBasis = "ifrs_10"
	ConsolidationUsGaapAsc810 ConsolidationBasis = "us_gaap_asc_810"
	ConsolidationOther        ConsolidationBasis = "other"
	ConsolidationUnknown      ConsolidationBasis = "unknown"
)

// EventType is the type of corporate identity event recorded on a former_identity edge.
type EventType string

const (
	EventMerger      EventType = "merger"
	EventAcquisition EventType = "acquisition"
	EventRename      EventType = "rename"
	EventDemerger    EventType = "demerger"
	EventSpinOff     EventType = "spin_off"
)

// ServiceType is the type of logistics or distribution service.
type ServiceType string

const (
	ServiceWarehousing ServiceType = "warehousing"
	ServiceTransport   ServiceType = "transport"
	ServiceFulfillment ServiceType = "fulfillment"
	ServiceOther       ServiceType = "other"
)
