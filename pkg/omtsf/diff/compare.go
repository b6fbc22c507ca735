package diff

import (
	"encoding/json"
	"regexp"

	"github.com/BayFX/omtsf/pkg/omtsf/equality"
	"github.com/BayFX/omtsf/pkg/omtsf/model"
	"github.com/BayFX/omtsf/pkg/omtsf/primitives"
	"github.com/BayFX/omtsf/pkg/omtsf/rawvalue"
)

// maybeChange compares two optional scalar fields and returns a
// PropertyChange when they differ, or nil when they're equal (including
// both-absent). equal is one of the universal equality predicates from
// package equality, lifted to the field's Go type.
func maybeChange[T any](field string, a, b *T, equal func(T, T) bool) *PropertyChange {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b != nil && equal(*a, *b) {
		return nil
	}
	return &PropertyChange{Field: field, Old: toValue(a), New: toValue(b)}
}

func toValue[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func valuesEqual[T comparable](a, b T) bool { return a == b }

func optionalDateChange(field string, a, b *model.OptionalDate) *PropertyChange {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b != nil && optionalDatesEqual(*a, *b) {
		return nil
	}
	return &PropertyChange{Field: field, Old: optionalDateValue(a), New: optionalDateValue(b)}
}

func optionalDatesEqual(a, b model.OptionalDate) bool {
	if a.Absent() != b.Absent() {
		return false
	}
	if a.Absent() {
		return true
	}
	if a.NoExpiry() != b.NoExpiry() {
		return false
	}
	if a.NoExpiry() {
		return true
	}
	da, _ := a.Date()
	db, _ := b.Date()
	return equality.Dates(da, db)
}

func optionalDateValue(d *model.OptionalDate) interface{} {
	if d == nil || d.Absent() {
		return nil
	}
	if d.NoExpiry() {
		return nil
	}
	v, _ := d.Date()
	return v
}

// compareDataQuality diffs the optional data_quality block attached to a
// node or edge, field-prefixed so callers can fold the result into a flat
// change list.
func compareDataQuality(a, b *model.DataQuality) []PropertyChange {
	var aq, bq model.DataQuality
	if a != nil {
		aq = *a
	}
	if b != nil {
		bq = *b
	}
	var out []PropertyChange
	if c := maybeChange("data_quality.confidence", aq.Confidence, bq.Confidence, valuesEqual[model.Confidence]); c != nil {
		out = append(out, *c)
	}
	if c := maybeChange("data_quality.source", aq.Source, bq.Source, equality.Strings); c != nil {
		out = append(out, *c)
	}
	if c := maybeChange("data_quality.last_verified", aq.LastVerified, bq.LastVerified, equality.Dates); c != nil {
		out = append(out, *c)
	}
	return out
}

// looksLikeDate matches loosely-formatted numeric dates (e.g. "2026-2-9")
// so that extension-field values carrying dates still get normalised
// comparison rather than a false-positive byte diff.
var looksLikeDate = regexp.MustCompile(`^\d{1,4}-\d{1,2}-\d{1,2}$`)

// compareExtra diffs two extension-field maps key by key, using structural
// equality with date-string normalisation for plain string values that
// look like dates.
func compareExtra(a, b rawvalue.Map) []PropertyChange {
	seen := make(map[string]bool, len(a)+len(b))
	var out []PropertyChange
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	for k := range seen {
		av, aok := a[k]
		bv, bok := b[k]
		if aok && bok && extraValuesEqual(av, bv) {
			continue
		}
		var aval, bval interface{}
		if aok {
			_ = json.Unmarshal(av, &aval)
		}
		if bok {
			_ = json.Unmarshal(bv, &bval)
		}
		out = append(out, PropertyChange{Field: "extra." + k, Old: aval, New: bval})
	}
	return out
}

func extraValuesEqual(a, b json.RawMessage) bool {
	var as, bs string
	if json.Unmarshal(a, &as) == nil && json.Unmarshal(b, &bs) == nil {
		if looksLikeDate.MatchString(as) && looksLikeDate.MatchString(bs) {
			return equality.Dates(as, bs)
		}
	}
	return equality.Raw(a, b)
}

// compareNodeProperties diffs every scalar field on a matched node pair
// (identifiers, labels, and data_quality are diffed separately as they're
// set-valued rather than scalar).
func compareNodeProperties(a, b model.Node) []PropertyChange {
	var out []PropertyChange
	add := func(c *PropertyChange) {
		if c != nil {
			out = append(out, *c)
		}
	}

	add(maybeChange("name", a.Name, b.Name, equality.Strings))
	add(maybeChange("jurisdiction", countryCodeString(a.Jurisdiction), countryCodeString(b.Jurisdiction), equality.Strings))
	add(maybeChange("status", a.Status, b.Status, valuesEqual[model.OrganizationStatus]))
	add(maybeChange("governance_structure", a.GovernanceStructure, b.GovernanceStructure, equality.Strings))
	add(maybeChange("operator", a.Operator, b.Operator, equality.Strings))
	add(maybeChange("address", a.Address, b.Address, equality.Strings))
	add(geoChange(a.Geo, b.Geo))
	add(maybeChange("commodity_code", a.CommodityCode, b.CommodityCode, equality.Strings))
	add(maybeChange("unit", a.Unit, b.Unit, equality.Strings))
	add(maybeChange("role", a.Role, b.Role, equality.Strings))
	add(maybeChange("attestation_type", a.AttestationType, b.AttestationType, valuesEqual[model.AttestationType]))
	add(maybeChange("standard", a.Standard, b.Standard, equality.Strings))
	add(maybeChange("issuer", a.Issuer, b.Issuer, equality.Strings))
	add(maybeChange("valid_from", a.ValidFrom, b.ValidFrom, equality.Dates))
	add(optionalDateChange("valid_to", a.ValidTo, b.ValidTo))
	add(maybeChange("outcome", a.Outcome, b.Outcome, valuesEqual[model.AttestationOutcome]))
	add(maybeChange("attestation_status", a.AttestationStatus, b.AttestationStatus, valuesEqual[model.AttestationStatus]))
	add(maybeChange("reference", a.Reference, b.Reference, equality.Strings))
	add(maybeChange("risk_severity", a.RiskSeverity, b.RiskSeverity, valuesEqual[model.RiskSeverity]))
	add(maybeChange("risk_likelihood", a.RiskLikelihood, b.RiskLikelihood, valuesEqual[model.RiskLikelihood]))
	add(maybeChange("lot_id", a.LotId, b.LotId, equality.Strings))
	add(maybeChange("quantity", a.Quantity, b.Quantity, equality.Numbers))
	add(maybeChange("production_date", a.ProductionDate, b.ProductionDate, equality.Dates))
	add(maybeChange("origin_country", countryCodeString(a.OriginCountry), countryCodeString(b.OriginCountry), equality.Strings))
	add(maybeChange("direct_emissions_co2e", a.DirectEmissionsCO2e, b.DirectEmissionsCO2e, equality.Numbers))
	add(maybeChange("indirect_emissions_co2e", a.IndirectEmissionsCO2e, b.IndirectEmissionsCO2e, equality.Numbers))
	add(maybeChange("emission_factor_source", a.EmissionFactorSource, b.EmissionFactorSource, valuesEqual[model.EmissionFactorSource]))
	add(maybeChange("installation_id", a.InstallationId, b.InstallationId, equality.Strings))

	out = append(out, compareDataQuality(a.DataQuality, b.DataQuality)...)
	out = append(out, compareExtra(a.Extra, b.Extra)...)
	return out
}

func countryCodeString(c *primitives.CountryCode) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func geoChange(a, b *model.Geo) *PropertyChange {
	if a == nil && b == nil {
		return nil
	}
	if a != nil && b != nil && equality.Numbers(a.Lat, b.Lat) && equality.Numbers(a.Lon, b.Lon) {
		return nil
	}
	return &PropertyChange{Field: "geo", Old: toValue(a), New: toValue(b)}
}

// compareEdgeProperties diffs every scalar field of the properties bag
// attached to a matched edge pair.
func compareEdgeProperties(a, b model.EdgeProperties) []PropertyChange {
	var out []PropertyChange
	add := func(c *PropertyChange) {
		if c != nil {
			out = append(out, *c)
		}
	}

	add(maybeChange("percentage", a.Percentage, b.Percentage, equality.Numbers))
	add(maybeChange("direct", a.Direct, b.Direct, valuesEqual[bool]))
	add(maybeChange("control_type", a.ControlType, b.ControlType, valuesEqual[model.ControlType]))
	add(maybeChange("consolidation_basis", a.ConsolidationBasis, b.ConsolidationBasis, valuesEqual[model.ConsolidationBasis]))
	add(maybeChange("event_type", a.EventType, b.EventType, valuesEqual[model.EventType]))
	add(maybeChange("effective_date", a.EffectiveDate, b.EffectiveDate, equality.Dates))
	add(maybeChange("commodity", a.Commodity, b.Commodity, equality.Strings))
	add(maybeChange("contract_ref", a.ContractRef, b.ContractRef, equality.Strings))
	add(maybeChange("volume", a.Volume, b.Volume, equality.Numbers))
	add(maybeChange("volume_unit", a.VolumeUnit, b.VolumeUnit, equality.Strings))
	add(maybeChange("annual_value", a.AnnualValue, b.AnnualValue, equality.Numbers))
	add(maybeChange("value_currency", a.ValueCurrency, b.ValueCurrency, equality.Strings))
	add(maybeChange("tier", a.Tier, b.Tier, valuesEqual[int]))
	add(maybeChange("service_type", a.ServiceType, b.ServiceType, valuesEqual[model.ServiceType]))
	add(maybeChange("scope", a.Scope, b.Scope, equality.Strings))

	out = append(out, compareDataQuality(a.DataQuality, b.DataQuality)...)
	out = append(out, compareExtra(a.Extra, b.Extra)...)
	return out
}
