// Package sensitivity computes the effective disclosure sensitivity of
// identifiers and edge properties, used by both the L1-SDI-02 validation
// rule and the redaction engine's property filtering.
package sensitivity

import (
	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

// Identifier returns the effective sensitivity of id on a node of the given
// type tag. Resolution order: explicit identifier.sensitivity, then the
// person-node override (all identifiers confidential), then the per-scheme
// default table.
func Identifier(id model.Identifier, nodeType model.NodeTypeTag) model.Sensitivity {
	if id.Sensitivity != nil {
		return *id.Sensitivity
	}
	if known, ok := nodeType.Known(); ok && known == model.NodePerson {
		return model.SensitivityConfidential
	}
	return schemeDefault(id.Scheme)
}

func schemeDefault(scheme string) model.Sensitivity {
	switch scheme {
	case "lei", "duns", "gln":
		return model.SensitivityPublic
	case "nat-reg", "vat", "internal":
		return model.SensitivityRestricted
	default:
		return model.SensitivityPublic
	}
}

// EdgeProperty returns the effective sensitivity of the named property on e.
// A per-property override in Properties.PropertySensitivity wins over the
// edge-type/property default table.
func EdgeProperty(e model.Edge, propertyName string) model.Sensitivity {
	if s, ok := e.Properties.PropertySensitivity[propertyName]; ok {
		return s
	}
	return propertyDefault(e.EdgeType, propertyName)
}

func propertyDefault(edgeType model.EdgeTypeTag, propertyName string) model.Sensitivity {
	switch propertyName {
	case "contract_ref", "annual_value", "value_currency", "volume":
		return model.SensitivityRestricted
	case "volume_unit":
		return model.SensitivityPublic
	case "percentage":
		return percentageDefault(edgeType)
	default:
		return model.SensitivityPublic
	}
}

func percentageDefault(edgeType model.EdgeTypeTag) model.Sensitivity {
	known, ok := edgeType.Known()
	if !ok {
		return model.SensitivityPublic
	}
	if known == model.EdgeBeneficialOwnership {
		return model.SensitivityConfidential
	}
	return model.SensitivityPublic
}
