package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BayFX/omtsf/pkg/omtsf/model"
)

var (
	leiShapeRe      = regexp.MustCompile(`^[A-Z0-9]{18}[0-9]{2}$`)
	dunsShapeRe     = regexp.MustCompile(`^[0-9]{9}$`)
	glnShapeRe      = regexp.MustCompile(`^[0-9]{13}$`)
	reverseDomainRe = regexp.MustCompile(`^[a-z0-9]+(\.[a-z0-9]+)+[.-][a-zA-Z0-9_-]+$`)
)

var coreSchemes = map[string]bool{
	"lei": true, "duns": true, "gln": true, "nat-reg": true, "vat": true,
	"internal": true, "opaque": true,
}

var schemesRequiringAuthority = map[string]bool{
	"nat-reg": true, "vat": true, "internal": true,
}

// isReverseDomain reports whether s looks like a reverse-domain-dotted
// extension identifier (e.g. "com.acme.internal-tracking-id").
func isReverseDomain(s string) bool {
	if coreSchemes[s] || s == "" {
		return false
	}
	return reverseDomainRe.MatchString(s) && strings.Contains(s, ".")
}

// l1Eid01 — every identifier has a non-empty scheme.
type l1Eid01 struct{}

func (l1Eid01) ID() RuleId   { return L1Eid01 }
func (l1Eid01) Level() Level { return L1 }

func (l1Eid01) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if id.Scheme == "" {
			*diags = append(*diags, NewDiagnostic(L1Eid01, SeverityError, LocationIdentifier(nodeID, idx, "scheme"),
				fmt.Sprintf("node %q identifiers[%d] has an empty scheme", nodeID, idx)))
		}
	})
}

// l1Eid02 — every identifier has a non-empty value.
type l1Eid02 struct{}

func (l1Eid02) ID() RuleId   { return L1Eid02 }
func (l1Eid02) Level() Level { return L1 }

func (l1Eid02) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if id.Value == "" {
			*diags = append(*diags, NewDiagnostic(L1Eid02, SeverityError, LocationIdentifier(nodeID, idx, "value"),
				fmt.Sprintf("node %q identifiers[%d] has an empty value", nodeID, idx)))
		}
	})
}

// l1Eid03 — authority is present when scheme is nat-reg, vat, or internal.
type l1Eid03 struct{}

func (l1Eid03) ID() RuleId   { return L1Eid03 }
func (l1Eid03) Level() Level { return L1 }

func (l1Eid03) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if schemesRequiringAuthority[id.Scheme] && (id.Authority == nil || *id.Authority == "") {
			*diags = append(*diags, NewDiagnostic(L1Eid03, SeverityError, LocationIdentifier(nodeID, idx, "authority"),
				fmt.Sprintf("node %q identifiers[%d] scheme %q requires an authority", nodeID, idx, id.Scheme)))
		}
	})
}

// l1Eid04 — scheme is a core scheme or a reverse-domain-dotted extension.
type l1Eid04 struct{}

func (l1Eid04) ID() RuleId   { return L1Eid04 }
func (l1Eid04) Level() Level { return L1 }

func (l1Eid04) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if id.Scheme == "" || coreSchemes[id.Scheme] || isReverseDomain(id.Scheme) {
			return
		}
		*diags = append(*diags, NewDiagnostic(L1Eid04, SeverityError, LocationIdentifier(nodeID, idx, "scheme"),
			fmt.Sprintf("node %q identifiers[%d] scheme %q is neither core nor reverse-domain extension", nodeID, idx, id.Scheme)))
	})
}

// l1Eid05 — LEI matches the ISO 17442 shape and passes the ISO 7064 MOD
// 97-10 check digit computation (letters A-Z encode as 10-35).
type l1Eid05 struct{}

func (l1Eid05) ID() RuleId   { return L1Eid05 }
func (l1Eid05) Level() Level { return L1 }

func (l1Eid05) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if id.Scheme != "lei" {
			return
		}
		if !leiShapeRe.MatchString(id.Value) {
			*diags = append(*diags, NewDiagnostic(L1Eid05, SeverityError, LocationIdentifier(nodeID, idx, "value"),
				fmt.Sprintf("node %q identifiers[%d] LEI %q does not match the required shape", nodeID, idx, id.Value)))
			return
		}
		if !leiCheckDigitValid(id.Value) {
			*diags = append(*diags, NewDiagnostic(L1Eid05, SeverityError, LocationIdentifier(nodeID, idx, "value"),
				fmt.Sprintf("node %q identifiers[%d] LEI %q fails the MOD 97-10 check digit", nodeID, idx, id.Value)))
		}
	})
}

// leiCheckDigitValid implements ISO 7064 MOD 97-10 over the full 20-character
// LEI: letters encode as A=10..Z=35, the resulting decimal digit string mod
// 97 must equal 1.
func leiCheckDigitValid(lei string) bool {
	var sb strings.Builder
	for _, r := range lei {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteString(strconv.Itoa(int(r-'A') + 10))
		default:
			return false
		}
	}
	return mod97(sb.String()) == 1
}

// mod97 computes the remainder of the decimal digit string s modulo 97,
// processing digit-by-digit to avoid overflow on long strings.
func mod97(s string) int {
	remainder := 0
	for _, r := range s {
		d := int(r - '0')
		remainder = (remainder*10 + d) % 97
	}
	return remainder
}

// l1Eid06 — DUNS matches ^[0-9]{9}$.
type l1Eid06 struct{}

func (l1Eid06) ID() RuleId   { return L1Eid06 }
func (l1Eid06) Level() Level { return L1 }

func (l1Eid06) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if id.Scheme != "duns" {
			return
		}
		if !dunsShapeRe.MatchString(id.Value) {
			*diags = append(*diags, NewDiagnostic(L1Eid06, SeverityError, LocationIdentifier(nodeID, idx, "value"),
				fmt.Sprintf("node %q identifiers[%d] DUNS %q does not match ^[0-9]{9}$", nodeID, idx, id.Value)))
		}
	})
}

// l1Eid07 — GLN matches ^[0-9]{13}$ and passes the GS1 mod-10 check digit.
type l1Eid07 struct{}

func (l1Eid07) ID() RuleId   { return L1Eid07 }
func (l1Eid07) Level() Level { return L1 }

func (l1Eid07) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if id.Scheme != "gln" {
			return
		}
		if !glnShapeRe.MatchString(id.Value) {
			*diags = append(*diags, NewDiagnostic(L1Eid07, SeverityError, LocationIdentifier(nodeID, idx, "value"),
				fmt.Sprintf("node %q identifiers[%d] GLN %q does not match ^[0-9]{13}$", nodeID, idx, id.Value)))
			return
		}
		if !gs1Mod10Valid(id.Value) {
			*diags = append(*diags, NewDiagnostic(L1Eid07, SeverityError, LocationIdentifier(nodeID, idx, "value"),
				fmt.Sprintf("node %q identifiers[%d] GLN %q fails the GS1 mod-10 check digit", nodeID, idx, id.Value)))
		}
	})
}

// gs1Mod10Valid validates the GS1 check digit: from the rightmost digit
// (the check digit itself, excluded from the weighting) moving left,
// alternate multiplying by 3 and 1; the sum plus the check digit must be a
// multiple of 10.
func gs1Mod10Valid(value string) bool {
	digits := make([]int, len(value))
	for i, r := range value {
		digits[i] = int(r - '0')
	}
	checkDigit := digits[len(digits)-1]
	payload := digits[:len(digits)-1]

	sum := 0
	for i := 0; i < len(payload); i++ {
		// Rightmost payload digit gets weight 3.
		posFromRight := len(payload) - 1 - i
		if posFromRight%2 == 0 {
			sum += payload[i] * 3
		} else {
			sum += payload[i]
		}
	}
	computed := (10 - (sum % 10)) % 10
	return computed == checkDigit
}

// l1Eid08 — valid_from/valid_to, if present, are valid (calendar-checked)
// ISO 8601 dates.
type l1Eid08 struct{}

func (l1Eid08) ID() RuleId   { return L1Eid08 }
func (l1Eid08) Level() Level { return L1 }

func (l1Eid08) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if id.ValidFrom != nil && !isCalendarValidDate(*id.ValidFrom) {
			*diags = append(*diags, NewDiagnostic(L1Eid08, SeverityError, LocationIdentifier(nodeID, idx, "valid_from"),
				fmt.Sprintf("node %q identifiers[%d] valid_from %q is not a valid calendar date", nodeID, idx, *id.ValidFrom)))
		}
		if id.ValidTo != nil {
			if d, ok := id.ValidTo.Date(); ok && !isCalendarValidDate(d) {
				*diags = append(*diags, NewDiagnostic(L1Eid08, SeverityError, LocationIdentifier(nodeID, idx, "valid_to"),
					fmt.Sprintf("node %q identifiers[%d] valid_to %q is not a valid calendar date", nodeID, idx, d)))
			}
		}
	})
}

// isCalendarValidDate parses s as YYYY-MM-DD and checks it denotes a real
// calendar date (rejecting e.g. 2023-02-29 or 2024-13-01).
func isCalendarValidDate(s string) bool {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false
	}
	return t.Format("2006-01-02") == s
}

// l1Eid09 — valid_from <= valid_to when both are present dates.
type l1Eid09 struct{}

func (l1Eid09) ID() RuleId   { return L1Eid09 }
func (l1Eid09) Level() Level { return L1 }

func (l1Eid09) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if id.ValidFrom == nil || id.ValidTo == nil {
			return
		}
		to, ok := id.ValidTo.Date()
		if !ok {
			return // absent or no-expiry: no upper bound to compare against
		}
		if normalizeDate(*id.ValidFrom) > normalizeDate(to) {
			*diags = append(*diags, NewDiagnostic(L1Eid09, SeverityError, LocationIdentifier(nodeID, idx, "valid_to"),
				fmt.Sprintf("node %q identifiers[%d] valid_from %q is after valid_to %q", nodeID, idx, *id.ValidFrom, to)))
		}
	})
}

func normalizeDate(s string) string {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d-%d-%d", &y, &m, &d); err != nil {
		return s
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// l1Eid10 — sensitivity, if present, is one of public/restricted/confidential.
type l1Eid10 struct{}

func (l1Eid10) ID() RuleId   { return L1Eid10 }
func (l1Eid10) Level() Level { return L1 }

func (l1Eid10) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	forEachIdentifier(file, func(nodeID string, idx int, id model.Identifier) {
		if id.Sensitivity == nil {
			return
		}
		switch *id.Sensitivity {
		case model.SensitivityPublic, model.SensitivityRestricted, model.SensitivityConfidential:
			return
		}
		*diags = append(*diags, NewDiagnostic(L1Eid10, SeverityError, LocationIdentifier(nodeID, idx, "sensitivity"),
			fmt.Sprintf("node %q identifiers[%d] has invalid sensitivity %q", nodeID, idx, *id.Sensitivity)))
	})
}

// l1Eid11 — no duplicate (scheme, value, authority) tuple on the same node.
type l1Eid11 struct{}

func (l1Eid11) ID() RuleId   { return L1Eid11 }
func (l1Eid11) Level() Level { return L1 }

func (l1Eid11) Check(file *model.File, diags *[]Diagnostic, _ ExternalDataSource) {
	for _, n := range file.Nodes {
		seen := make(map[string]bool, len(n.Identifiers))
		for idx, id := range n.Identifiers {
			auth := ""
			if id.Authority != nil {
				auth = *id.Authority
			}
			key := id.Scheme + "\x00" + id.Value + "\x00" + auth
			if seen[key] {
				*diags = append(*diags, NewDiagnostic(L1Eid11, SeverityError, LocationIdentifier(n.Id.String(), idx, ""),
					fmt.Sprintf("node %q has a duplicate identifier tuple (scheme=%q, value=%q, authority=%q)",
						n.Id.String(), id.Scheme, id.Value, auth)))
				continue
			}
			seen[key] = true
		}
	}
}

func forEachIdentifier(file *model.File, fn func(nodeID string, idx int, id model.Identifier)) {
	for _, n := range file.Nodes {
		for idx, id := range n.Identifiers {
			fn(n.Id.String(), idx, id)
		}
	}
}
