package scope

import (
	"fmt"
	"strings"

	"recscope/internal/intake"
)

// buildStatement renders the human-readable audit trail for a resolution.
// Reasons appear in rule-declaration order and facilities within a reason in
// facility-id order, so the text is byte-stable across runs regardless of the
// order facilities were fetched in.
func buildStatement(in *intake.Attributes, fired []firedRule, totalFacilities int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scope of certification for %s (%s, %d %s):",
		in.OrganizationName, in.StructureType, totalFacilities, pluralFacilities(totalFacilities))

	for i, fr := range fired {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(" ")
		b.WriteString(string(fr.rule.Codes[0]))
		for _, code := range fr.rule.Codes[1:] {
			b.WriteString("+" + string(code))
		}
		if fr.rule.Appendix != "" {
			fmt.Fprintf(&b, " [%s]", fr.rule.Appendix)
		}
		b.WriteString(": " + fr.rule.Reason)
		if len(fr.facilities) == totalFacilities {
			b.WriteString(" (all facilities)")
		} else {
			names := make([]string, len(fr.facilities))
			for j, f := range fr.facilities {
				names[j] = f.Name
			}
			fmt.Fprintf(&b, " (%s)", strings.Join(names, ", "))
		}
	}
	b.WriteString(".")
	return b.String()
}

func pluralFacilities(n int) string {
	if n == 1 {
		return "facility"
	}
	return "facilities"
}
