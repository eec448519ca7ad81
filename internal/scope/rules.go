package scope

import (
	"recscope/internal/catalog"
	"recscope/internal/facility"
	"recscope/internal/intake"
)

// applicabilityRule contributes REC codes (and optionally one appendix) when
// its predicate holds for a facility under the given intake. Rules fire
// independently and their outputs union, so no precedence is needed; the
// declaration order below is still load-bearing because it fixes the order of
// codes and scope-statement reasons.
type applicabilityRule struct {
	Name     string
	Reason   string
	Codes    []catalog.RecCode
	Appendix catalog.CategoryCode
	Match    func(in *intake.Attributes, f *facility.Attributes) bool
}

// REC codes contributed by the rule table.
const (
	CodeCore           catalog.RecCode = "REC-CORE"
	CodeDataSanitation catalog.RecCode = "REC-DS"
	CodeFocusMaterials catalog.RecCode = "REC-FM"
	CodeProcessing     catalog.RecCode = "REC-PROC"
	CodeLogistics      catalog.RecCode = "REC-LOG"
	CodeDownstream     catalog.RecCode = "REC-DWN"
	CodeExports        catalog.RecCode = "REC-EXP"
	CodeMultiSite      catalog.RecCode = "REC-MSP"
)

// applicabilityRules is the single source of truth for scope derivation.
// Each rule is a pure predicate over (intake, facility); one matching
// facility is enough to pull the rule's codes into the assessment scope.
var applicabilityRules = []applicabilityRule{
	{
		Name:   "core-baseline",
		Reason: "core requirements apply to every certified facility",
		Codes:  []catalog.RecCode{CodeCore},
		Match: func(_ *intake.Attributes, _ *facility.Attributes) bool {
			return true
		},
	},
	{
		Name:     "data-sanitization",
		Reason:   "data-bearing devices are handled",
		Codes:    []catalog.RecCode{CodeDataSanitation},
		Appendix: catalog.AppendixA,
		Match: func(_ *intake.Attributes, f *facility.Attributes) bool {
			return f.DataBearingHandling
		},
	},
	{
		Name:     "focus-materials",
		Reason:   "focus materials are present",
		Codes:    []catalog.RecCode{CodeFocusMaterials},
		Appendix: catalog.AppendixB,
		Match: func(_ *intake.Attributes, f *facility.Attributes) bool {
			return f.FocusMaterialsPresence
		},
	},
	{
		Name:   "mechanical-processing",
		Reason: "materials are mechanically processed on site",
		Codes:  []catalog.RecCode{CodeProcessing},
		Match: func(_ *intake.Attributes, f *facility.Attributes) bool {
			return f.HasAnyActivity(
				facility.ActivityDisassembly,
				facility.ActivityShredding,
				facility.ActivityRecovery,
			)
		},
	},
	{
		Name:   "logistics-chain",
		Reason: "materials are stored or transported under custody",
		Codes:  []catalog.RecCode{CodeLogistics},
		Match: func(_ *intake.Attributes, f *facility.Attributes) bool {
			return f.HasAnyActivity(
				facility.ActivityStorage,
				facility.ActivityTransportation,
			)
		},
	},
	{
		Name:   "downstream-vendors",
		Reason: "processing is contracted to downstream vendors",
		Codes:  []catalog.RecCode{CodeDownstream},
		Match: func(_ *intake.Attributes, f *facility.Attributes) bool {
			return f.ContractedProcesses
		},
	},
	{
		Name:   "export-controls",
		Reason: "materials move across international borders",
		Codes:  []catalog.RecCode{CodeExports},
		Match: func(in *intake.Attributes, f *facility.Attributes) bool {
			return f.ExportMarkets || in.InternationalShipments
		},
	},
	{
		Name:   "multi-site-program",
		Reason: "certification covers more than one facility",
		Codes:  []catalog.RecCode{CodeMultiSite},
		Match: func(in *intake.Attributes, _ *facility.Attributes) bool {
			return in.StructureType != intake.StructureSingle || in.TotalFacilities > 1
		},
	},
}
