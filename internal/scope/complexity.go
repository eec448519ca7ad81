package scope

import (
	"recscope/internal/facility"
	"recscope/internal/intake"
)

// Weights tune the complexity score per contributing factor. They are
// configuration, not rule logic: operations can re-balance the score without
// touching the rule table.
type Weights struct {
	FacilityCount  float64
	ActivityKind   float64
	ExportMarkets  float64
	DataBearing    float64
	FocusMaterials float64
	MultiSite      float64
}

// DefaultWeights are the starting calibration; override via configuration.
func DefaultWeights() Weights {
	return Weights{
		FacilityCount:  1.0,
		ActivityKind:   0.5,
		ExportMarkets:  2.0,
		DataBearing:    3.0,
		FocusMaterials: 2.5,
		MultiSite:      1.5,
	}
}

// complexity computes the structured breakdown and the weighted overall
// score for a facility set.
func (r *Resolver) complexity(in *intake.Attributes, facilities []*facility.Attributes) ComplexityFactors {
	factors := ComplexityFactors{
		FacilityCount: len(facilities),
		MultiSite:     in.StructureType != intake.StructureSingle || in.TotalFacilities > 1,
		ExportMarkets: in.InternationalShipments,
	}

	kinds := make(map[facility.ProcessingActivity]bool)
	for _, f := range facilities {
		for _, act := range f.ProcessingActivities {
			kinds[act] = true
		}
		if f.DataBearingHandling {
			factors.DataBearing = true
		}
		if f.FocusMaterialsPresence {
			factors.FocusMaterials = true
		}
		if f.ExportMarkets {
			factors.ExportMarkets = true
		}
	}
	factors.ActivityKinds = len(kinds)

	score := r.weights.FacilityCount*float64(factors.FacilityCount) +
		r.weights.ActivityKind*float64(factors.ActivityKinds)
	if factors.ExportMarkets {
		score += r.weights.ExportMarkets
	}
	if factors.DataBearing {
		score += r.weights.DataBearing
	}
	if factors.FocusMaterials {
		score += r.weights.FocusMaterials
	}
	if factors.MultiSite {
		score += r.weights.MultiSite
	}
	factors.Overall = score
	return factors
}
