package handler

import (
	"time"

	"recscope/internal/assessment"
	"recscope/internal/scope"
)

// AssessmentResponse is the HTTP representation of an assessment and its
// cached scope.
type AssessmentResponse struct {
	ID             string         `json:"id"`
	TenantID       string         `json:"tenant_id"`
	IntakeID       string         `json:"intake_id"`
	CatalogVersion string         `json:"catalog_version"`
	ScopeState     string         `json:"scope_state"`
	Scope          *ScopeResponse `json:"scope,omitempty"`
	FilteringInfo  FilteringInfo  `json:"filtering_info"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ScopeResponse is the scope portion of the response.
type ScopeResponse struct {
	ApplicableRecCodes []string           `json:"applicable_rec_codes"`
	RequiredAppendices []string           `json:"required_appendices"`
	ScopeStatement     string             `json:"scope_statement"`
	Complexity         ComplexityResponse `json:"complexity"`
}

// ComplexityResponse is the complexity breakdown of the response.
type ComplexityResponse struct {
	FacilityCount  int     `json:"facility_count"`
	ActivityKinds  int     `json:"activity_kinds"`
	ExportMarkets  bool    `json:"export_markets"`
	DataBearing    bool    `json:"data_bearing"`
	FocusMaterials bool    `json:"focus_materials"`
	MultiSite      bool    `json:"multi_site"`
	Overall        float64 `json:"overall"`
}

// FilteringInfo is the cached filtering metadata of the response.
type FilteringInfo struct {
	LastRefreshed          time.Time `json:"last_refreshed"`
	FilteredQuestionsCount int       `json:"filtered_questions_count"`
	ApplicableRecCodes     []string  `json:"applicable_rec_codes"`
}

// FromAssessment converts a domain assessment to an HTTP response.
func FromAssessment(a *assessment.Assessment) *AssessmentResponse {
	resp := &AssessmentResponse{
		ID:             a.ID.String(),
		TenantID:       a.TenantID.String(),
		IntakeID:       a.IntakeID.String(),
		CatalogVersion: a.CatalogVersion,
		ScopeState:     string(a.ScopeState),
		FilteringInfo: FilteringInfo{
			LastRefreshed:          a.FilteringInfo.LastRefreshed,
			FilteredQuestionsCount: a.FilteringInfo.FilteredQuestionsCount,
			ApplicableRecCodes:     codeStrings(a.FilteringInfo.ApplicableRecCodes),
		},
		CreatedAt: a.CreatedAt,
	}
	if a.Scope != nil {
		resp.Scope = fromScope(a.Scope)
	}
	return resp
}

func fromScope(s *scope.Result) *ScopeResponse {
	appendices := make([]string, 0, len(s.RequiredAppendices))
	for _, app := range s.RequiredAppendices {
		appendices = append(appendices, string(app))
	}
	return &ScopeResponse{
		ApplicableRecCodes: codeStrings(s.ApplicableRecCodes),
		RequiredAppendices: appendices,
		ScopeStatement:     s.ScopeStatement,
		Complexity: ComplexityResponse{
			FacilityCount:  s.Complexity.FacilityCount,
			ActivityKinds:  s.Complexity.ActivityKinds,
			ExportMarkets:  s.Complexity.ExportMarkets,
			DataBearing:    s.Complexity.DataBearing,
			FocusMaterials: s.Complexity.FocusMaterials,
			MultiSite:      s.Complexity.MultiSite,
			Overall:        s.Complexity.Overall,
		},
	}
}

func codeStrings[T ~string](codes []T) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, string(c))
	}
	return out
}
