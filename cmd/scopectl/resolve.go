package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"recscope/internal/catalog"
	"recscope/internal/facility"
	"recscope/internal/intake"
	"recscope/internal/scope"
	id "recscope/pkg/domain"
)

// scenarioFile is the YAML input for resolve: one intake plus its facilities,
// without store-level identity bookkeeping. IDs are generated on load.
type scenarioFile struct {
	Intake struct {
		OrganizationName       string `yaml:"organization_name"`
		StructureType          string `yaml:"structure_type"`
		TotalFacilities        int    `yaml:"total_facilities"`
		InternationalShipments bool   `yaml:"international_shipments"`
	} `yaml:"intake"`
	Facilities []struct {
		Name                   string   `yaml:"name"`
		ProcessingActivities   []string `yaml:"processing_activities"`
		DataBearingHandling    bool     `yaml:"data_bearing_handling"`
		FocusMaterialsPresence bool     `yaml:"focus_materials_presence"`
		InternalProcesses      bool     `yaml:"internal_processes"`
		ContractedProcesses    bool     `yaml:"contracted_processes"`
		ExportMarkets          bool     `yaml:"export_markets"`
	} `yaml:"facilities"`
}

type resolveOutput struct {
	Scope     *scope.Result      `json:"scope"`
	Questions []catalog.Question `json:"questions,omitempty"`
	Count     int                `json:"question_count,omitempty"`
}

func newResolveCmd() *cobra.Command {
	var catalogPath string
	var withQuestions bool

	cmd := &cobra.Command{
		Use:   "resolve <scenario-file>",
		Short: "Resolve scope for an intake and facility set described in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], catalogPath, withQuestions)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog file for question filtering (required with --questions)")
	cmd.Flags().BoolVar(&withQuestions, "questions", false, "Also filter the question bank against the resolved scope")
	return cmd
}

func runResolve(cmd *cobra.Command, scenarioPath, catalogPath string, withQuestions bool) error {
	in, facilities, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}

	resolver := scope.NewResolver(scope.DefaultWeights())
	result, err := resolver.Resolve(in, facilities)
	if err != nil {
		return err
	}

	out := resolveOutput{Scope: result}
	if withQuestions {
		if catalogPath == "" {
			return fmt.Errorf("--questions requires --catalog")
		}
		version, err := catalog.LoadFile(catalogPath)
		if err != nil {
			return err
		}
		filtered, err := scope.FilterQuestions(result, version)
		if err != nil {
			return err
		}
		out.Questions = filtered.Questions
		out.Count = filtered.Count
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func loadScenario(path string) (*intake.Attributes, []*facility.Attributes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read scenario file: %w", err)
	}
	var sf scenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, nil, fmt.Errorf("parse scenario file: %w", err)
	}

	structure, err := intake.ParseStructureType(sf.Intake.StructureType)
	if err != nil {
		return nil, nil, err
	}
	tenantID := id.NewTenantID()
	in := &intake.Attributes{
		ID:                     id.NewIntakeID(),
		TenantID:               tenantID,
		OrganizationName:       sf.Intake.OrganizationName,
		StructureType:          structure,
		TotalFacilities:        sf.Intake.TotalFacilities,
		InternationalShipments: sf.Intake.InternationalShipments,
		Status:                 intake.StatusSubmitted,
	}
	if in.TotalFacilities == 0 {
		in.TotalFacilities = len(sf.Facilities)
	}

	facilities := make([]*facility.Attributes, 0, len(sf.Facilities))
	for _, ff := range sf.Facilities {
		activities := make([]facility.ProcessingActivity, 0, len(ff.ProcessingActivities))
		for _, raw := range ff.ProcessingActivities {
			act, err := facility.ParseProcessingActivity(raw)
			if err != nil {
				return nil, nil, err
			}
			activities = append(activities, act)
		}
		f := &facility.Attributes{
			ID:                     id.NewFacilityID(),
			TenantID:               tenantID,
			Name:                   ff.Name,
			ProcessingActivities:   activities,
			DataBearingHandling:    ff.DataBearingHandling,
			FocusMaterialsPresence: ff.FocusMaterialsPresence,
			InternalProcesses:      ff.InternalProcesses,
			ContractedProcesses:    ff.ContractedProcesses,
			ExportMarkets:          ff.ExportMarkets,
		}
		if err := f.Validate(); err != nil {
			return nil, nil, err
		}
		facilities = append(facilities, f)
	}
	return in, facilities, nil
}
