package facility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "recscope/pkg/domain"
	"recscope/pkg/platform/sentinel"
)

// PostgresStore persists facility attributes in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const facilityColumns = `id, tenant_id, name, processing_activities,
	data_bearing_handling, focus_materials_presence,
	internal_processes, contracted_processes, export_markets,
	flag_cr1, flag_cr2, flag_cr3, flag_cr4, flag_cr5, flag_app_a, flag_app_b,
	updated_at`

func (s *PostgresStore) Save(ctx context.Context, attrs *Attributes) error {
	if err := attrs.Validate(); err != nil {
		return err
	}
	activities := make([]string, len(attrs.ProcessingActivities))
	for i, act := range attrs.ProcessingActivities {
		activities[i] = string(act)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO facility_attributes (`+facilityColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			processing_activities = EXCLUDED.processing_activities,
			data_bearing_handling = EXCLUDED.data_bearing_handling,
			focus_materials_presence = EXCLUDED.focus_materials_presence,
			internal_processes = EXCLUDED.internal_processes,
			contracted_processes = EXCLUDED.contracted_processes,
			export_markets = EXCLUDED.export_markets,
			updated_at = EXCLUDED.updated_at`,
		uuid.UUID(attrs.ID), uuid.UUID(attrs.TenantID), attrs.Name, pq.Array(activities),
		attrs.DataBearingHandling, attrs.FocusMaterialsPresence,
		attrs.InternalProcesses, attrs.ContractedProcesses, attrs.ExportMarkets,
		attrs.ClauseFlags.CR1, attrs.ClauseFlags.CR2, attrs.ClauseFlags.CR3,
		attrs.ClauseFlags.CR4, attrs.ClauseFlags.CR5,
		attrs.ClauseFlags.AppA, attrs.ClauseFlags.AppB,
		attrs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save facility: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, facilityID id.FacilityID) (*Attributes, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+facilityColumns+`
		FROM facility_attributes WHERE id = $1`,
		uuid.UUID(facilityID),
	)
	attrs, err := scanFacility(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find facility %s: %w", facilityID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find facility: %w", err)
	}
	return attrs, nil
}

func (s *PostgresStore) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*Attributes, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+facilityColumns+`
		FROM facility_attributes WHERE tenant_id = $1
		ORDER BY id`,
		uuid.UUID(tenantID),
	)
	if err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	defer rows.Close()

	var out []*Attributes
	for rows.Next() {
		attrs, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("scan facility: %w", err)
		}
		out = append(out, attrs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facilities: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) UpdateClauseFlags(ctx context.Context, facilityID id.FacilityID, flags ClauseFlags) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE facility_attributes
		SET flag_cr1 = $2, flag_cr2 = $3, flag_cr3 = $4, flag_cr4 = $5, flag_cr5 = $6,
			flag_app_a = $7, flag_app_b = $8
		WHERE id = $1`,
		uuid.UUID(facilityID),
		flags.CR1, flags.CR2, flags.CR3, flags.CR4, flags.CR5, flags.AppA, flags.AppB,
	)
	if err != nil {
		return fmt.Errorf("update clause flags: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update clause flags: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update clause flags %s: %w", facilityID, sentinel.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFacility(row rowScanner) (*Attributes, error) {
	var (
		attrs      Attributes
		facID      uuid.UUID
		tenID      uuid.UUID
		activities pq.StringArray
	)
	err := row.Scan(
		&facID, &tenID, &attrs.Name, &activities,
		&attrs.DataBearingHandling, &attrs.FocusMaterialsPresence,
		&attrs.InternalProcesses, &attrs.ContractedProcesses, &attrs.ExportMarkets,
		&attrs.ClauseFlags.CR1, &attrs.ClauseFlags.CR2, &attrs.ClauseFlags.CR3,
		&attrs.ClauseFlags.CR4, &attrs.ClauseFlags.CR5,
		&attrs.ClauseFlags.AppA, &attrs.ClauseFlags.AppB,
		&attrs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	attrs.ID = id.FacilityID(facID)
	attrs.TenantID = id.TenantID(tenID)
	attrs.ProcessingActivities = make([]ProcessingActivity, len(activities))
	for i, act := range activities {
		attrs.ProcessingActivities[i] = ProcessingActivity(act)
	}
	return &attrs, nil
}
