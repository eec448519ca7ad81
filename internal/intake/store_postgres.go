package intake

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "recscope/pkg/domain"
	"recscope/pkg/platform/sentinel"
)

// PostgresStore persists intake submissions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const intakeColumns = `id, tenant_id, organization_name, structure_type,
	total_facilities, international_shipments, status, created_at, submitted_at`

// Save upserts a draft intake. Submitted intakes are immutable: an update
// attempt against one fails with a conflict.
func (s *PostgresStore) Save(ctx context.Context, attrs *Attributes) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO intake_attributes (`+intakeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			organization_name = EXCLUDED.organization_name,
			structure_type = EXCLUDED.structure_type,
			total_facilities = EXCLUDED.total_facilities,
			international_shipments = EXCLUDED.international_shipments,
			status = EXCLUDED.status,
			submitted_at = EXCLUDED.submitted_at
		WHERE intake_attributes.status != $10`,
		uuid.UUID(attrs.ID), uuid.UUID(attrs.TenantID), attrs.OrganizationName,
		string(attrs.StructureType), attrs.TotalFacilities, attrs.InternationalShipments,
		string(attrs.Status), attrs.CreatedAt, attrs.SubmittedAt,
		string(StatusSubmitted),
	)
	if err != nil {
		return fmt.Errorf("save intake: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save intake: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("save intake %s: already submitted: %w", attrs.ID, sentinel.ErrConflict)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, intakeID id.IntakeID) (*Attributes, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+intakeColumns+`
		FROM intake_attributes WHERE id = $1`,
		uuid.UUID(intakeID),
	)
	var (
		attrs Attributes
		inID  uuid.UUID
		tenID uuid.UUID
	)
	err := row.Scan(
		&inID, &tenID, &attrs.OrganizationName, &attrs.StructureType,
		&attrs.TotalFacilities, &attrs.InternationalShipments, &attrs.Status,
		&attrs.CreatedAt, &attrs.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find intake %s: %w", intakeID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find intake: %w", err)
	}
	attrs.ID = id.IntakeID(inID)
	attrs.TenantID = id.TenantID(tenID)
	return &attrs, nil
}
