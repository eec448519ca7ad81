package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"recscope/internal/catalog"
	"recscope/internal/scope"
	id "recscope/pkg/domain"
	"recscope/pkg/platform/sentinel"
)

// PostgresStore persists assessments in PostgreSQL. The scope snapshot is
// stored as JSON; the filtering metadata lives in dedicated columns so the
// version-guarded update covers all of them in one statement.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, a *Assessment) error {
	scopeJSON, err := marshalScope(a.Scope)
	if err != nil {
		return err
	}
	codes := recCodeStrings(a.FilteringInfo.ApplicableRecCodes)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assessments (
			id, tenant_id, intake_id, catalog_version,
			scope_state, scope, last_refreshed, filtered_questions_count,
			applicable_rec_codes, version, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		uuid.UUID(a.ID), uuid.UUID(a.TenantID), uuid.UUID(a.IntakeID), a.CatalogVersion,
		string(a.ScopeState), scopeJSON, a.FilteringInfo.LastRefreshed,
		a.FilteringInfo.FilteredQuestionsCount, pq.Array(codes), a.Version, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, assessmentID id.AssessmentID) (*Assessment, error) {
	var (
		a         Assessment
		asmtID    uuid.UUID
		tenID     uuid.UUID
		intID     uuid.UUID
		state     string
		scopeJSON []byte
		codes     pq.StringArray
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, intake_id, catalog_version,
			scope_state, scope, last_refreshed, filtered_questions_count,
			applicable_rec_codes, version, created_at
		FROM assessments WHERE id = $1`,
		uuid.UUID(assessmentID),
	).Scan(
		&asmtID, &tenID, &intID, &a.CatalogVersion,
		&state, &scopeJSON, &a.FilteringInfo.LastRefreshed,
		&a.FilteringInfo.FilteredQuestionsCount, &codes, &a.Version, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find assessment %s: %w", assessmentID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find assessment: %w", err)
	}

	a.ID = id.AssessmentID(asmtID)
	a.TenantID = id.TenantID(tenID)
	a.IntakeID = id.IntakeID(intID)
	a.ScopeState = ScopeState(state)
	a.FilteringInfo.ApplicableRecCodes = recCodesFromStrings(codes)
	if len(scopeJSON) > 0 {
		var result scope.Result
		if err := json.Unmarshal(scopeJSON, &result); err != nil {
			return nil, fmt.Errorf("decode scope snapshot: %w", err)
		}
		a.Scope = &result
	}
	return &a, nil
}

func (s *PostgresStore) ApplyScope(ctx context.Context, assessmentID id.AssessmentID, expectedVersion int64, result *scope.Result, info FilteringInfo) error {
	scopeJSON, err := marshalScope(result)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE assessments
		SET scope = $3, scope_state = $4,
			last_refreshed = $5, filtered_questions_count = $6, applicable_rec_codes = $7,
			version = version + 1
		WHERE id = $1 AND version = $2`,
		uuid.UUID(assessmentID), expectedVersion,
		scopeJSON, string(ScopeStateFresh),
		info.LastRefreshed, info.FilteredQuestionsCount,
		pq.Array(recCodeStrings(info.ApplicableRecCodes)),
	)
	if err != nil {
		return fmt.Errorf("apply scope: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply scope: %w", err)
	}
	if affected == 0 {
		// Either the row is gone or another writer advanced the version.
		if _, findErr := s.FindByID(ctx, assessmentID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("apply scope %s: %w", assessmentID, sentinel.ErrConflict)
	}
	return nil
}

func (s *PostgresStore) MarkStale(ctx context.Context, assessmentID id.AssessmentID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE assessments SET scope_state = $2 WHERE id = $1`,
		uuid.UUID(assessmentID), string(ScopeStateStale),
	)
	if err != nil {
		return fmt.Errorf("mark stale: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark stale: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mark stale %s: %w", assessmentID, sentinel.ErrNotFound)
	}
	return nil
}

func marshalScope(result *scope.Result) ([]byte, error) {
	if result == nil {
		return nil, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode scope snapshot: %w", err)
	}
	return data, nil
}

func recCodeStrings(codes []catalog.RecCode) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}

func recCodesFromStrings(raw []string) []catalog.RecCode {
	if len(raw) == 0 {
		return nil
	}
	out := make([]catalog.RecCode, len(raw))
	for i, c := range raw {
		out[i] = catalog.RecCode(c)
	}
	return out
}
