package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/vietddude/ramp/internal/core/domain"
	"github.com/vietddude/ramp/internal/infra/storage"
)

const uniqueViolation = "23505"

// BuildRepo implements storage.BuildRepository using PostgreSQL.
type BuildRepo struct {
	db *DB
}

// NewBuildRepo creates a new PostgreSQL build repository.
func NewBuildRepo(db *DB) *BuildRepo {
	return &BuildRepo{db: db}
}

type buildRow struct {
	ID              string    `db:"id"`
	Trigger         string    `db:"trigger"`
	BuiltAt         time.Time `db:"built_at"`
	Entries         int       `db:"entries"`
	SourceBreakdown string    `db:"source_breakdown"` // JSON text works with both drivers
	DynamicError    string    `db:"dynamic_error"`
	Valid           bool      `db:"valid"`
	Errors          string    `db:"errors"`
	Warnings        string    `db:"warnings"`
}

type addressRow struct {
	BuildID    string `db:"build_id"`
	Symbol     string `db:"symbol"`
	Network    string `db:"network"`
	Address    string `db:"address"`
	Memo       string `db:"memo"`
	Source     string `db:"source"`
	WalletType string `db:"wallet_type"`
	WalletID   string `db:"wallet_id"`
}

const insertBuild = `
INSERT INTO registry_builds
    (id, trigger, built_at, entries, source_breakdown, dynamic_error, valid, errors, warnings)
VALUES
    (:id, :trigger, :built_at, :entries, CAST(:source_breakdown AS JSONB), :dynamic_error, :valid,
     CAST(:errors AS JSONB), CAST(:warnings AS JSONB))`

const insertAddress = `
INSERT INTO registry_build_addresses
    (build_id, symbol, network, address, memo, source, wallet_type, wallet_id)
VALUES
    (:build_id, :symbol, :network, :address, :memo, :source, :wallet_type, :wallet_id)`

// RecordBuild saves a build and its address table in one transaction.
func (r *BuildRepo) RecordBuild(ctx context.Context, build *domain.RegistryBuild) error {
	row, err := toRow(build)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.NamedExecContext(ctx, insertBuild, row); err != nil {
		if isUniqueViolation(err) {
			return storage.ErrBuildExists
		}
		return fmt.Errorf("failed to save registry build: %w", err)
	}

	for _, a := range build.Addresses {
		ar := addressRow{
			BuildID:    build.ID,
			Symbol:     a.Symbol,
			Network:    string(a.Network),
			Address:    a.Address,
			Memo:       a.Memo,
			Source:     string(a.Source),
			WalletType: string(a.WalletType),
			WalletID:   a.WalletID,
		}
		if _, err := tx.NamedExecContext(ctx, insertAddress, ar); err != nil {
			return fmt.Errorf("failed to save address %s: %w", a.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registry build: %w", err)
	}
	return nil
}

// ListBuilds returns the most recent builds, newest first.
func (r *BuildRepo) ListBuilds(ctx context.Context, limit int) ([]domain.RegistryBuild, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []buildRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, trigger, built_at, entries, source_breakdown, dynamic_error, valid, errors, warnings
		FROM registry_builds
		ORDER BY built_at DESC, id
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list registry builds: %w", err)
	}

	builds := make([]domain.RegistryBuild, 0, len(rows))
	for _, row := range rows {
		b, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	return builds, nil
}

// GetBuild returns one build including its address table.
func (r *BuildRepo) GetBuild(ctx context.Context, id string) (*domain.RegistryBuild, error) {
	var row buildRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, trigger, built_at, entries, source_breakdown, dynamic_error, valid, errors, warnings
		FROM registry_builds
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrBuildNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registry build: %w", err)
	}

	build, err := row.toDomain()
	if err != nil {
		return nil, err
	}

	var addrs []addressRow
	err = r.db.SelectContext(ctx, &addrs, `
		SELECT build_id, symbol, network, address, memo, source, wallet_type, wallet_id
		FROM registry_build_addresses
		WHERE build_id = $1
		ORDER BY symbol`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get registry build addresses: %w", err)
	}
	for _, a := range addrs {
		build.Addresses = append(build.Addresses, domain.DepositAddress{
			Symbol:     a.Symbol,
			Network:    domain.Network(a.Network),
			Address:    a.Address,
			Memo:       a.Memo,
			Source:     domain.AddressSource(a.Source),
			WalletType: domain.WalletType(a.WalletType),
			WalletID:   a.WalletID,
		})
	}
	return &build, nil
}

func toRow(b *domain.RegistryBuild) (buildRow, error) {
	breakdown, err := json.Marshal(b.SourceBreakdown)
	if err != nil {
		return buildRow{}, fmt.Errorf("marshal source breakdown: %w", err)
	}
	errs, err := json.Marshal(nonNil(b.Errors))
	if err != nil {
		return buildRow{}, fmt.Errorf("marshal errors: %w", err)
	}
	warnings, err := json.Marshal(nonNil(b.Warnings))
	if err != nil {
		return buildRow{}, fmt.Errorf("marshal warnings: %w", err)
	}
	if b.SourceBreakdown == nil {
		breakdown = []byte("{}")
	}

	return buildRow{
		ID:              b.ID,
		Trigger:         b.Trigger,
		BuiltAt:         b.BuiltAt.UTC(),
		Entries:         b.Entries,
		SourceBreakdown: string(breakdown),
		DynamicError:    b.DynamicError,
		Valid:           b.Valid,
		Errors:          string(errs),
		Warnings:        string(warnings),
	}, nil
}

func (row buildRow) toDomain() (domain.RegistryBuild, error) {
	b := domain.RegistryBuild{
		ID:           row.ID,
		Trigger:      row.Trigger,
		BuiltAt:      row.BuiltAt,
		Entries:      row.Entries,
		DynamicError: row.DynamicError,
		Valid:        row.Valid,
	}
	if err := json.Unmarshal([]byte(row.SourceBreakdown), &b.SourceBreakdown); err != nil {
		return b, fmt.Errorf("decode source breakdown of %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Errors), &b.Errors); err != nil {
		return b, fmt.Errorf("decode errors of %s: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.Warnings), &b.Warnings); err != nil {
		return b, fmt.Errorf("decode warnings of %s: %w", row.ID, err)
	}
	return b, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// isUniqueViolation understands both the pgx and the lib/pq error types.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
