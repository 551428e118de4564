package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CredentialRepository defines the interface for pairing credential
// persistence. Credentials survive restarts so an endpoint pairs once
// and never again.
type CredentialRepository interface {
	Store(ctx context.Context, endpointID, credentialRef string) error
	Get(ctx context.Context, endpointID string) (string, error)
	Has(ctx context.Context, endpointID string) (bool, error)
	Delete(ctx context.Context, endpointID string) error
	CountEndpoints(ctx context.Context) (int, error)
}

// SQLiteCredentialRepository implements CredentialRepository using SQLite.
type SQLiteCredentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new SQLite-backed credential repository.
func NewCredentialRepository(db *sql.DB) *SQLiteCredentialRepository {
	return &SQLiteCredentialRepository{db: db}
}

// Store upserts the credential reference for an endpoint. Pairing the
// same endpoint again overwrites the previous reference.
func (r *SQLiteCredentialRepository) Store(ctx context.Context, endpointID, credentialRef string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credentials (endpoint_id, credential_ref, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(endpoint_id) DO UPDATE SET
		   credential_ref = excluded.credential_ref,
		   updated_at     = excluded.updated_at`,
		endpointID, credentialRef, now, now,
	)
	if err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}

	return nil
}

// Get retrieves the credential reference for an endpoint.
// Returns ErrCredentialNotFound when the endpoint has never paired.
func (r *SQLiteCredentialRepository) Get(ctx context.Context, endpointID string) (string, error) {
	var ref string

	err := r.db.QueryRowContext(ctx,
		"SELECT credential_ref FROM credentials WHERE endpoint_id = ?", endpointID,
	).Scan(&ref)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrCredentialNotFound
		}
		return "", fmt.Errorf("getting credential: %w", err)
	}

	return ref, nil
}

// Has reports whether a credential exists for an endpoint.
func (r *SQLiteCredentialRepository) Has(ctx context.Context, endpointID string) (bool, error) {
	var one int

	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM credentials WHERE endpoint_id = ?", endpointID,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("checking credential: %w", err)
	}

	return true, nil
}

// Delete removes the stored credential for an endpoint, forcing a
// fresh pairing on next use. Deleting an unknown endpoint is a no-op.
func (r *SQLiteCredentialRepository) Delete(ctx context.Context, endpointID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM credentials WHERE endpoint_id = ?", endpointID)
	if err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return nil
}

// CountEndpoints returns the number of endpoints with stored credentials.
func (r *SQLiteCredentialRepository) CountEndpoints(ctx context.Context) (int, error) {
	var count int

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM credentials").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting credentials: %w", err)
	}

	return count, nil
}
