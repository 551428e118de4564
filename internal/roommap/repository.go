package roommap

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository defines the interface for room mapping persistence.
// Every mutation is durable before the in-memory view updates.
type Repository interface {
	LoadAll(ctx context.Context) ([]HomeRoom, []Mapping, error)
	CreateMapping(ctx context.Context, room HomeRoom, ref ServiceRoomRef) error
	Merge(ctx context.Context, refs []ServiceRoomRef, targetHomeRoomID string) error
	SetName(ctx context.Context, homeRoomID, name string) error
	DeleteMapping(ctx context.Context, ref ServiceRoomRef) error
	Reset(ctx context.Context) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed room mapping repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// LoadAll reads the full mapping state for startup hydration.
func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]HomeRoom, []Mapping, error) {
	rooms := []HomeRoom{}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name FROM home_rooms ORDER BY id")
	if err != nil {
		return nil, nil, fmt.Errorf("loading home rooms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hr HomeRoom
		if err := rows.Scan(&hr.ID, &hr.Name); err != nil {
			return nil, nil, fmt.Errorf("scanning home room: %w", err)
		}
		rooms = append(rooms, hr)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating home rooms: %w", err)
	}

	mappings := []Mapping{}
	mrows, err := r.db.QueryContext(ctx,
		"SELECT service_id, service_room_id, home_room_id FROM room_mappings")
	if err != nil {
		return nil, nil, fmt.Errorf("loading room mappings: %w", err)
	}
	defer mrows.Close()

	for mrows.Next() {
		var m Mapping
		if err := mrows.Scan(&m.ServiceID, &m.ServiceRoomID, &m.HomeRoomID); err != nil {
			return nil, nil, fmt.Errorf("scanning room mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	if err := mrows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating room mappings: %w", err)
	}

	return rooms, mappings, nil
}

// CreateMapping atomically creates a home room (if new) and the forward
// entry pointing a service room at it.
func (r *SQLiteRepository) CreateMapping(ctx context.Context, room HomeRoom, ref ServiceRoomRef) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning mapping transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback is no-op after commit

	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO home_rooms (id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		room.ID, room.Name, now, now,
	); err != nil {
		return fmt.Errorf("creating home room: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO room_mappings (service_id, service_room_id, home_room_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		ref.ServiceID, ref.ServiceRoomID, room.ID, now,
	); err != nil {
		return fmt.Errorf("creating room mapping: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing mapping: %w", err)
	}
	return nil
}

// Merge repoints the listed service rooms at the target home room in a
// single transaction. The target room row is created if it does not
// exist; previously unmapped references gain a fresh entry.
func (r *SQLiteRepository) Merge(ctx context.Context, refs []ServiceRoomRef, targetHomeRoomID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning merge transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback is no-op after commit

	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO home_rooms (id, name, created_at, updated_at)
		 VALUES (?, '', ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		targetHomeRoomID, now, now,
	); err != nil {
		return fmt.Errorf("ensuring merge target: %w", err)
	}

	for _, ref := range refs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO room_mappings (service_id, service_room_id, home_room_id, created_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(service_id, service_room_id) DO UPDATE SET
			   home_room_id = excluded.home_room_id`,
			ref.ServiceID, ref.ServiceRoomID, targetHomeRoomID, now,
		); err != nil {
			return fmt.Errorf("repointing %s: %w", ref.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing merge: %w", err)
	}
	return nil
}

// SetName updates a home room's canonical display name.
func (r *SQLiteRepository) SetName(ctx context.Context, homeRoomID, name string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := r.db.ExecContext(ctx,
		"UPDATE home_rooms SET name = ?, updated_at = ? WHERE id = ?",
		name, now, homeRoomID)
	if err != nil {
		return fmt.Errorf("renaming home room: %w", err)
	}
	return nil
}

// DeleteMapping removes one forward entry. The home room row and its
// other members are untouched.
func (r *SQLiteRepository) DeleteMapping(ctx context.Context, ref ServiceRoomRef) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM room_mappings WHERE service_id = ? AND service_room_id = ?",
		ref.ServiceID, ref.ServiceRoomID)
	if err != nil {
		return fmt.Errorf("deleting room mapping: %w", err)
	}
	return nil
}

// Reset clears all mapping state. Test isolation only.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning reset transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback is no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM room_mappings"); err != nil {
		return fmt.Errorf("clearing room mappings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM home_rooms"); err != nil {
		return fmt.Errorf("clearing home rooms: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w", err)
	}
	return nil
}
