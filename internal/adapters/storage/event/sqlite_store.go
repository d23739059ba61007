package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"diary/internal/adapters/storage"
	domain "diary/internal/domain/event"
)

// SQLiteStore implements Store using SQLite. Observable semantics match
// JSONStore, including id reuse after the max id is deleted. The position
// column carries the record order that JSONStore keeps in slice order.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLiteStore.
// PRE: db is a valid, open database connection with the schema applied
// POST: store is ready for use
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Add inserts a new event with the next id and last position.
// PRE: date is validated by the caller
// POST: returned event has a unique id and completed=false
func (s *SQLiteStore) Add(ctx context.Context, title, importance, date string) (domain.Event, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: begin add: %v", domain.ErrStorage, err)
	}
	defer tx.Rollback()

	var nextID, nextPos int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) + 1, COALESCE(MAX(position), 0) + 1 FROM event`,
	).Scan(&nextID, &nextPos)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: next id: %v", domain.ErrStorage, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO event (id, title, importance, date, completed, position)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		nextID, title, importance, date, nextPos,
	)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: insert event: %v", domain.ErrStorage, err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Event{}, fmt.Errorf("%w: commit add: %v", domain.ErrStorage, err)
	}

	return domain.Event{
		ID:         nextID,
		Title:      title,
		Importance: importance,
		Date:       date,
	}, nil
}

// Edit applies the update to the matching event.
// PRE: none
// POST: only fields present in update change; ErrNotFound on miss
func (s *SQLiteStore) Edit(ctx context.Context, id int, update domain.Update) (domain.Event, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	e = update.Apply(e)

	_, err = s.db.ExecContext(ctx,
		`UPDATE event SET title = ?, importance = ?, date = ? WHERE id = ?`,
		e.Title, e.Importance, e.Date, e.ID,
	)
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: update event %d: %v", domain.ErrStorage, id, err)
	}
	return e, nil
}

// Delete removes the event with the id.
// PRE: none
// POST: returns false when the id is absent
func (s *SQLiteStore) Delete(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("%w: delete event %d: %v", domain.ErrStorage, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: delete event %d: %v", domain.ErrStorage, id, err)
	}
	return n > 0, nil
}

// MarkCompleted sets completed=true on the matching event.
// PRE: none
// POST: idempotent; returns true whenever the id exists
func (s *SQLiteStore) MarkCompleted(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE event SET completed = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("%w: complete event %d: %v", domain.ErrStorage, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: complete event %d: %v", domain.ErrStorage, id, err)
	}
	return n > 0, nil
}

// SortByDate rewrites positions so record order is ascending by date.
// Ordering by (date, position) keeps the sort stable for equal dates.
// PRE: none
// POST: the persisted order changes permanently
func (s *SQLiteStore) SortByDate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin sort: %v", domain.ErrStorage, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM event ORDER BY date ASC, position ASC`)
	if err != nil {
		return fmt.Errorf("%w: read sort order: %v", domain.ErrStorage, err)
	}
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("%w: read sort order: %v", domain.ErrStorage, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("%w: read sort order: %v", domain.ErrStorage, err)
	}
	rows.Close()

	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE event SET position = ? WHERE id = ?`, pos+1, id); err != nil {
			return fmt.Errorf("%w: write sort order: %v", domain.ErrStorage, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit sort: %v", domain.ErrStorage, err)
	}
	return nil
}

// GetByID retrieves an event by id.
// PRE: none
// POST: ErrNotFound when no event has the id
func (s *SQLiteStore) GetByID(ctx context.Context, id int) (domain.Event, error) {
	var e domain.Event
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, importance, date, completed FROM event WHERE id = ?`, id,
	).Scan(&e.ID, &e.Title, &e.Importance, &e.Date, &e.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Event{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Event{}, fmt.Errorf("%w: get event %d: %v", domain.ErrStorage, id, err)
	}
	return e, nil
}

// ListAll returns all events in stored order.
func (s *SQLiteStore) ListAll(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, importance, date, completed FROM event ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list events: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Importance, &e.Date, &e.Completed); err != nil {
			return nil, fmt.Errorf("%w: list events: %v", domain.ErrStorage, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list events: %v", domain.ErrStorage, err)
	}
	return events, nil
}
