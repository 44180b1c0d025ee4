package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/knupi/practice-reservation/internal/model"
)

// ReservationRepo is the MySQL-backed ReservationStore.  Each booking is one
// row in the reservations table plus one row per occupied half-hour tick in
// the reservation_slots table.  The slot table's composite primary key
// (resource, date, tick) is what guarantees at-most-one accepted reservation
// per slot: two racing inserts for overlapping intervals both pass the
// caller's availability check, but the second one is rejected here with a
// duplicate-key error regardless of how many API processes share the
// database.  All timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = "id, holder_name, holder_id, resource, DATE_FORMAT(`date`, '%Y-%m-%d'), start_tick, end_tick, created_at"

// scanReservations drains rows into a slice.  The caller owns rows and its
// close; this helper only consumes them.
func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	var out []model.Reservation
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(
			&r.ID, &r.Holder.Name, &r.Holder.ID, &r.Resource, &r.Date,
			&r.StartTick, &r.EndTick, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}
	return out, nil
}

// ListAll returns every persisted reservation ordered by date, resource and
// start tick.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	q := "SELECT " + reservationColumns + " FROM reservations ORDER BY `date`, resource, start_tick"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListByDateRange returns reservations with from <= date < to.  Either bound
// may be empty to leave that side open.
func (r *ReservationRepo) ListByDateRange(ctx context.Context, from, to string) ([]model.Reservation, error) {
	q := "SELECT " + reservationColumns + " FROM reservations WHERE 1=1"
	args := make([]interface{}, 0, 2)
	if from != "" {
		q += " AND `date` >= ?"
		args = append(args, from)
	}
	if to != "" {
		q += " AND `date` < ?"
		args = append(args, to)
	}
	q += " ORDER BY `date`, resource, start_tick"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query reservations by date range: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListForSlot returns the reservations for one resource on one date, the
// freshest snapshot available for conflict checking.
func (r *ReservationRepo) ListForSlot(ctx context.Context, resource, date string) ([]model.Reservation, error) {
	q := "SELECT " + reservationColumns + " FROM reservations WHERE resource = ? AND `date` = ? ORDER BY start_tick"
	rows, err := r.db.QueryContext(ctx, q, resource, date)
	if err != nil {
		return nil, fmt.Errorf("query reservations for slot: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// Insert persists the draft inside a transaction: the reservation row first,
// then one slot row per occupied tick.  A duplicate-key rejection on the
// slot table rolls everything back and returns ErrSlotTaken.
func (r *ReservationRepo) Insert(ctx context.Context, draft model.ReservationDraft) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	id := uuid.NewString()
	const ins = "INSERT INTO reservations (id, holder_name, holder_id, resource, `date`, start_tick, end_tick) VALUES (?, ?, ?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, ins,
		id, draft.Holder.Name, draft.Holder.ID, draft.Resource, draft.Date,
		draft.StartTick, draft.EndTick,
	); err != nil {
		return nil, fmt.Errorf("insert reservation: %w", err)
	}

	if err := insertSlotsTx(ctx, tx, id, draft); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("insert reservation slots: %w", err)
	}

	// Query back the stored row to pick up the DB-assigned timestamp.
	sel := "SELECT " + reservationColumns + " FROM reservations WHERE id = ?"
	var res model.Reservation
	if err := tx.QueryRowContext(ctx, sel, id).Scan(
		&res.ID, &res.Holder.Name, &res.Holder.ID, &res.Resource, &res.Date,
		&res.StartTick, &res.EndTick, &res.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("read back reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reservation: %w", err)
	}
	committed = true
	return &res, nil
}

// insertSlotsTx bulk-inserts one slot row per half-hour tick of the draft in
// a single statement.
func insertSlotsTx(ctx context.Context, tx *sql.Tx, reservationID string, draft model.ReservationDraft) error {
	query := "INSERT INTO reservation_slots (reservation_id, resource, `date`, tick) VALUES "
	args := make([]interface{}, 0, int(draft.EndTick-draft.StartTick)*4)
	for t := draft.StartTick; t < draft.EndTick; t++ {
		if t > draft.StartTick {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, reservationID, draft.Resource, draft.Date, t)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// DeleteByID removes a reservation and, via ON DELETE CASCADE, its slot
// rows.  A missing id yields ErrNotFound.
func (r *ReservationRepo) DeleteByID(ctx context.Context, id string) error {
	const q = "DELETE FROM reservations WHERE id = ?"
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isDuplicateKey reports whether err is MySQL error 1062 (duplicate entry
// for a unique or primary key).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
