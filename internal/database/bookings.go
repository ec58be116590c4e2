package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AleXx313/shareit/internal/models"
)

const bookingColumns = `b.id, b.item_id, i.name, b.booker_id, u.name,
       b.start_date, b.end_date, b.status, b.created_at, b.updated_at`

const bookingJoins = `FROM bookings b
       JOIN items i ON i.id = b.item_id
       JOIN users u ON u.id = b.booker_id`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_date, end_date, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		booking.Start.UTC(),
		booking.End.UTC(),
		booking.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now

	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + ` WHERE b.id = ?`

	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatus moves a booking from one status to another. The
// update is guarded on the expected current status so that concurrent
// decisions on the same booking cannot both win; the loser gets
// ErrStatusConflict.
func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, fromStatus, toStatus string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, toStatus, time.Now().UTC(), id, fromStatus)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, state models.ListState, now time.Time, from, size int) ([]models.Booking, error) {
	return db.listBookings(ctx, `b.booker_id = ?`, bookerID, state, now, from, size)
}

func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64, state models.ListState, now time.Time, from, size int) ([]models.Booking, error) {
	return db.listBookings(ctx, `i.owner_id = ?`, ownerID, state, now, from, size)
}

func (db *DB) listBookings(ctx context.Context, scope string, scopeID int64, state models.ListState, now time.Time, from, size int) ([]models.Booking, error) {
	cond, condArgs, err := stateCondition(state, now.UTC())
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + ` WHERE ` + scope
	args := []any{scopeID}
	if cond != "" {
		query += ` AND ` + cond
		args = append(args, condArgs...)
	}
	query += ` ORDER BY b.start_date DESC LIMIT ? OFFSET ?`
	args = append(args, size, pageOffset(from, size))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	return bookings, rows.Err()
}

// stateCondition translates a list state into its WHERE fragment. The
// switch is exhaustive over known states; anything else is an error,
// never a silent no-filter.
func stateCondition(state models.ListState, now time.Time) (string, []any, error) {
	switch state {
	case models.StateAll:
		return "", nil, nil
	case models.StateCurrent:
		return `b.start_date <= ? AND b.end_date > ?`, []any{now, now}, nil
	case models.StatePast:
		return `b.end_date < ?`, []any{now}, nil
	case models.StateFuture:
		return `b.start_date > ?`, []any{now}, nil
	case models.StateWaiting:
		return `b.status = ?`, []any{models.StatusWaiting}, nil
	case models.StateRejected:
		return `b.status = ?`, []any{models.StatusRejected}, nil
	}
	return "", nil, fmt.Errorf("unsupported list state %q", state)
}

// GetNextBooking returns the earliest approved booking of the item
// starting after now, or nil when there is none.
func (db *DB) GetNextBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + `
              WHERE b.item_id = ? AND b.status = ? AND b.start_date > ?
              ORDER BY b.start_date LIMIT 1`
	return db.optionalBooking(ctx, query, itemID, models.StatusApproved, now.UTC())
}

// GetLastBooking returns the most recently started approved booking of
// the item with start before now, or nil when there is none.
func (db *DB) GetLastBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` ` + bookingJoins + `
              WHERE b.item_id = ? AND b.status = ? AND b.start_date < ?
              ORDER BY b.start_date DESC LIMIT 1`
	return db.optionalBooking(ctx, query, itemID, models.StatusApproved, now.UTC())
}

func (db *DB) optionalBooking(ctx context.Context, query string, args ...any) (*models.Booking, error) {
	booking, err := scanBooking(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// HasCompletedBooking reports whether the user has an approved booking
// of the item that already ended. Such a booking is what grants the
// right to comment.
func (db *DB) HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	return db.exists(ctx,
		`SELECT 1 FROM bookings WHERE item_id = ? AND booker_id = ? AND status = ? AND end_date < ? LIMIT 1`,
		itemID, bookerID, models.StatusApproved, now.UTC(),
	)
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var booking models.Booking
	err := row.Scan(
		&booking.ID, &booking.ItemID, &booking.ItemName,
		&booking.BookerID, &booking.BookerName,
		&booking.Start, &booking.End, &booking.Status,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
