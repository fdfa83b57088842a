package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

func scanUser(row pgx.Row) (*User, error) {
	var u User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	var specialization *string

	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Email,
		&d.Phone,
		&specialization,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	d.Specialization = specialization
	return &d, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.DoctorID,
		&a.StartTime,
		&a.EndTime,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// Interface methods

func (r *PgRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *PgRepository) GetDoctorByID(ctx context.Context, id int64) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, specialization, created_at
		FROM doctors
		WHERE id = $1
	`, id)
	return scanDoctor(row)
}

func (r *PgRepository) GetAppointmentByID(ctx context.Context, id int64) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, doctor_id, start_time, end_time, created_at
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) ListAppointmentsByUser(ctx context.Context, userID int64) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, doctor_id, start_time, end_time, created_at
		FROM appointments
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) ListAppointmentsByDoctor(ctx context.Context, doctorID int64) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, doctor_id, start_time, end_time, created_at
		FROM appointments
		WHERE doctor_id = $1
	`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) CreateAppointment(ctx context.Context, userID, doctorID int64, start, end time.Time) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (user_id, doctor_id, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, user_id, doctor_id, start_time, end_time, created_at
	`, userID, doctorID, start, end)

	return scanAppointment(row)
}

func (r *PgRepository) UpdateAppointmentTimes(ctx context.Context, id int64, start, end *time.Time) (*Appointment, error) {
	// COALESCE keeps the stored value for fields the caller did not supply,
	// so the merge is a single atomic statement. created_at is never touched.
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET start_time = COALESCE($2, start_time),
		    end_time   = COALESCE($3, end_time)
		WHERE id = $1
		RETURNING id, user_id, doctor_id, start_time, end_time, created_at
	`, id, start, end)

	return scanAppointment(row)
}

func (r *PgRepository) DeleteAppointment(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM appointments
		WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) CreateUser(ctx context.Context, name, email, phone string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, phone, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, name, email, phone, created_at
	`, name, email, phone)

	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

func (r *PgRepository) CreateDoctor(ctx context.Context, name, email, phone string, specialization *string) (*Doctor, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO doctors (name, email, phone, specialization, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, name, email, phone, specialization, created_at
	`, name, email, phone, specialization)

	d, err := scanDoctor(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDoctor
		}
		return nil, err
	}
	return d, nil
}

func (r *PgRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	// ON DELETE CASCADE on appointments.user_id removes dependents in the
	// same statement.
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM users
		WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PgRepository) DeleteDoctor(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM doctors
		WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
