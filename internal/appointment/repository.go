package appointment

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDuplicateUser       = errors.New("user with this email or phone already exists")
	ErrDuplicateDoctor     = errors.New("doctor with this email or phone already exists")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetDoctorByID(ctx context.Context, id int64) (*Doctor, error)

	GetAppointmentByID(ctx context.Context, id int64) (*Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID int64) ([]Appointment, error)
	ListAppointmentsByDoctor(ctx context.Context, doctorID int64) ([]Appointment, error)

	CreateAppointment(ctx context.Context, userID, doctorID int64, start, end time.Time) (*Appointment, error)

	// UpdateAppointmentTimes applies a partial update: nil fields keep
	// their stored values. Returns ErrAppointmentNotFound if no row matched.
	UpdateAppointmentTimes(ctx context.Context, id int64, start, end *time.Time) (*Appointment, error)

	// DeleteAppointment reports whether a row was removed.
	DeleteAppointment(ctx context.Context, id int64) (bool, error)

	CreateUser(ctx context.Context, name, email, phone string) (*User, error)
	CreateDoctor(ctx context.Context, name, email, phone string, specialization *string) (*Doctor, error)

	// DeleteUser and DeleteDoctor remove the row and, via the declared
	// FK cascade, every appointment referencing it.
	DeleteUser(ctx context.Context, id int64) (bool, error)
	DeleteDoctor(ctx context.Context, id int64) (bool, error)
}
