package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrNoAppointments   = errors.New("no appointments found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the raw appointment fields as received on the wire.
// Timestamps stay strings until validation has ordered them behind the
// presence check.
type CreateInput struct {
	UserID    int64
	DoctorID  int64
	StartTime string
	EndTime   string
}

// UpdateInput is a partial update: nil fields are left untouched.
type UpdateInput struct {
	StartTime *string
	EndTime   *string
}

// ListByUser returns every appointment booked by the given user, projected
// without the redundant user id. An empty result reports ErrNoAppointments
// whether or not the user exists.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]UserAppointment, error) {
	appts, err := s.repo.ListAppointmentsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by user: %w", err)
	}
	if len(appts) == 0 {
		return nil, ErrNoAppointments
	}

	result := make([]UserAppointment, 0, len(appts))
	for _, a := range appts {
		result = append(result, UserAppointment{
			ID:        a.ID,
			DoctorID:  a.DoctorID,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			CreatedAt: a.CreatedAt,
		})
	}
	return result, nil
}

// ListByDoctor is the mirror of ListByUser, keyed by doctor.
func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]DoctorAppointment, error) {
	appts, err := s.repo.ListAppointmentsByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by doctor: %w", err)
	}
	if len(appts) == 0 {
		return nil, ErrNoAppointments
	}

	result := make([]DoctorAppointment, 0, len(appts))
	for _, a := range appts {
		result = append(result, DoctorAppointment{
			ID:        a.ID,
			UserID:    a.UserID,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			CreatedAt: a.CreatedAt,
		})
	}
	return result, nil
}

// Create validates the input and inserts a new appointment. Validation
// order: field presence, timestamp syntax, user existence, doctor
// existence. No overlap check is made against existing appointments for
// the same user or doctor.
func (s *Service) Create(ctx context.Context, in CreateInput) (int64, error) {
	if in.UserID == 0 || in.DoctorID == 0 || in.StartTime == "" || in.EndTime == "" {
		return 0, ErrMissingFields
	}

	start, err := ParseTimestamp(in.StartTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}
	end, err := ParseTimestamp(in.EndTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
	}

	if _, err := s.repo.GetUserByID(ctx, in.UserID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("load user: %w", err)
	}
	if _, err := s.repo.GetDoctorByID(ctx, in.DoctorID); err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("load doctor: %w", err)
	}

	appt, err := s.repo.CreateAppointment(ctx, in.UserID, in.DoctorID, start, end)
	if err != nil {
		return 0, fmt.Errorf("create appointment: %w", err)
	}

	return appt.ID, nil
}

// Update merges the supplied fields into an existing appointment. Omitted
// fields keep their stored values; created_at and identity never change.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (int64, error) {
	if _, err := s.repo.GetAppointmentByID(ctx, id); err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("load appointment: %w", err)
	}

	var start, end *time.Time
	if in.StartTime != nil {
		t, err := ParseTimestamp(*in.StartTime)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
		}
		start = &t
	}
	if in.EndTime != nil {
		t, err := ParseTimestamp(*in.EndTime)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidTimestamp, err)
		}
		end = &t
	}

	appt, err := s.repo.UpdateAppointmentTimes(ctx, id, start, end)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("update appointment: %w", err)
	}

	return appt.ID, nil
}

// Delete removes an appointment. Deleting an id that is already gone
// reports ErrAppointmentNotFound rather than a silent success.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	removed, err := s.repo.DeleteAppointment(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete appointment: %w", err)
	}
	if !removed {
		return 0, ErrAppointmentNotFound
	}

	return id, nil
}

// RegisterUser creates a user row. Email and phone are globally unique.
func (s *Service) RegisterUser(ctx context.Context, name, email, phone string) (*User, error) {
	if name == "" || email == "" || phone == "" {
		return nil, ErrMissingFields
	}

	u, err := s.repo.CreateUser(ctx, name, email, phone)
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// RegisterDoctor creates a doctor row. Specialization is optional.
func (s *Service) RegisterDoctor(ctx context.Context, name, email, phone string, specialization *string) (*Doctor, error) {
	if name == "" || email == "" || phone == "" {
		return nil, ErrMissingFields
	}

	d, err := s.repo.CreateDoctor(ctx, name, email, phone, specialization)
	if err != nil {
		if errors.Is(err, ErrDuplicateDoctor) {
			return nil, err
		}
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	return d, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*Doctor, error) {
	d, err := s.repo.GetDoctorByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	return d, nil
}

// RemoveUser deletes a user; the store cascades the delete to every
// appointment referencing the user.
func (s *Service) RemoveUser(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !removed {
		return ErrUserNotFound
	}
	return nil
}

// RemoveDoctor deletes a doctor and, by cascade, its appointments.
func (s *Service) RemoveDoctor(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteDoctor(ctx, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if !removed {
		return ErrDoctorNotFound
	}
	return nil
}
