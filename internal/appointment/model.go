package appointment

import (
	"time"
)

type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

type Doctor struct {
	ID             int64
	Name           string
	Email          string
	Phone          string
	Specialization *string
	CreatedAt      time.Time
}

type Appointment struct {
	ID        int64
	UserID    int64
	DoctorID  int64
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

// UserAppointment is the projection returned when listing by user.
// The user id is implied by the query and omitted.
type UserAppointment struct {
	ID        int64
	DoctorID  int64
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

// DoctorAppointment is the projection returned when listing by doctor.
type DoctorAppointment struct {
	ID        int64
	UserID    int64
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}
