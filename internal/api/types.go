package api

type CreateAppointmentRequest struct {
	UserID    int64  `json:"user_id"`
	DoctorID  int64  `json:"doctor_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type UpdateAppointmentRequest struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

type UserAppointmentResponse struct {
	AptID     int64  `json:"apt_id"`
	DoctorID  int64  `json:"doctor_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedAt string `json:"created_at"`
}

type DoctorAppointmentResponse struct {
	AptID     int64  `json:"apt_id"`
	UserID    int64  `json:"user_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CreatedAt string `json:"created_at"`
}

type AppointmentResultResponse struct {
	Msg   string `json:"msg"`
	AptID int64  `json:"apt_id"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CreateDoctorRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Specialization *string `json:"specialization"`
}

type UserResponse struct {
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at"`
}

type DoctorResponse struct {
	DoctorID       int64   `json:"doctor_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Specialization *string `json:"specialization,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type UserResultResponse struct {
	Msg    string `json:"msg"`
	UserID int64  `json:"user_id"`
}

type DoctorResultResponse struct {
	Msg      string `json:"msg"`
	DoctorID int64  `json:"doctor_id"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}
