package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tejax-v2/Mediversal-Appointment-API/internal/appointment"
)

// Service is the surface the handlers need from the appointment service.
type Service interface {
	ListByUser(ctx context.Context, userID int64) ([]appointment.UserAppointment, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]appointment.DoctorAppointment, error)
	Create(ctx context.Context, in appointment.CreateInput) (int64, error)
	Update(ctx context.Context, id int64, in appointment.UpdateInput) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)

	RegisterUser(ctx context.Context, name, email, phone string) (*appointment.User, error)
	RegisterDoctor(ctx context.Context, name, email, phone string, specialization *string) (*appointment.Doctor, error)
	GetUser(ctx context.Context, id int64) (*appointment.User, error)
	GetDoctor(ctx context.Context, id int64) (*appointment.Doctor, error)
	RemoveUser(ctx context.Context, id int64) error
	RemoveDoctor(ctx context.Context, id int64) error
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func listUserAppointmentsHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := idParam(r, "userID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid user id.")
			return
		}

		appts, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, appointment.ErrNoAppointments) {
				writeMessage(w, http.StatusNotFound, "No appointments found for the user.")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		resp := make([]UserAppointmentResponse, 0, len(appts))
		for _, a := range appts {
			resp = append(resp, UserAppointmentResponse{
				AptID:     a.ID,
				DoctorID:  a.DoctorID,
				StartTime: appointment.FormatTimestamp(a.StartTime),
				EndTime:   appointment.FormatTimestamp(a.EndTime),
				CreatedAt: appointment.FormatTimestamp(a.CreatedAt),
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func listDoctorAppointmentsHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, ok := idParam(r, "doctorID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid doctor id.")
			return
		}

		appts, err := svc.ListByDoctor(r.Context(), doctorID)
		if err != nil {
			if errors.Is(err, appointment.ErrNoAppointments) {
				writeMessage(w, http.StatusNotFound, "No appointments found for the doctor.")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		resp := make([]DoctorAppointmentResponse, 0, len(appts))
		for _, a := range appts {
			resp = append(resp, DoctorAppointmentResponse{
				AptID:     a.ID,
				UserID:    a.UserID,
				StartTime: appointment.FormatTimestamp(a.StartTime),
				EndTime:   appointment.FormatTimestamp(a.EndTime),
				CreatedAt: appointment.FormatTimestamp(a.CreatedAt),
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func createAppointmentHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Missing required fields.")
			return
		}

		aptID, err := svc.Create(r.Context(), appointment.CreateInput{
			UserID:    req.UserID,
			DoctorID:  req.DoctorID,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			handleCreateError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, AppointmentResultResponse{
			Msg:   "Appointment Created",
			AptID: aptID,
		})
	}
}

func updateAppointmentHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aptID, ok := idParam(r, "aptID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid appointment id.")
			return
		}

		var req UpdateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		id, err := svc.Update(r.Context(), aptID, appointment.UpdateInput{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			switch {
			case errors.Is(err, appointment.ErrAppointmentNotFound):
				writeMessage(w, http.StatusNotFound, "Appointment not found.")
			case errors.Is(err, appointment.ErrInvalidTimestamp):
				writeMessage(w, http.StatusBadRequest, "Invalid timestamp format.")
			default:
				writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			}
			return
		}

		writeJSON(w, http.StatusOK, AppointmentResultResponse{
			Msg:   "Appointment Updated",
			AptID: id,
		})
	}
}

func deleteAppointmentHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aptID, ok := idParam(r, "aptID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid appointment id.")
			return
		}

		id, err := svc.Delete(r.Context(), aptID)
		if err != nil {
			if errors.Is(err, appointment.ErrAppointmentNotFound) {
				writeMessage(w, http.StatusNotFound, "Appointment not found.")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		writeJSON(w, http.StatusOK, AppointmentResultResponse{
			Msg:   "Appointment Deleted",
			AptID: id,
		})
	}
}

func handleCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appointment.ErrMissingFields):
		writeMessage(w, http.StatusBadRequest, "Missing required fields.")
	case errors.Is(err, appointment.ErrInvalidTimestamp):
		writeMessage(w, http.StatusBadRequest, "Invalid timestamp format.")
	case errors.Is(err, appointment.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found.")
	case errors.Is(err, appointment.ErrDoctorNotFound):
		writeMessage(w, http.StatusNotFound, "Doctor not found.")
	default:
		writeMessage(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func createUserHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Missing required fields.")
			return
		}

		u, err := svc.RegisterUser(r.Context(), req.Name, req.Email, req.Phone)
		if err != nil {
			switch {
			case errors.Is(err, appointment.ErrMissingFields):
				writeMessage(w, http.StatusBadRequest, "Missing required fields.")
			case errors.Is(err, appointment.ErrDuplicateUser):
				writeMessage(w, http.StatusConflict, "Email or phone already in use.")
			default:
				writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			}
			return
		}

		writeJSON(w, http.StatusCreated, UserResultResponse{Msg: "User Created", UserID: u.ID})
	}
}

func getUserHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := idParam(r, "userID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid user id.")
			return
		}

		u, err := svc.GetUser(r.Context(), userID)
		if err != nil {
			if errors.Is(err, appointment.ErrUserNotFound) {
				writeMessage(w, http.StatusNotFound, "User not found.")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{
			UserID:    u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Phone:     u.Phone,
			CreatedAt: appointment.FormatTimestamp(u.CreatedAt),
		})
	}
}

// deleteUserHandler removes the user and, through the store's cascade,
// every appointment that references it.
func deleteUserHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := idParam(r, "userID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid user id.")
			return
		}

		if err := svc.RemoveUser(r.Context(), userID); err != nil {
			if errors.Is(err, appointment.ErrUserNotFound) {
				writeMessage(w, http.StatusNotFound, "User not found.")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		writeJSON(w, http.StatusOK, UserResultResponse{Msg: "User Deleted", UserID: userID})
	}
}

func createDoctorHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "Missing required fields.")
			return
		}

		d, err := svc.RegisterDoctor(r.Context(), req.Name, req.Email, req.Phone, req.Specialization)
		if err != nil {
			switch {
			case errors.Is(err, appointment.ErrMissingFields):
				writeMessage(w, http.StatusBadRequest, "Missing required fields.")
			case errors.Is(err, appointment.ErrDuplicateDoctor):
				writeMessage(w, http.StatusConflict, "Email or phone already in use.")
			default:
				writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			}
			return
		}

		writeJSON(w, http.StatusCreated, DoctorResultResponse{Msg: "Doctor Created", DoctorID: d.ID})
	}
}

func getDoctorHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, ok := idParam(r, "doctorID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid doctor id.")
			return
		}

		d, err := svc.GetDoctor(r.Context(), doctorID)
		if err != nil {
			if errors.Is(err, appointment.ErrDoctorNotFound) {
				writeMessage(w, http.StatusNotFound, "Doctor not found.")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		writeJSON(w, http.StatusOK, DoctorResponse{
			DoctorID:       d.ID,
			Name:           d.Name,
			Email:          d.Email,
			Phone:          d.Phone,
			Specialization: d.Specialization,
			CreatedAt:      appointment.FormatTimestamp(d.CreatedAt),
		})
	}
}

func deleteDoctorHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, ok := idParam(r, "doctorID")
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid doctor id.")
			return
		}

		if err := svc.RemoveDoctor(r.Context(), doctorID); err != nil {
			if errors.Is(err, appointment.ErrDoctorNotFound) {
				writeMessage(w, http.StatusNotFound, "Doctor not found.")
				return
			}
			writeMessage(w, http.StatusInternalServerError, "Internal server error.")
			return
		}

		writeJSON(w, http.StatusOK, DoctorResultResponse{Msg: "Doctor Deleted", DoctorID: doctorID})
	}
}
