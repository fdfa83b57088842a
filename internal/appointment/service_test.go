package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository with the same semantics as the
// Postgres implementation, including FK cascade on user/doctor delete.
type fakeRepo struct {
	users        map[int64]User
	doctors      map[int64]Doctor
	appointments map[int64]Appointment
	nextID       int64
	insertCalls  int
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        make(map[int64]User),
		doctors:      make(map[int64]Doctor),
		appointments: make(map[int64]Appointment),
	}
}

func (f *fakeRepo) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) GetUserByID(_ context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeRepo) GetDoctorByID(_ context.Context, id int64) (*Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return &d, nil
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, id int64) (*Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (f *fakeRepo) ListAppointmentsByUser(_ context.Context, userID int64) ([]Appointment, error) {
	var result []Appointment
	for _, a := range f.appointments {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeRepo) ListAppointmentsByDoctor(_ context.Context, doctorID int64) ([]Appointment, error) {
	var result []Appointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, userID, doctorID int64, start, end time.Time) (*Appointment, error) {
	f.insertCalls++
	a := Appointment{
		ID:        f.id(),
		UserID:    userID,
		DoctorID:  doctorID,
		StartTime: start,
		EndTime:   end,
		CreatedAt: time.Now().Truncate(time.Second),
	}
	f.appointments[a.ID] = a
	return &a, nil
}

func (f *fakeRepo) UpdateAppointmentTimes(_ context.Context, id int64, start, end *time.Time) (*Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	if start != nil {
		a.StartTime = *start
	}
	if end != nil {
		a.EndTime = *end
	}
	f.appointments[id] = a
	return &a, nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, id int64) (bool, error) {
	if _, ok := f.appointments[id]; !ok {
		return false, nil
	}
	delete(f.appointments, id)
	return true, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, name, email, phone string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email || u.Phone == phone {
			return nil, ErrDuplicateUser
		}
	}
	u := User{ID: f.id(), Name: name, Email: email, Phone: phone, CreatedAt: time.Now()}
	f.users[u.ID] = u
	return &u, nil
}

func (f *fakeRepo) CreateDoctor(_ context.Context, name, email, phone string, specialization *string) (*Doctor, error) {
	for _, d := range f.doctors {
		if d.Email == email || d.Phone == phone {
			return nil, ErrDuplicateDoctor
		}
	}
	d := Doctor{ID: f.id(), Name: name, Email: email, Phone: phone, Specialization: specialization, CreatedAt: time.Now()}
	f.doctors[d.ID] = d
	return &d, nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id int64) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	for aid, a := range f.appointments {
		if a.UserID == id {
			delete(f.appointments, aid)
		}
	}
	return true, nil
}

func (f *fakeRepo) DeleteDoctor(_ context.Context, id int64) (bool, error) {
	if _, ok := f.doctors[id]; !ok {
		return false, nil
	}
	delete(f.doctors, id)
	for aid, a := range f.appointments {
		if a.DoctorID == id {
			delete(f.appointments, aid)
		}
	}
	return true, nil
}

// Helpers

func seedUserAndDoctor(t *testing.T, repo *fakeRepo) (int64, int64) {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), "Alice", "alice@example.com", "555-0001")
	require.NoError(t, err)
	d, err := repo.CreateDoctor(context.Background(), "Dr. Bob", "bob@clinic.com", "555-0002", nil)
	require.NoError(t, err)
	return u.ID, d.ID
}

func mustCreate(t *testing.T, svc *Service, userID, doctorID int64, start, end string) int64 {
	t.Helper()
	id, err := svc.Create(context.Background(), CreateInput{
		UserID:    userID,
		DoctorID:  doctorID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	require.Positive(t, id)
	return id
}

func strptr(s string) *string { return &s }

// Tests

func TestCreateAndListByUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	aptID := mustCreate(t, svc, userID, doctorID, "2025-01-01T13:00:00", "2025-01-01T14:00:00")

	appts, err := svc.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, appts, 1)

	got := appts[0]
	require.Equal(t, aptID, got.ID)
	require.Equal(t, doctorID, got.DoctorID)
	require.Equal(t, "2025-01-01T13:00:00", FormatTimestamp(got.StartTime))
	require.Equal(t, "2025-01-01T14:00:00", FormatTimestamp(got.EndTime))
	require.False(t, got.CreatedAt.IsZero())
}

func TestCreateAndListByDoctor(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	mustCreate(t, svc, userID, doctorID, "2025-01-01T13:00:00", "2025-01-01T14:00:00")

	appts, err := svc.ListByDoctor(context.Background(), doctorID)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	require.Equal(t, userID, appts[0].UserID)
	require.Equal(t, "2025-01-01T13:00:00", FormatTimestamp(appts[0].StartTime))
	require.Equal(t, "2025-01-01T14:00:00", FormatTimestamp(appts[0].EndTime))
}

func TestListEmptyReportsNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	// The user and doctor exist, but an empty list is still reported as
	// not found.
	_, err := svc.ListByUser(context.Background(), userID)
	require.ErrorIs(t, err, ErrNoAppointments)

	_, err = svc.ListByDoctor(context.Background(), doctorID)
	require.ErrorIs(t, err, ErrNoAppointments)

	// Same outcome for ids that do not exist at all.
	_, err = svc.ListByUser(context.Background(), 9999)
	require.ErrorIs(t, err, ErrNoAppointments)
}

func TestCreateMissingFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"no user", CreateInput{DoctorID: doctorID, StartTime: "2025-01-01T13:00:00", EndTime: "2025-01-01T14:00:00"}},
		{"no doctor", CreateInput{UserID: userID, StartTime: "2025-01-01T13:00:00", EndTime: "2025-01-01T14:00:00"}},
		{"no start", CreateInput{UserID: userID, DoctorID: doctorID, EndTime: "2025-01-01T14:00:00"}},
		{"no end", CreateInput{UserID: userID, DoctorID: doctorID, StartTime: "2025-01-01T13:00:00"}},
		{"empty", CreateInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrMissingFields)
		})
	}

	require.Zero(t, repo.insertCalls, "no insert should be attempted")
}

func TestCreateInvalidTimestamp(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	_, err := svc.Create(context.Background(), CreateInput{
		UserID:    userID,
		DoctorID:  doctorID,
		StartTime: "next tuesday",
		EndTime:   "2025-01-01T14:00:00",
	})
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	_, err = svc.Create(context.Background(), CreateInput{
		UserID:    userID,
		DoctorID:  doctorID,
		StartTime: "2025-01-01T13:00:00",
		EndTime:   "14:00",
	})
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	require.Zero(t, repo.insertCalls)
}

func TestCreateUnknownReferences(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	_, err := svc.Create(context.Background(), CreateInput{
		UserID:    9999,
		DoctorID:  doctorID,
		StartTime: "2025-01-01T13:00:00",
		EndTime:   "2025-01-01T14:00:00",
	})
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Create(context.Background(), CreateInput{
		UserID:    userID,
		DoctorID:  9999,
		StartTime: "2025-01-01T13:00:00",
		EndTime:   "2025-01-01T14:00:00",
	})
	require.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCreateValidationOrder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	// Missing fields win over everything else.
	_, err := svc.Create(context.Background(), CreateInput{
		UserID:    9999,
		StartTime: "garbage",
	})
	require.ErrorIs(t, err, ErrMissingFields)

	// A malformed timestamp is reported before the unknown user.
	_, err = svc.Create(context.Background(), CreateInput{
		UserID:    9999,
		DoctorID:  9999,
		StartTime: "garbage",
		EndTime:   "2025-01-01T14:00:00",
	})
	require.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestUpdatePartial(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	aptID := mustCreate(t, svc, userID, doctorID, "2025-01-01T13:00:00", "2025-01-01T14:00:00")
	before := repo.appointments[aptID]

	id, err := svc.Update(context.Background(), aptID, UpdateInput{
		StartTime: strptr("2025-01-02T09:30:00"),
	})
	require.NoError(t, err)
	require.Equal(t, aptID, id)

	after := repo.appointments[aptID]
	require.Equal(t, "2025-01-02T09:30:00", FormatTimestamp(after.StartTime))
	require.Equal(t, before.EndTime, after.EndTime, "end_time must be untouched")
	require.Equal(t, before.CreatedAt, after.CreatedAt, "created_at is immutable")
	require.Equal(t, before.UserID, after.UserID)
	require.Equal(t, before.DoctorID, after.DoctorID)
}

func TestUpdateBothFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	aptID := mustCreate(t, svc, userID, doctorID, "2025-01-01T13:00:00", "2025-01-01T14:00:00")

	_, err := svc.Update(context.Background(), aptID, UpdateInput{
		StartTime: strptr("2025-02-01T10:00:00"),
		EndTime:   strptr("2025-02-01T11:00:00"),
	})
	require.NoError(t, err)

	after := repo.appointments[aptID]
	require.Equal(t, "2025-02-01T10:00:00", FormatTimestamp(after.StartTime))
	require.Equal(t, "2025-02-01T11:00:00", FormatTimestamp(after.EndTime))
}

func TestUpdateNoFieldsIsNoOp(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	aptID := mustCreate(t, svc, userID, doctorID, "2025-01-01T13:00:00", "2025-01-01T14:00:00")
	before := repo.appointments[aptID]

	id, err := svc.Update(context.Background(), aptID, UpdateInput{})
	require.NoError(t, err)
	require.Equal(t, aptID, id)
	require.Equal(t, before, repo.appointments[aptID])
}

func TestUpdateNotFound(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), 999, UpdateInput{
		StartTime: strptr("2025-01-02T09:30:00"),
	})
	require.ErrorIs(t, err, ErrAppointmentNotFound)
	require.Empty(t, repo.appointments)
}

func TestUpdateInvalidTimestamp(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	aptID := mustCreate(t, svc, userID, doctorID, "2025-01-01T13:00:00", "2025-01-01T14:00:00")
	before := repo.appointments[aptID]

	_, err := svc.Update(context.Background(), aptID, UpdateInput{
		EndTime: strptr("not a time"),
	})
	require.ErrorIs(t, err, ErrInvalidTimestamp)
	require.Equal(t, before, repo.appointments[aptID], "failed update must not alter the row")
}

func TestDeleteTwice(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	aptID := mustCreate(t, svc, userID, doctorID, "2025-01-01T13:00:00", "2025-01-01T14:00:00")

	id, err := svc.Delete(context.Background(), aptID)
	require.NoError(t, err)
	require.Equal(t, aptID, id)

	_, err = svc.Delete(context.Background(), aptID)
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	ids := []int64{
		mustCreate(t, svc, userID, doctorID, "2025-01-01T13:00:00", "2025-01-01T14:00:00"),
		mustCreate(t, svc, userID, doctorID, "2025-01-02T13:00:00", "2025-01-02T14:00:00"),
		mustCreate(t, svc, userID, doctorID, "2025-01-03T13:00:00", "2025-01-03T14:00:00"),
	}

	require.NoError(t, svc.RemoveUser(context.Background(), userID))

	for _, id := range ids {
		_, err := repo.GetAppointmentByID(context.Background(), id)
		require.ErrorIs(t, err, ErrAppointmentNotFound)
	}

	require.ErrorIs(t, svc.RemoveUser(context.Background(), userID), ErrUserNotFound)
}

func TestDeleteDoctorCascades(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	userID, doctorID := seedUserAndDoctor(t, repo)

	aptID := mustCreate(t, svc, userID, doctorID, "2025-01-01T13:00:00", "2025-01-01T14:00:00")

	require.NoError(t, svc.RemoveDoctor(context.Background(), doctorID))

	_, err := repo.GetAppointmentByID(context.Background(), aptID)
	require.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = svc.ListByDoctor(context.Background(), doctorID)
	require.ErrorIs(t, err, ErrNoAppointments)
}

func TestRegisterUserValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.RegisterUser(context.Background(), "", "a@b.com", "555-1111")
	require.ErrorIs(t, err, ErrMissingFields)

	u, err := svc.RegisterUser(context.Background(), "Alice", "a@b.com", "555-1111")
	require.NoError(t, err)
	require.Positive(t, u.ID)

	_, err = svc.RegisterUser(context.Background(), "Mallory", "a@b.com", "555-2222")
	require.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRegisterDoctorDuplicatePhone(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	spec := "Cardiology"
	_, err := svc.RegisterDoctor(context.Background(), "Dr. A", "a@clinic.com", "555-3333", &spec)
	require.NoError(t, err)

	_, err = svc.RegisterDoctor(context.Background(), "Dr. B", "b@clinic.com", "555-3333", nil)
	require.ErrorIs(t, err, ErrDuplicateDoctor)
}
