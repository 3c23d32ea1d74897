package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeAppointmentRepository keeps appointments in memory and enforces the
// single active appointment per slot rule like the unique partial index.
type fakeAppointmentRepository struct {
	mu                 sync.Mutex
	appointments       map[primitive.ObjectID]models.Appointment
	findConfirmedCalls int
}

func newFakeAppointmentRepository() *fakeAppointmentRepository {
	return &fakeAppointmentRepository{appointments: make(map[primitive.ObjectID]models.Appointment)}
}

func (r *fakeAppointmentRepository) EnsureIndexes(ctx context.Context) error { return nil }

func (r *fakeAppointmentRepository) FindAll(ctx context.Context, filter *requests.AppointmentFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range r.appointments {
		if filter != nil && filter.PatientEmail != "" && appointment.PatientEmail != filter.PatientEmail {
			continue
		}
		if filter != nil && filter.Status != "" && appointment.Status != filter.Status {
			continue
		}
		result = append(result, appointment)
	}
	return result, nil
}

func (r *fakeAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[objectID]
	if !ok {
		return nil, nil
	}
	return &appointment, nil
}

func (r *fakeAppointmentRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range r.appointments {
		if appointment.DoctorID.Hex() == doctorID {
			result = append(result, appointment)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepository) FindActiveBySlot(ctx context.Context, slot models.Slot, excludeID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, appointment := range r.appointments {
		if appointment.Active && appointment.Slot() == slot && appointment.ID.Hex() != excludeID {
			found := appointment
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAppointmentRepository) FindConfirmedUpTo(ctx context.Context, date, afterID string, limit int64) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range r.appointments {
		if appointment.Status == constvars.AppointmentStatusConfirmed && appointment.Date <= date && appointment.ID.Hex() > afterID {
			result = append(result, appointment)
		}
	}
	r.findConfirmedCalls++
	return pageByID(result, limit), nil
}

// pageByID orders appointments by id and keeps the first limit of them.
func pageByID(appointments []models.Appointment, limit int64) []models.Appointment {
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].ID.Hex() < appointments[j].ID.Hex()
	})
	if limit > 0 && int64(len(appointments)) > limit {
		return appointments[:limit]
	}
	return appointments
}

func (r *fakeAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTakenLocked(*appointment) {
		return "", exceptions.ErrAppointmentSlotAlreadyBooked(nil, appointment.Slot().String())
	}
	appointment.SetCreatedAtUpdatedAt()
	appointment.ID = primitive.NewObjectID()
	r.appointments[appointment.ID] = *appointment
	return appointment.ID.Hex(), nil
}

func (r *fakeAppointmentRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTakenLocked(*appointment) {
		return exceptions.ErrAppointmentSlotAlreadyBooked(nil, appointment.Slot().String())
	}
	appointment.SetUpdatedAt()
	r.appointments[appointment.ID] = *appointment
	return nil
}

func (r *fakeAppointmentRepository) MarkCompleted(ctx context.Context, appointmentIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var modified int64
	for _, appointmentID := range appointmentIDs {
		objectID, _ := primitive.ObjectIDFromHex(appointmentID)
		appointment, ok := r.appointments[objectID]
		if !ok || appointment.Status != constvars.AppointmentStatusConfirmed {
			continue
		}
		appointment.Status = constvars.AppointmentStatusCompleted
		appointment.Active = false
		r.appointments[objectID] = appointment
		modified++
	}
	return modified, nil
}

func (r *fakeAppointmentRepository) DeleteAppointment(ctx context.Context, appointmentID string) error {
	objectID, _ := primitive.ObjectIDFromHex(appointmentID)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.appointments, objectID)
	return nil
}

func (r *fakeAppointmentRepository) slotTakenLocked(candidate models.Appointment) bool {
	if !candidate.Active {
		return false
	}
	for id, appointment := range r.appointments {
		if id != candidate.ID && appointment.Active && appointment.Slot() == candidate.Slot() {
			return true
		}
	}
	return false
}

type fakeDoctorRepository struct {
	doctors map[primitive.ObjectID]models.Doctor
}

func newFakeDoctorRepository(doctors ...models.Doctor) *fakeDoctorRepository {
	repo := &fakeDoctorRepository{doctors: make(map[primitive.ObjectID]models.Doctor)}
	for _, doctor := range doctors {
		repo.doctors[doctor.ID] = doctor
	}
	return repo
}

func (r *fakeDoctorRepository) FindAll(ctx context.Context, limit int64) ([]models.Doctor, error) {
	result := make([]models.Doctor, 0, len(r.doctors))
	for _, doctor := range r.doctors {
		result = append(result, doctor)
	}
	return result, nil
}

func (r *fakeDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	doctor, ok := r.doctors[objectID]
	if !ok {
		return nil, nil
	}
	return &doctor, nil
}

func (r *fakeDoctorRepository) FindByIDs(ctx context.Context, doctorIDs []string) ([]models.Doctor, error) {
	result := make([]models.Doctor, 0, len(doctorIDs))
	for _, doctorID := range doctorIDs {
		doctor, _ := r.FindByID(ctx, doctorID)
		if doctor != nil {
			result = append(result, *doctor)
		}
	}
	return result, nil
}

func (r *fakeDoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	doctor.ID = primitive.NewObjectID()
	r.doctors[doctor.ID] = *doctor
	return doctor.ID.Hex(), nil
}

func (r *fakeDoctorRepository) UpdateDoctor(ctx context.Context, doctor *models.Doctor) error {
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepository) DeleteDoctor(ctx context.Context, doctorID string) error {
	objectID, _ := primitive.ObjectIDFromHex(doctorID)
	delete(r.doctors, objectID)
	return nil
}

// fakeLocker is an in-process stand-in for the redis lock.
type fakeLocker struct {
	mu    sync.Mutex
	locks map[string]string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{locks: make(map[string]string)}
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.locks[key]; held {
		return false, "", nil
	}
	token := uuid.NewString()
	l.locks[key] = token
	return true, token, nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, lockValue string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks[key] == lockValue {
		delete(l.locks, key)
	}
	return nil
}

func (l *fakeLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return nil
}

func (l *fakeLocker) WithLock(ctx context.Context, key string, expiration time.Duration, fn func(ctx context.Context) error) (bool, error) {
	acquired, token, err := l.TryLock(ctx, key, expiration)
	if err != nil || !acquired {
		return false, err
	}
	defer l.Unlock(ctx, key, token)
	return true, fn(ctx)
}

// hold takes key on behalf of another client.
func (l *fakeLocker) hold(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locks[key] = "held-elsewhere"
}

type MockMailerService struct {
	mock.Mock
}

func (m *MockMailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}
