package routers

import (
	"context"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryRedis mimics the redis repository, storing JSON encoded values.
type memoryRedis struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: make(map[string]string)}
}

func (r *memoryRedis) Ping(ctx context.Context) error { return nil }

func (r *memoryRedis) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

func (r *memoryRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = string(encoded)
	return nil
}

func (r *memoryRedis) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key], nil
}

func (r *memoryRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.values[key]; exists {
		return false, nil
	}
	r.values[key] = string(encoded)
	return true, nil
}

func (r *memoryRedis) DeleteIfEqual(ctx context.Context, key string, value interface{}) (bool, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values[key] != string(encoded) {
		return false, nil
	}
	delete(r.values, key)
	return true, nil
}

func (r *memoryRedis) ExpireIfEqual(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.values[key] == string(encoded), nil
}

type memoryMediaStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryMediaStorage() *memoryMediaStorage {
	return &memoryMediaStorage{objects: make(map[string][]byte)}
}

func (s *memoryMediaStorage) EnsureBucket(ctx context.Context) error { return nil }

func (s *memoryMediaStorage) UploadImage(ctx context.Context, folder string, image *requests.ImageUpload) (string, error) {
	imageURL := utils.BuildObjectURL("http://media.test", "bucket", utils.GenerateObjectName(folder, image.FileName))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[imageURL] = image.Data
	return imageURL, nil
}

func (s *memoryMediaStorage) DeleteImage(ctx context.Context, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, imageURL)
	return nil
}

func (s *memoryMediaStorage) has(imageURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[imageURL]
	return ok
}

type memoryDoctorRepository struct {
	mu      sync.Mutex
	doctors map[primitive.ObjectID]models.Doctor
}

func newMemoryDoctorRepository() *memoryDoctorRepository {
	return &memoryDoctorRepository{doctors: make(map[primitive.ObjectID]models.Doctor)}
}

func (r *memoryDoctorRepository) FindAll(ctx context.Context, limit int64) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Doctor, 0, len(r.doctors))
	for _, doctor := range r.doctors {
		result = append(result, doctor)
	}
	return result, nil
}

func (r *memoryDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doctor, ok := r.doctors[objectID]
	if !ok {
		return nil, nil
	}
	return &doctor, nil
}

func (r *memoryDoctorRepository) FindByIDs(ctx context.Context, doctorIDs []string) ([]models.Doctor, error) {
	result := make([]models.Doctor, 0, len(doctorIDs))
	for _, doctorID := range doctorIDs {
		doctor, err := r.FindByID(ctx, doctorID)
		if err != nil {
			return nil, err
		}
		if doctor != nil {
			result = append(result, *doctor)
		}
	}
	return result, nil
}

func (r *memoryDoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	doctor.SetCreatedAtUpdatedAt()
	doctor.ID = primitive.NewObjectID()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[doctor.ID] = *doctor
	return doctor.ID.Hex(), nil
}

func (r *memoryDoctorRepository) UpdateDoctor(ctx context.Context, doctor *models.Doctor) error {
	doctor.SetUpdatedAt()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *memoryDoctorRepository) DeleteDoctor(ctx context.Context, doctorID string) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.doctors, objectID)
	return nil
}

type memoryBlogRepository struct {
	mu    sync.Mutex
	blogs map[primitive.ObjectID]models.Blog
}

func newMemoryBlogRepository() *memoryBlogRepository {
	return &memoryBlogRepository{blogs: make(map[primitive.ObjectID]models.Blog)}
}

func (r *memoryBlogRepository) EnsureIndexes(ctx context.Context) error { return nil }

func (r *memoryBlogRepository) FindAll(ctx context.Context) ([]models.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Blog, 0, len(r.blogs))
	for _, blog := range r.blogs {
		result = append(result, blog)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *memoryBlogRepository) FindByID(ctx context.Context, blogID string) (*models.Blog, error) {
	objectID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	blog, ok := r.blogs[objectID]
	if !ok {
		return nil, nil
	}
	return &blog, nil
}

func (r *memoryBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) (string, error) {
	blog.SetCreatedAtUpdatedAt()
	blog.ID = primitive.NewObjectID()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blogs[blog.ID] = *blog
	return blog.ID.Hex(), nil
}

func (r *memoryBlogRepository) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	blog.SetUpdatedAt()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blogs[blog.ID] = *blog
	return nil
}

func (r *memoryBlogRepository) DeleteBlog(ctx context.Context, blogID string) error {
	objectID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blogs, objectID)
	return nil
}

// memoryAppointmentRepository rejects a second active appointment on the
// same slot the way the unique partial index does.
type memoryAppointmentRepository struct {
	mu           sync.Mutex
	appointments map[primitive.ObjectID]models.Appointment
}

func newMemoryAppointmentRepository() *memoryAppointmentRepository {
	return &memoryAppointmentRepository{appointments: make(map[primitive.ObjectID]models.Appointment)}
}

func (r *memoryAppointmentRepository) EnsureIndexes(ctx context.Context) error { return nil }

func (r *memoryAppointmentRepository) FindAll(ctx context.Context, filter *requests.AppointmentFilter) ([]models.Appointment, error) {
	return r.filter(func(appointment models.Appointment) bool {
		if filter == nil {
			return true
		}
		if filter.PatientEmail != "" && appointment.PatientEmail != filter.PatientEmail {
			return false
		}
		return filter.Status == "" || appointment.Status == filter.Status
	}), nil
}

func (r *memoryAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
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

func (r *memoryAppointmentRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.filter(func(appointment models.Appointment) bool {
		return appointment.DoctorID.Hex() == doctorID
	}), nil
}

func (r *memoryAppointmentRepository) FindActiveBySlot(ctx context.Context, slot models.Slot, excludeID string) (*models.Appointment, error) {
	found := r.filter(func(appointment models.Appointment) bool {
		return appointment.Active && appointment.Slot() == slot && appointment.ID.Hex() != excludeID
	})
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *memoryAppointmentRepository) FindConfirmedUpTo(ctx context.Context, date, afterID string, limit int64) ([]models.Appointment, error) {
	found := r.filter(func(appointment models.Appointment) bool {
		return appointment.Status == constvars.AppointmentStatusConfirmed && appointment.Date <= date && appointment.ID.Hex() > afterID
	})
	sort.Slice(found, func(i, j int) bool { return found[i].ID.Hex() < found[j].ID.Hex() })
	if limit > 0 && int64(len(found)) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (r *memoryAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
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

func (r *memoryAppointmentRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTakenLocked(*appointment) {
		return exceptions.ErrAppointmentSlotAlreadyBooked(nil, appointment.Slot().String())
	}
	appointment.SetUpdatedAt()
	r.appointments[appointment.ID] = *appointment
	return nil
}

func (r *memoryAppointmentRepository) MarkCompleted(ctx context.Context, appointmentIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var modified int64
	for _, appointmentID := range appointmentIDs {
		objectID, err := primitive.ObjectIDFromHex(appointmentID)
		if err != nil {
			continue
		}
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

func (r *memoryAppointmentRepository) DeleteAppointment(ctx context.Context, appointmentID string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.appointments, objectID)
	return nil
}

func (r *memoryAppointmentRepository) filter(keep func(models.Appointment) bool) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.Appointment, 0)
	for _, appointment := range r.appointments {
		if keep(appointment) {
			result = append(result, appointment)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Time < result[j].Time
	})
	return result
}

func (r *memoryAppointmentRepository) slotTakenLocked(candidate models.Appointment) bool {
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
