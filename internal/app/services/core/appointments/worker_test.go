package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAppointmentUsecase struct {
	mock.Mock
}

func (m *MockAppointmentUsecase) CreateAppointment(ctx context.Context, request *requests.CreateAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, request)
	return nil, args.Error(1)
}

func (m *MockAppointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID string, request *requests.UpdateAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, appointmentID, request)
	return nil, args.Error(1)
}

func (m *MockAppointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockAppointmentUsecase) FindAll(ctx context.Context, filter *requests.AppointmentFilter) ([]responses.Appointment, error) {
	args := m.Called(ctx, filter)
	return nil, args.Error(1)
}

func (m *MockAppointmentUsecase) FindByID(ctx context.Context, appointmentID string) (*responses.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	return nil, args.Error(1)
}

func (m *MockAppointmentUsecase) FindByDoctorID(ctx context.Context, doctorID string) ([]responses.Appointment, error) {
	args := m.Called(ctx, doctorID)
	return nil, args.Error(1)
}

func (m *MockAppointmentUsecase) FindMine(ctx context.Context) ([]responses.Appointment, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *MockAppointmentUsecase) CompletePastAppointments(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func TestWorker_RunOnce(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cfg := &config.InternalConfig{
		Appointment: config.AppAppointment{CompletionLeaderLockTTLInSecond: 60},
	}

	t.Run("leader completes past appointments and releases the lock", func(t *testing.T) {
		locker := newFakeLocker()
		usecase := new(MockAppointmentUsecase)
		usecase.On("CompletePastAppointments", mock.Anything, now).Return(int64(2), nil).Once()

		worker := NewWorker(zap.NewNop(), cfg, locker, usecase)
		worker.now = func() time.Time { return now }
		worker.RunOnce(context.Background())

		usecase.AssertExpectations(t)
		acquired, _, err := locker.TryLock(context.Background(), constvars.RedisKeyCompletionLeader, time.Minute)
		assert.NoError(t, err)
		assert.True(t, acquired, "leader lock should be released after the run")
	})

	t.Run("skips when another instance leads", func(t *testing.T) {
		locker := newFakeLocker()
		locker.hold(constvars.RedisKeyCompletionLeader)
		usecase := new(MockAppointmentUsecase)

		worker := NewWorker(zap.NewNop(), cfg, locker, usecase)
		worker.RunOnce(context.Background())

		usecase.AssertNotCalled(t, "CompletePastAppointments", mock.Anything, mock.Anything)
	})
}

func TestWorker_StartStop(t *testing.T) {
	cfg := &config.InternalConfig{
		Appointment: config.AppAppointment{CompletionWorkerCronSpec: "not a cron spec"},
	}
	worker := NewWorker(zap.NewNop(), cfg, newFakeLocker(), new(MockAppointmentUsecase))

	worker.Start(context.Background())
	assert.Len(t, worker.cron.Entries(), 1)
	worker.Stop()
}
