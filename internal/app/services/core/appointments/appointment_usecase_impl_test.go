package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/metrics"
	"doctor-appointment-service/internal/pkg/utils"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type appointmentTestEnv struct {
	usecase      *appointmentUsecase
	repo         *fakeAppointmentRepository
	doctors      *fakeDoctorRepository
	locker       *fakeLocker
	mailer       *MockMailerService
	metrics      *metrics.Metrics
	doctor       models.Doctor
	otherDoctor  models.Doctor
	internalConf *config.InternalConfig
}

func newAppointmentTestEnv(t *testing.T) *appointmentTestEnv {
	t.Helper()

	doctor := models.Doctor{ID: primitive.NewObjectID(), Name: "Dr. Ada", Speciality: "Cardiology", ImageURL: "http://media/doctors/ada.png"}
	otherDoctor := models.Doctor{ID: primitive.NewObjectID(), Name: "Dr. Grace", Speciality: "Neurology"}

	internalConfig := &config.InternalConfig{
		App:    config.App{Timezone: "UTC"},
		Mailer: config.AppMailer{EmailSender: "noreply@clinic.test"},
		Appointment: config.AppAppointment{
			SlotLockTTLInSeconds: 5,
		},
	}

	mailer := new(MockMailerService)
	mailer.On("SendEmail", mock.Anything, mock.Anything).Return(nil).Maybe()

	env := &appointmentTestEnv{
		repo:         newFakeAppointmentRepository(),
		doctors:      newFakeDoctorRepository(doctor, otherDoctor),
		locker:       newFakeLocker(),
		mailer:       mailer,
		metrics:      metrics.NewMetrics("test", prometheus.NewRegistry()),
		doctor:       doctor,
		otherDoctor:  otherDoctor,
		internalConf: internalConfig,
	}
	env.usecase = newAppointmentUsecase(env.repo, env.doctors, env.locker, env.mailer, internalConfig, env.metrics, zap.NewNop())
	return env
}

func (env *appointmentTestEnv) book(t *testing.T, date, clock string) string {
	t.Helper()
	response, err := env.usecase.CreateAppointment(context.Background(), &requests.CreateAppointment{
		DoctorID:     env.doctor.ID.Hex(),
		PatientName:  "Jane Doe",
		PatientEmail: "jane@example.com",
		Date:         date,
		Time:         clock,
	})
	require.NoError(t, err)
	return response.ID
}

func stringPointer(status string) *string {
	return &status
}

func clientMessage(t *testing.T, err error) string {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %T", err)
	return customErr.ClientMessage
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %T", err)
	return customErr.StatusCode
}

func TestAppointmentUsecase_CreateAppointment(t *testing.T) {
	t.Run("defaults to pending and populates the doctor", func(t *testing.T) {
		env := newAppointmentTestEnv(t)

		response, err := env.usecase.CreateAppointment(context.Background(), &requests.CreateAppointment{
			DoctorID:     env.doctor.ID.Hex(),
			PatientName:  "Jane Doe",
			PatientEmail: "jane@example.com",
			Date:         "2025-03-10",
			Time:         "10:00",
		})

		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusPending, response.Status)
		require.NotNil(t, response.Doctor)
		assert.Equal(t, env.doctor.ID.Hex(), response.Doctor.ID)
		assert.Equal(t, "Dr. Ada", response.Doctor.Name)
		assert.Equal(t, "Cardiology", response.Doctor.Speciality)
		assert.NotEmpty(t, response.ID)
		env.mailer.AssertCalled(t, "SendEmail", mock.Anything, mock.MatchedBy(func(payload *requests.EmailPayload) bool {
			return len(payload.To) == 1 && payload.To[0] == "jane@example.com" &&
				payload.Kind == constvars.EmailKindAppointmentBooked &&
				payload.AppointmentID == response.ID
		}))
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.BookingOutcomes.WithLabelValues(metrics.BookingOutcomeCreated)))
	})

	t.Run("keeps an explicit confirmed status", func(t *testing.T) {
		env := newAppointmentTestEnv(t)

		response, err := env.usecase.CreateAppointment(context.Background(), &requests.CreateAppointment{
			DoctorID:     env.doctor.ID.Hex(),
			PatientName:  "Jane Doe",
			PatientEmail: "jane@example.com",
			Date:         "2025-03-10",
			Time:         "10:00",
			Status:       constvars.AppointmentStatusConfirmed,
		})

		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusConfirmed, response.Status)
	})

	t.Run("unknown doctor is not found", func(t *testing.T) {
		env := newAppointmentTestEnv(t)

		_, err := env.usecase.CreateAppointment(context.Background(), &requests.CreateAppointment{
			DoctorID:     primitive.NewObjectID().Hex(),
			PatientName:  "Jane Doe",
			PatientEmail: "jane@example.com",
			Date:         "2025-03-10",
			Time:         "10:00",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, statusCode(t, err))
	})

	t.Run("rejects a booked slot", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		env.book(t, "2025-03-10", "10:00")

		_, err := env.usecase.CreateAppointment(context.Background(), &requests.CreateAppointment{
			DoctorID:     env.doctor.ID.Hex(),
			PatientName:  "John Roe",
			PatientEmail: "john@example.com",
			Date:         "2025-03-10",
			Time:         "10:00",
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCode(t, err))
		assert.Equal(t, "This time slot is already booked", clientMessage(t, err))
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.BookingOutcomes.WithLabelValues(metrics.BookingOutcomeConflict)))
	})

	t.Run("same date and time with another doctor is allowed", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		env.book(t, "2025-03-10", "10:00")

		_, err := env.usecase.CreateAppointment(context.Background(), &requests.CreateAppointment{
			DoctorID:     env.otherDoctor.ID.Hex(),
			PatientName:  "John Roe",
			PatientEmail: "john@example.com",
			Date:         "2025-03-10",
			Time:         "10:00",
		})

		require.NoError(t, err)
	})

	t.Run("slot locked by another request is a conflict", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		slot := models.Slot{DoctorID: env.doctor.ID.Hex(), Date: "2025-03-10", Time: "10:00"}
		env.locker.hold(slot.LockKey())

		_, err := env.usecase.CreateAppointment(context.Background(), &requests.CreateAppointment{
			DoctorID:     env.doctor.ID.Hex(),
			PatientName:  "Jane Doe",
			PatientEmail: "jane@example.com",
			Date:         slot.Date,
			Time:         slot.Time,
		})

		require.Error(t, err)
		assert.Equal(t, "This time slot is already booked", clientMessage(t, err))
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.BookingOutcomes.WithLabelValues(metrics.BookingOutcomeContended)))
	})

	t.Run("cancelled appointment frees its slot", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		appointmentID := env.book(t, "2025-03-10", "10:00")

		_, err := env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
			Status: stringPointer(constvars.AppointmentStatusCancelled),
		})
		require.NoError(t, err)

		env.book(t, "2025-03-10", "10:00")
	})

	t.Run("mailer failure does not fail the booking", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		failingMailer := new(MockMailerService)
		failingMailer.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("broker down"))
		env.usecase.MailerService = failingMailer

		env.book(t, "2025-03-10", "10:00")
		failingMailer.AssertExpectations(t)
	})

	t.Run("concurrent bookings of one slot admit exactly one", func(t *testing.T) {
		env := newAppointmentTestEnv(t)

		const attempts = 20
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := env.usecase.CreateAppointment(context.Background(), &requests.CreateAppointment{
					DoctorID:     env.doctor.ID.Hex(),
					PatientName:  "Jane Doe",
					PatientEmail: "jane@example.com",
					Date:         "2025-03-10",
					Time:         "10:00",
				})
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		appointments, err := env.repo.FindByDoctorID(context.Background(), env.doctor.ID.Hex())
		require.NoError(t, err)
		assert.Len(t, appointments, 1)
	})
}

func TestAppointmentUsecase_UpdateAppointment(t *testing.T) {
	t.Run("follows the status workflow", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		appointmentID := env.book(t, "2025-03-10", "10:00")

		response, err := env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
			Status: stringPointer(constvars.AppointmentStatusConfirmed),
		})
		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusConfirmed, response.Status)
		require.NotNil(t, response.Doctor)
		assert.Equal(t, "Dr. Ada", response.Doctor.Name)
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.StatusTransitions.WithLabelValues(constvars.AppointmentStatusPending, constvars.AppointmentStatusConfirmed)))

		response, err = env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
			Status: stringPointer(constvars.AppointmentStatusCancelled),
		})
		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusCancelled, response.Status)

		_, err = env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
			Status: stringPointer(constvars.AppointmentStatusConfirmed),
		})
		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCode(t, err))
	})

	t.Run("rescheduling into a booked slot is a conflict", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		env.book(t, "2025-03-10", "10:00")
		secondID := env.book(t, "2025-03-10", "11:00")

		_, err := env.usecase.UpdateAppointment(context.Background(), secondID, &requests.UpdateAppointment{
			Time: stringPointer("10:00"),
		})

		require.Error(t, err)
		assert.Equal(t, "This time slot is already booked", clientMessage(t, err))
	})

	t.Run("rescheduling to a free slot succeeds", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		appointmentID := env.book(t, "2025-03-10", "10:00")

		response, err := env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
			Date: stringPointer("2025-03-11"),
		})

		require.NoError(t, err)
		assert.Equal(t, "2025-03-11", response.Date)
		assert.Equal(t, "10:00", response.Time)
	})

	t.Run("resubmitting the same slot does not conflict with itself", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		appointmentID := env.book(t, "2025-03-10", "10:00")

		response, err := env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
			Date:        stringPointer("2025-03-10"),
			Time:        stringPointer("10:00"),
			PatientName: stringPointer("Jane Smith"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", response.PatientName)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		env := newAppointmentTestEnv(t)

		_, err := env.usecase.UpdateAppointment(context.Background(), primitive.NewObjectID().Hex(), &requests.UpdateAppointment{
			Status: stringPointer(constvars.AppointmentStatusConfirmed),
		})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusNotFound, statusCode(t, err))
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		appointmentID := env.book(t, "2025-03-10", "10:00")

		_, err := env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{})

		require.Error(t, err)
		assert.Equal(t, constvars.StatusBadRequest, statusCode(t, err))
	})
}

func TestAppointmentUsecase_DeleteAppointment(t *testing.T) {
	env := newAppointmentTestEnv(t)
	appointmentID := env.book(t, "2025-03-10", "10:00")

	require.NoError(t, env.usecase.DeleteAppointment(context.Background(), appointmentID))

	err := env.usecase.DeleteAppointment(context.Background(), appointmentID)
	require.Error(t, err)
	assert.Equal(t, constvars.StatusNotFound, statusCode(t, err))

	env.book(t, "2025-03-10", "10:00")
}

func TestAppointmentUsecase_Queries(t *testing.T) {
	t.Run("lists by doctor including cancelled", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		cancelledID := env.book(t, "2025-03-10", "10:00")
		env.book(t, "2025-03-10", "11:00")
		_, err := env.usecase.UpdateAppointment(context.Background(), cancelledID, &requests.UpdateAppointment{
			Status: stringPointer(constvars.AppointmentStatusCancelled),
		})
		require.NoError(t, err)

		appointments, err := env.usecase.FindByDoctorID(context.Background(), env.doctor.ID.Hex())
		require.NoError(t, err)
		assert.Len(t, appointments, 2)

		appointments, err = env.usecase.FindByDoctorID(context.Background(), env.otherDoctor.ID.Hex())
		require.NoError(t, err)
		assert.Empty(t, appointments)
	})

	t.Run("appointments of a deleted doctor have no doctor", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		appointmentID := env.book(t, "2025-03-10", "10:00")
		require.NoError(t, env.doctors.DeleteDoctor(context.Background(), env.doctor.ID.Hex()))

		response, err := env.usecase.FindByID(context.Background(), appointmentID)
		require.NoError(t, err)
		assert.Nil(t, response.Doctor)
	})

	t.Run("mine requires an identity", func(t *testing.T) {
		env := newAppointmentTestEnv(t)

		_, err := env.usecase.FindMine(context.Background())

		require.Error(t, err)
		assert.Equal(t, constvars.StatusUnauthorized, statusCode(t, err))
	})

	t.Run("mine filters by the identity email", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		env.book(t, "2025-03-10", "10:00")
		_, err := env.usecase.CreateAppointment(context.Background(), &requests.CreateAppointment{
			DoctorID:     env.doctor.ID.Hex(),
			PatientName:  "John Roe",
			PatientEmail: "john@example.com",
			Date:         "2025-03-10",
			Time:         "11:00",
		})
		require.NoError(t, err)

		ctx := utils.WithIdentity(context.Background(), &utils.Identity{Email: "john@example.com", Name: "John Roe"})
		appointments, err := env.usecase.FindMine(ctx)

		require.NoError(t, err)
		require.Len(t, appointments, 1)
		assert.Equal(t, "john@example.com", appointments[0].PatientEmail)
	})
}

func TestAppointmentUsecase_CompletePastAppointments(t *testing.T) {
	env := newAppointmentTestEnv(t)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	pastConfirmedID := env.book(t, "2025-03-10", "09:00")
	futureConfirmedID := env.book(t, "2025-03-10", "15:00")
	pastPendingID := env.book(t, "2025-03-09", "09:00")
	for _, appointmentID := range []string{pastConfirmedID, futureConfirmedID} {
		_, err := env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
			Status: stringPointer(constvars.AppointmentStatusConfirmed),
		})
		require.NoError(t, err)
	}

	completed, err := env.usecase.CompletePastAppointments(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)

	expected := map[string]string{
		pastConfirmedID:   constvars.AppointmentStatusCompleted,
		futureConfirmedID: constvars.AppointmentStatusConfirmed,
		pastPendingID:     constvars.AppointmentStatusPending,
	}
	for appointmentID, status := range expected {
		appointment, err := env.repo.FindByID(context.Background(), appointmentID)
		require.NoError(t, err)
		assert.Equal(t, status, appointment.Status, appointmentID)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.AppointmentsCompleted))
}

func TestAppointmentUsecase_CompletedAppointmentsReleaseTheirSlot(t *testing.T) {
	t.Run("manual completion", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		appointmentID := env.book(t, "2025-03-10", "10:00")

		for _, status := range []string{constvars.AppointmentStatusConfirmed, constvars.AppointmentStatusCompleted} {
			_, err := env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
				Status: stringPointer(status),
			})
			require.NoError(t, err)
		}

		completed, err := env.repo.FindByID(context.Background(), appointmentID)
		require.NoError(t, err)
		assert.False(t, completed.Active)

		rebookedID := env.book(t, "2025-03-10", "10:00")
		assert.NotEqual(t, appointmentID, rebookedID)
	})

	t.Run("completion run", func(t *testing.T) {
		env := newAppointmentTestEnv(t)
		appointmentID := env.book(t, "2025-03-10", "09:00")
		_, err := env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
			Status: stringPointer(constvars.AppointmentStatusConfirmed),
		})
		require.NoError(t, err)

		completedCount, err := env.usecase.CompletePastAppointments(context.Background(), time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(1), completedCount)

		completed, err := env.repo.FindByID(context.Background(), appointmentID)
		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusCompleted, completed.Status)
		assert.False(t, completed.Active)

		env.book(t, "2025-03-10", "09:00")
	})
}

func TestAppointmentUsecase_CompletePastAppointmentsPagesPastSkippedRecords(t *testing.T) {
	env := newAppointmentTestEnv(t)
	env.internalConf.Appointment.CompletionBatchSize = 2
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// records that can never complete fill more than one page
	env.repo.mu.Lock()
	for i := 0; i < 3; i++ {
		broken := models.Appointment{
			ID:           primitive.NewObjectID(),
			DoctorID:     env.doctor.ID,
			PatientName:  "Broken Record",
			PatientEmail: "broken@example.com",
			Date:         "2025-03-01",
			Time:         "not-a-time",
			Status:       constvars.AppointmentStatusConfirmed,
			Active:       true,
		}
		env.repo.appointments[broken.ID] = broken
	}
	env.repo.mu.Unlock()

	dueIDs := []string{env.book(t, "2025-03-09", "09:00"), env.book(t, "2025-03-10", "08:00")}
	notDueID := env.book(t, "2025-03-10", "18:00")
	for _, appointmentID := range append(dueIDs, notDueID) {
		_, err := env.usecase.UpdateAppointment(context.Background(), appointmentID, &requests.UpdateAppointment{
			Status: stringPointer(constvars.AppointmentStatusConfirmed),
		})
		require.NoError(t, err)
	}

	completed, err := env.usecase.CompletePastAppointments(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(2), completed)
	assert.Equal(t, 4, env.repo.findConfirmedCalls, "three full pages of two and a final empty page")
	for _, appointmentID := range dueIDs {
		appointment, err := env.repo.FindByID(context.Background(), appointmentID)
		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusCompleted, appointment.Status)
	}
	notDue, err := env.repo.FindByID(context.Background(), notDueID)
	require.NoError(t, err)
	assert.Equal(t, constvars.AppointmentStatusConfirmed, notDue.Status)
}
