package main

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/delivery/http/controllers"
	"doctor-appointment-service/internal/app/delivery/http/middlewares"
	"doctor-appointment-service/internal/app/delivery/http/routers"
	"doctor-appointment-service/internal/app/drivers/database"
	"doctor-appointment-service/internal/app/drivers/logger"
	"doctor-appointment-service/internal/app/drivers/messaging"
	"doctor-appointment-service/internal/app/drivers/storage"
	"doctor-appointment-service/internal/app/services/core/appointments"
	"doctor-appointment-service/internal/app/services/core/blogs"
	"doctor-appointment-service/internal/app/services/core/doctors"
	"doctor-appointment-service/internal/app/services/shared/locker"
	"doctor-appointment-service/internal/app/services/shared/mailer"
	redisRepository "doctor-appointment-service/internal/app/services/shared/redis"
	mediaStorage "doctor-appointment-service/internal/app/services/shared/storage"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/metrics"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redis := database.NewRedisClient(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig.Minio.BucketName, log)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig, log)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redis,
		Minio:          minioClient,
		Logger:         log,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.NewMetrics(constvars.MetricsNamespace, registry)

	// Shared services
	redisRepo := redisRepository.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepo, bootstrap.Logger)

	minioStorage := mediaStorage.NewMinioStorage(
		bootstrap.Minio,
		bootstrap.InternalConfig.Minio.BucketName,
		bootstrap.InternalConfig.Minio.PublicBaseURL,
		bootstrap.Logger,
	)
	err := minioStorage.EnsureBucket(ctx)
	if err != nil {
		return err
	}

	mailerService, err := mailer.NewMailerService(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.RabbitMQ.MailerQueue,
		bootstrap.Logger,
	)
	if err != nil {
		return err
	}

	// Repositories
	dbName := bootstrap.InternalConfig.MongoDB.DBName
	doctorMongoRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB, dbName)
	blogMongoRepository := blogs.NewBlogMongoRepository(bootstrap.MongoDB, dbName)
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)

	err = blogMongoRepository.EnsureIndexes(ctx)
	if err != nil {
		return err
	}
	err = appointmentMongoRepository.EnsureIndexes(ctx)
	if err != nil {
		return err
	}

	// Usecases
	doctorUsecase := doctors.NewDoctorUsecase(
		doctorMongoRepository,
		redisRepo,
		minioStorage,
		bootstrap.InternalConfig,
		appMetrics,
		bootstrap.Logger,
	)
	blogUsecase := blogs.NewBlogUsecase(
		blogMongoRepository,
		minioStorage,
		bootstrap.InternalConfig,
		appMetrics,
		bootstrap.Logger,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentMongoRepository,
		doctorMongoRepository,
		lockerService,
		mailerService,
		bootstrap.InternalConfig,
		appMetrics,
		bootstrap.Logger,
	)

	// Completion worker
	worker := appointments.NewWorker(bootstrap.Logger, bootstrap.InternalConfig, lockerService, appointmentUsecase)
	worker.Start(context.Background())
	bootstrap.WorkerStop = worker.Stop

	// Controllers
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase, bootstrap.InternalConfig)
	blogController := controllers.NewBlogController(bootstrap.Logger, blogUsecase, bootstrap.InternalConfig)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase, bootstrap.InternalConfig)
	healthController := controllers.NewHealthController(bootstrap.Logger, map[string]controllers.HealthCheck{
		"mongodb": func(ctx context.Context) error {
			return bootstrap.MongoDB.Ping(ctx, nil)
		},
		"redis": redisRepo.Ping,
		"minio": func(ctx context.Context) error {
			_, err := bootstrap.Minio.BucketExists(ctx, bootstrap.InternalConfig.Minio.BucketName)
			return err
		},
		"rabbitmq": func(ctx context.Context) error {
			if bootstrap.RabbitMQ.IsClosed() {
				return errors.New("rabbitmq connection closed")
			}
			return nil
		},
	})

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig, appMetrics)

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		metricsHandler,
		healthController,
		doctorController,
		blogController,
		appointmentController,
	)
	return nil
}
