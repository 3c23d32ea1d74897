package main

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/drivers/database"
	"doctor-appointment-service/internal/app/drivers/logger"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/app/services/core/blogs"
	"doctor-appointment-service/internal/app/services/core/doctors"
	"doctor-appointment-service/internal/pkg/constvars"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
)

var specialities = []string{
	"Cardiology",
	"Dermatology",
	"General Practice",
	"Neurology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
}

func main() {
	doctorCount := flag.Int("doctors", 10, "number of doctors to create")
	blogCount := flag.Int("blogs", 10, "number of blogs to create")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(driverConfig, internalConfig)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	mongoDB := database.NewMongoDB(driverConfig)
	defer mongoDB.Disconnect(context.Background())

	redis := database.NewRedisClient(driverConfig)
	defer redis.Close()

	dbName := internalConfig.MongoDB.DBName
	doctorRepository := doctors.NewDoctorMongoRepository(mongoDB, dbName)
	blogRepository := blogs.NewBlogMongoRepository(mongoDB, dbName)

	log.WithFields(logrus.Fields{
		"doctors": *doctorCount,
		"blogs":   *blogCount,
	}).Info("seed starting")

	for i := 0; i < *doctorCount; i++ {
		doctor := fakeDoctor()
		doctorID, err := doctorRepository.CreateDoctor(ctx, doctor)
		if err != nil {
			log.WithError(err).Fatal("failed to create doctor")
		}
		log.WithField("doctor_id", doctorID).Debug("doctor created")
	}

	err := redis.Del(ctx, constvars.RedisKeyDoctorList).Err()
	if err != nil {
		log.WithError(err).Warn("failed to invalidate doctor list cache")
	}

	for i := 0; i < *blogCount; i++ {
		blogID, err := blogRepository.CreateBlog(ctx, fakeBlog())
		if err != nil {
			log.WithError(err).Fatal("failed to create blog")
		}
		log.WithField("blog_id", blogID).Debug("blog created")
	}

	log.Info("seed complete")
}

func fakeDoctor() *models.Doctor {
	speciality := specialities[gofakeit.Number(0, len(specialities)-1)]
	workingHours := make([]models.WorkingHour, 0, 5)
	for _, day := range constvars.WorkingDays[:5] {
		workingHours = append(workingHours, models.WorkingHour{
			Day:         day,
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: gofakeit.Bool(),
		})
	}

	return &models.Doctor{
		Name:        fmt.Sprintf("Dr. %s", gofakeit.Name()),
		Speciality:  speciality,
		Description: fakeText(24),
		Email:       strings.ToLower(gofakeit.Email()),
		Phone:       gofakeit.Numerify("##########"),
		Address:     gofakeit.Address().Address,
		Experience: &models.DoctorExperience{
			Years:           gofakeit.Number(1, 35),
			PatientsServed:  gofakeit.Number(50, 20000),
			Specializations: []string{speciality},
		},
		WorkingHours: workingHours,
	}
}

func fakeBlog() *models.Blog {
	return &models.Blog{
		Title:            strings.TrimSuffix(fakeText(6), "."),
		Content:          fakeText(120),
		ShortDescription: fakeText(18),
		Author:           gofakeit.Name(),
	}
}

func fakeText(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = gofakeit.Word()
	}
	text := strings.Join(parts, " ")
	return strings.ToUpper(text[:1]) + text[1:] + "."
}
