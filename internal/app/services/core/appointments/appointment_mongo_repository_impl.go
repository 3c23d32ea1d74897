package appointments

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

// EnsureIndexes creates the unique index that allows a single active
// appointment per doctor, date and time.
func (repo *AppointmentMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "doctor", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().
				SetName(constvars.MongoIndexAppointmentActiveSlot).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		},
		{
			Keys:    bson.D{{Key: "doctor", Value: 1}},
			Options: options.Index().SetName(constvars.MongoIndexAppointmentDoctor),
		},
		{
			Keys:    bson.D{{Key: "patientEmail", Value: 1}},
			Options: options.Index().SetName(constvars.MongoIndexAppointmentEmail),
		},
	}

	for _, index := range indexes {
		_, err := repo.Collection.Indexes().CreateOne(ctx, index)
		if err != nil {
			return exceptions.ErrMongoDBCreateIndex(err, *index.Options.Name)
		}
	}
	return nil
}

func (repo *AppointmentMongoRepository) FindAll(ctx context.Context, filter *requests.AppointmentFilter) ([]models.Appointment, error) {
	query := bson.M{}
	if filter != nil {
		if filter.PatientEmail != "" {
			query["patientEmail"] = filter.PatientEmail
		}
		if filter.Status != "" {
			query["status"] = filter.Status
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	return repo.find(ctx, query, findOptions)
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	return repo.findOne(ctx, bson.M{"_id": objectID})
}

func (repo *AppointmentMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	return repo.find(ctx, bson.M{"doctor": objectID}, findOptions)
}

func (repo *AppointmentMongoRepository) FindActiveBySlot(ctx context.Context, slot models.Slot, excludeID string) (*models.Appointment, error) {
	doctorObjectID, err := primitive.ObjectIDFromHex(slot.DoctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	query := bson.M{
		"doctor": doctorObjectID,
		"date":   slot.Date,
		"time":   slot.Time,
		"active": true,
	}
	if excludeID != "" {
		excludeObjectID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, exceptions.ErrMongoDBNotObjectID(err)
		}
		query["_id"] = bson.M{"$ne": excludeObjectID}
	}
	return repo.findOne(ctx, query)
}

// FindConfirmedUpTo returns one page of confirmed appointments dated on or
// before date, ordered by id and starting after afterID when it is set.
func (repo *AppointmentMongoRepository) FindConfirmedUpTo(ctx context.Context, date, afterID string, limit int64) ([]models.Appointment, error) {
	query := bson.M{
		"status": constvars.AppointmentStatusConfirmed,
		"date":   bson.M{"$lte": date},
	}
	if afterID != "" {
		afterObjectID, err := primitive.ObjectIDFromHex(afterID)
		if err != nil {
			return nil, exceptions.ErrMongoDBNotObjectID(err)
		}
		query["_id"] = bson.M{"$gt": afterObjectID}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	return repo.find(ctx, query, findOptions)
}

func (repo *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	appointment.SetCreatedAtUpdatedAt()
	result, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrAppointmentSlotAlreadyBooked(err, appointment.Slot().String())
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", exceptions.ErrMongoDBNotObjectID(nil)
	}
	appointment.ID = objectID
	return objectID.Hex(), nil
}

func (repo *AppointmentMongoRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	appointment.SetUpdatedAt()
	_, err := repo.Collection.ReplaceOne(ctx, bson.M{"_id": appointment.ID}, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrAppointmentSlotAlreadyBooked(err, appointment.Slot().String())
		}
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) MarkCompleted(ctx context.Context, appointmentIDs []string) (int64, error) {
	if len(appointmentIDs) == 0 {
		return 0, nil
	}

	objectIDs := make([]primitive.ObjectID, 0, len(appointmentIDs))
	for _, appointmentID := range appointmentIDs {
		objectID, err := primitive.ObjectIDFromHex(appointmentID)
		if err != nil {
			return 0, exceptions.ErrMongoDBNotObjectID(err)
		}
		objectIDs = append(objectIDs, objectID)
	}

	filter := bson.M{
		"_id":    bson.M{"$in": objectIDs},
		"status": constvars.AppointmentStatusConfirmed,
	}
	update := bson.M{"$set": bson.M{
		"status":    constvars.AppointmentStatusCompleted,
		"active":    false,
		"updatedAt": time.Now(),
	}}

	result, err := repo.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount, nil
}

func (repo *AppointmentMongoRepository) DeleteAppointment(ctx context.Context, appointmentID string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err = repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) find(ctx context.Context, query bson.M, findOptions *options.FindOptions) ([]models.Appointment, error) {
	cursor, err := repo.Collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}

	appointments := make([]models.Appointment, 0)
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (repo *AppointmentMongoRepository) findOne(ctx context.Context, query bson.M) (*models.Appointment, error) {
	var appointment models.Appointment
	err := repo.Collection.FindOne(ctx, query).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}
