package models

import (
	"doctor-appointment-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Doctor struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Speciality   string             `json:"speciality" bson:"speciality"`
	Description  string             `json:"description" bson:"description"`
	ImageURL     string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Email        string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address      string             `json:"address,omitempty" bson:"address,omitempty"`
	Experience   *DoctorExperience  `json:"experience,omitempty" bson:"experience,omitempty"`
	WorkingHours []WorkingHour      `json:"workingHours" bson:"workingHours"`
	TimeModel    `bson:",inline"`
}

type DoctorExperience struct {
	Years           int      `json:"years" bson:"years"`
	PatientsServed  int      `json:"patientsServed" bson:"patientsServed"`
	Specializations []string `json:"specializations" bson:"specializations"`
}

type WorkingHour struct {
	Day         string `json:"day" bson:"day"`
	StartTime   string `json:"startTime" bson:"startTime"`
	EndTime     string `json:"endTime" bson:"endTime"`
	IsAvailable bool   `json:"isAvailable" bson:"isAvailable"`
}

func (d Doctor) ConvertIntoResponse() responses.Doctor {
	response := responses.Doctor{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Speciality:   d.Speciality,
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		Email:        d.Email,
		Phone:        d.Phone,
		Address:      d.Address,
		WorkingHours: make([]responses.WorkingHour, len(d.WorkingHours)),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Experience != nil {
		response.Experience = &responses.DoctorExperience{
			Years:           d.Experience.Years,
			PatientsServed:  d.Experience.PatientsServed,
			Specializations: d.Experience.Specializations,
		}
	}
	for i, workingHour := range d.WorkingHours {
		response.WorkingHours[i] = responses.WorkingHour(workingHour)
	}
	return response
}

func (d Doctor) ConvertIntoSummary() *responses.DoctorSummary {
	return &responses.DoctorSummary{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Speciality: d.Speciality,
		ImageURL:   d.ImageURL,
	}
}
