package responses

import "time"

type Doctor struct {
	ID           string            `json:"_id"`
	Name         string            `json:"name"`
	Speciality   string            `json:"speciality"`
	Description  string            `json:"description"`
	ImageURL     string            `json:"imageUrl,omitempty"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Address      string            `json:"address,omitempty"`
	Experience   *DoctorExperience `json:"experience,omitempty"`
	WorkingHours []WorkingHour     `json:"workingHours"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type DoctorExperience struct {
	Years           int      `json:"years"`
	PatientsServed  int      `json:"patientsServed"`
	Specializations []string `json:"specializations"`
}

type WorkingHour struct {
	Day         string `json:"day"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// DoctorSummary is the doctor shape embedded in appointment responses.
type DoctorSummary struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
	ImageURL   string `json:"imageUrl,omitempty"`
}
