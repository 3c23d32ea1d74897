package requests

type DoctorExperience struct {
	Years           int      `json:"years" validate:"gte=0"`
	PatientsServed  int      `json:"patientsServed" validate:"gte=0"`
	Specializations []string `json:"specializations"`
}

type WorkingHour struct {
	Day         string `json:"day" validate:"required,working_day"`
	StartTime   string `json:"startTime" validate:"required,clock_time"`
	EndTime     string `json:"endTime" validate:"required,clock_time"`
	IsAvailable *bool  `json:"isAvailable"`
}

type CreateDoctor struct {
	Name         string            `json:"name" validate:"required"`
	Speciality   string            `json:"speciality" validate:"required"`
	Description  string            `json:"description" validate:"required"`
	Email        string            `json:"email" validate:"omitempty,email"`
	Phone        string            `json:"phone" validate:"omitempty,phone_number"`
	Address      string            `json:"address"`
	Experience   *DoctorExperience `json:"experience" validate:"omitempty"`
	WorkingHours []WorkingHour     `json:"workingHours" validate:"omitempty,dive"`
	Image        *ImageUpload      `json:"-" validate:"-"`
}

type UpdateDoctor struct {
	Name         *string           `json:"name" validate:"omitempty,min=1"`
	Speciality   *string           `json:"speciality" validate:"omitempty,min=1"`
	Description  *string           `json:"description" validate:"omitempty,min=1"`
	Email        *string           `json:"email" validate:"omitempty,email"`
	Phone        *string           `json:"phone" validate:"omitempty,phone_number"`
	Address      *string           `json:"address"`
	Experience   *DoctorExperience `json:"experience" validate:"omitempty"`
	WorkingHours []WorkingHour     `json:"workingHours" validate:"omitempty,dive"`
	Image        *ImageUpload      `json:"-" validate:"-"`
}

type DoctorFilter struct {
	Limit int `json:"limit" validate:"gte=0"`
}
