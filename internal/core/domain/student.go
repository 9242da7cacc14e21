package domain

type StudentInfo struct {
	Name              string    `json:"name"`
	ID                string    `json:"id"`
	Gender            string    `json:"gender"`
	Grade             string    `json:"grade"`
	Address           string    `json:"address"`
	BirthDate         string    `json:"birth_date"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phone_number"`
	EmergencyContacts []Contact `json:"emergency_contacts"`
	Physician         Doctor    `json:"physician"`
	Dentist           Doctor    `json:"dentist"`
	School            string    `json:"school"`
}

type Contact struct {
	Name         string   `json:"name"`
	Relation     string   `json:"relation"`
	PhoneNumbers []string `json:"phone_numbers"`
}

type Doctor struct {
	Name        string `json:"name"`
	Workplace   string `json:"workplace"`
	PhoneNumber string `json:"phone_number"`
}
