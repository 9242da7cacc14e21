package domain

type SchoolInfo struct {
	Name           string      `json:"name"`
	Principal      string      `json:"principal"`
	PrincipalEmail string      `json:"principal_email"`
	Address        string      `json:"address"`
	City           string      `json:"city"`
	State          string      `json:"state"`
	ZipCode        string      `json:"zip_code"`
	PhoneNumber    string      `json:"phone_number"`
	Website        string      `json:"website"`
	Staff          []StaffInfo `json:"staff"`
}

type StaffInfo struct {
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
	Email    string `json:"email"`
}
