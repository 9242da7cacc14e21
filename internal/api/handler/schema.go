package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type gradesQuery struct {
	ReportPeriod *int `validate:"omitempty,min=0"`
}

type documentQuery struct {
	GU string `query:"gu" validate:"required,max=64,docgu"`
}

type registerDistrictRequest struct {
	ID    string `json:"id"    validate:"required,max=64"`
	Name  string `json:"name"  validate:"max=128"`
	Host  string `json:"host"  validate:"required,fqdn"`
	State string `json:"state" validate:"omitempty,len=2"`
}

// --- Response types ---

type districtListResponse struct {
	Districts []districtResponse `json:"districts"`
}

type districtResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Host  string `json:"host"`
	State string `json:"state,omitempty"`
}
