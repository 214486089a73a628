package model

// Company is the read-only summary of a company attached to a JobDetail.
type Company struct {
	Handle        string  `json:"handle"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	EmployeeCount *int    `json:"employeeCount"`
	LogoURL       *string `json:"logoUrl"`
}
