package employee

type CreateEmployeeRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
	Phone              string `json:"phone"`
	Designation        string `json:"designation"`
	Department         string `json:"department"`
	Role               string `json:"role" binding:"omitempty,oneof=employee hr admin"`
	ReportingManagerID *uint  `json:"reporting_manager_id"`
	DateOfBirth        string `json:"date_of_birth"`
	DateOfJoining      string `json:"date_of_joining"`
	ProfileImage       string `json:"profile_image"`
}

type UpdateEmployeeRequest struct {
	Name               *string `json:"name"`
	Phone              *string `json:"phone"`
	Designation        *string `json:"designation"`
	Department         *string `json:"department"`
	Role               *string `json:"role" binding:"omitempty,oneof=employee hr admin"`
	Status             *string `json:"status" binding:"omitempty,oneof=active inactive"`
	ReportingManagerID *uint   `json:"reporting_manager_id"`
	DateOfBirth        *string `json:"date_of_birth"`
	DateOfJoining      *string `json:"date_of_joining"`
	ProfileImage       *string `json:"profile_image"`
}
