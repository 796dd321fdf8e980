package employee

import "time"

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
	RoleAdmin    = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Name               string     `gorm:"size:150;not null" json:"name"`
	Email              string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password           string     `gorm:"size:255;not null" json:"-"`
	Phone              string     `gorm:"size:30" json:"phone,omitempty"`
	Designation        string     `gorm:"size:150" json:"designation,omitempty"`
	Department         string     `gorm:"size:150" json:"department,omitempty"`
	Role               string     `gorm:"size:30;not null;default:employee" json:"role"`
	Status             string     `gorm:"size:20;not null;default:active" json:"status"`
	ReportingManagerID *uint      `json:"reportingManagerId,omitempty"`
	DateOfBirth        *time.Time `json:"dateOfBirth,omitempty"`
	DateOfJoining      *time.Time `json:"dateOfJoining,omitempty"`
	ProfileImage       string     `gorm:"size:500" json:"profileImage,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// Option is the minimal projection used for manager pickers and mentions.
type Option struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// DashboardStats is the landing-page widget payload.
type DashboardStats struct {
	Headcount         int64 `json:"headcount"`
	UpcomingBirthdays int64 `json:"upcomingBirthdays"`
	MyPendingRequests int64 `json:"myPendingRequests"`
}
