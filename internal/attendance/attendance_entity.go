package attendance

import "time"

type Record struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;uniqueIndex:uq_attendance_user_date" json:"userId"`
	AttendanceDate time.Time  `gorm:"not null;uniqueIndex:uq_attendance_user_date" json:"attendanceDate"`
	CheckIn        *time.Time `json:"checkIn,omitempty"`
	CheckOut       *time.Time `json:"checkOut,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (Record) TableName() string {
	return "attendance"
}

// ExportRow is one line of the HR monthly export, with the employee name
// already joined.
type ExportRow struct {
	EmployeeName   string
	EmployeeEmail  string
	AttendanceDate time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
}
