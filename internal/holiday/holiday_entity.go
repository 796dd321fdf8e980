package holiday

import "time"

type Holiday struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	HolidayDate time.Time `gorm:"column:holiday_date;not null" json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Holiday) TableName() string {
	return "holidays"
}
