package check

import (
	"time"

	"github.com/google/uuid"
)

// DayKeyLayout is the calendar-date key scoping one record per user per day.
// It follows the server clock; there is no timezone normalization.
const DayKeyLayout = "2006-01-02"

type Check struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_checks_user_date"`
	CheckDate   string     `gorm:"column:check_date;type:varchar(10);not null;uniqueIndex:uq_checks_user_date"`
	CheckIn     time.Time  `gorm:"column:check_in;type:timestamptz;not null"`
	CheckOut    *time.Time `gorm:"column:check_out;type:timestamptz"`
	WorkedHours *float64   `gorm:"column:worked_hours"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Check) TableName() string {
	return "checks"
}
