package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Username  string    `gorm:"size:100;unique;not null" json:"username"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	IsAdmin   bool      `gorm:"default:false" json:"is_admin"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"last_login"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"last_seen"`
}

func (User) TableName() string {
	return "users"
}
