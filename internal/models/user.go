package model

import (
	"time"

	"field-service.com/field-service/internal/constants"
)

type User struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	Name      string             `gorm:"not null" json:"name"`
	Role      constants.UserRole `gorm:"type:varchar(20);not null;default:worker" json:"role"`
	CreatedAt time.Time          `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
