package users

import "time"

// Role is fixed at registration; no route changes it afterwards.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"size:100;not null"`
	LastName     string `gorm:"size:100;not null"`
	Username     string `gorm:"size:50;unique;not null"`
	Email        string `gorm:"size:100;unique;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Address      string `gorm:"not null"`
	City         string `gorm:"size:100;not null"`
	State        string `gorm:"size:100;not null"`
	Pincode      string `gorm:"size:20;not null"`
	UserType     Role   `gorm:"size:10;not null"`
	ProfilePic   string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
