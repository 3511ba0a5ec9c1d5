package models

import (
	"time"

	"gorm.io/gorm"
)

// Role names form a closed set; every authorization decision in the
// service layer reduces to one of these three.
const (
	RoleUser   = "User"
	RoleDoctor = "Doctor"
	RoleAdmin  = "Admin"
)

// Role represents a user role
type Role struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"size:50;not null;unique;index;column:name" json:"name"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// SeedRoles inserts the initial roles into the database
func SeedRoles(db *gorm.DB) error {
	initialRoles := []Role{
		{Name: RoleAdmin, Description: "Full access to the system"},
		{Name: RoleDoctor, Description: "Manages own schedule, appointments and records"},
		{Name: RoleUser, Description: "Books time slots and views own bookings"},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, role := range initialRoles {
			if err := tx.FirstOrCreate(&role, Role{Name: role.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// User represents an account in the system; patients book under their user ID.
type User struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	FullName  string    `gorm:"size:100;not null;column:full_name" json:"full_name"`
	Email     string    `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Phone     string    `gorm:"size:20;column:phone" json:"phone"`
	RoleID    int64     `gorm:"index;not null;column:role_id" json:"role_id"`
	Role      Role      `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Specialty is a medical department doctors belong to.
type Specialty struct {
	ID          string `gorm:"primaryKey;column:id" json:"id"`
	Name        string `gorm:"size:100;unique;not null;column:name" json:"name"`
	Description string `gorm:"type:text;column:description" json:"description"`
}

func (Specialty) TableName() string {
	return "specialty"
}

// Doctor is the clinical profile backing a user account with the Doctor role.
type Doctor struct {
	ID          string     `gorm:"primaryKey;column:id" json:"id"`
	UserID      string     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	FirstName   string     `gorm:"column:first_name;not null" json:"first_name"`
	LastName    string     `gorm:"column:last_name;not null;index" json:"last_name"`
	SpecialtyID string     `gorm:"column:specialty_id;index" json:"specialty_id"`
	User        User       `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Specialty   Specialty  `gorm:"foreignKey:SpecialtyID;references:ID" json:"specialty"`
	TimeSlots   []TimeSlot `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Doctor) TableName() string {
	return "doctor"
}

// Service is a billable consultation type; its price is the default
// invoice total for appointments booked against it.
type Service struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"size:150;not null;column:name" json:"name"`
	Price       float64   `gorm:"column:price;not null" json:"price"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	SpecialtyID string    `gorm:"column:specialty_id;index" json:"specialty_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Service) TableName() string {
	return "service"
}

// Notification is an in-app message raised for a user, e.g. when an
// invoice is issued for one of a doctor's appointments.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID    string    `gorm:"column:user_id;not null;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null;column:title" json:"title"`
	Content   string    `gorm:"type:text;column:content" json:"content"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notification"
}
