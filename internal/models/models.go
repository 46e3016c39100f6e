package models

// Role id 1 is the administrative privilege level. Registration assigns
// the standard role unless the request names another one.
const (
	AdminRoleID   uint = 1
	DefaultRoleID uint = 2
)

const (
	StatusActive  = "active"
	StatusOffline = "offline"
)

type Role struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"unique;not null"          json:"name"`
	Users []User `gorm:"foreignKey:RoleID"        json:"-"`
}

type User struct {
	ID           uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string   `gorm:"unique;not null"          json:"username"`
	Email        string   `gorm:"unique;not null"          json:"email"`
	PasswordHash string   `gorm:"not null"                 json:"-"`
	Description  string   `json:"description"`
	ImageURL     string   `json:"imageUrl"`
	Status       string   `gorm:"not null;default:active"  json:"status"`
	RoleID       uint     `gorm:"not null;default:2"       json:"role_id"`
	Role         Role     `json:"-"`
	Courses      []Course `gorm:"foreignKey:UserID"        json:"-"`
}

type Course struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseTitle string  `gorm:"not null"                 json:"course_title"`
	UserID      uint    `gorm:"index;not null"           json:"user_id"`
	Description string  `gorm:"not null"                 json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	ImageURL    string  `json:"imageUrl"`
}
