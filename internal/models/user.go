package models

// Role определяет роль пользователя в системе
type Role string

const (
	RoleCitizen        Role = "citizen"
	RoleAdmin          Role = "admin"
	RolePolice         Role = "police"
	RoleFireDepartment Role = "fire_department"
	RoleCivilDefense   Role = "civil_defense"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}
