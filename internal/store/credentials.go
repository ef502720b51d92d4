package store

import "github.com/citywatch/alert_service/internal/models"

// credential - демо-учётная запись. Пароль хранится отдельно от identity,
// поэтому в сессию он никогда не попадает.
type credential struct {
	Password string
	User     models.User
}

// Фиксированный справочник демо-учёток: по одной на каждую роль.
var demoCredentials = []credential{
	{
		Password: "password",
		User: models.User{
			ID:       "1",
			Username: "citizen",
			Email:    "citizen@example.com",
			Name:     "John Citizen",
			Role:     models.RoleCitizen,
		},
	},
	{
		Password: "password",
		User: models.User{
			ID:       "2",
			Username: "admin",
			Email:    "admin@example.com",
			Name:     "Admin User",
			Role:     models.RoleAdmin,
		},
	},
	{
		Password: "password",
		User: models.User{
			ID:       "3",
			Username: "police",
			Email:    "police@example.com",
			Name:     "Officer Smith",
			Role:     models.RolePolice,
		},
	},
	{
		Password: "password",
		User: models.User{
			ID:       "4",
			Username: "fire",
			Email:    "fire@example.com",
			Name:     "Firefighter Johnson",
			Role:     models.RoleFireDepartment,
		},
	},
	{
		Password: "password",
		User: models.User{
			ID:       "5",
			Username: "defense",
			Email:    "defense@example.com",
			Name:     "Maria Rodriguez",
			Role:     models.RoleCivilDefense,
		},
	},
}

// findCredential выполняет точное регистрозависимое сравнение пары
// (username, password) со справочником.
func findCredential(username, password string) (*models.User, bool) {
	for _, c := range demoCredentials {
		if c.User.Username == username && c.Password == password {
			user := c.User
			return &user, true
		}
	}
	return nil, false
}
