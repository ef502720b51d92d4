package store

import (
	"time"

	"github.com/citywatch/alert_service/internal/models"
)

// seedAlerts возвращает стартовый демо-набор сигналов. Используется, когда
// в хранилище ещё нет записи alert-storage.
func seedAlerts() []models.Alert {
	return []models.Alert{
		{
			ID:          "1",
			Title:       "Traffic accident on Main Street",
			Description: "Two cars collided at the intersection of Main Street and 5th Avenue. No serious injuries reported but traffic is blocked.",
			Category:    models.CategoryPolice,
			Status:      models.StatusInProgress,
			CreatedAt:   time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC),
			CreatedBy:   "1",
			Location: &models.Location{
				Latitude:  40.7128,
				Longitude: -74.0060,
				Address:   "Main St & 5th Ave",
			},
		},
		{
			ID:          "2",
			Title:       "Fire in apartment building",
			Description: "Small fire reported in an apartment building on Oak Street. Fire department has been dispatched.",
			Category:    models.CategoryFireDepartment,
			Status:      models.StatusPending,
			CreatedAt:   time.Date(2023, 6, 15, 11, 45, 0, 0, time.UTC),
			CreatedBy:   "1",
			Location: &models.Location{
				Latitude:  40.7138,
				Longitude: -74.0070,
				Address:   "123 Oak St",
			},
		},
		{
			ID:          "3",
			Title:       "Fallen tree blocking road",
			Description: "Large tree has fallen across Pine Avenue after the storm. Road is completely blocked.",
			Category:    models.CategoryCivilDefense,
			Status:      models.StatusPending,
			CreatedAt:   time.Date(2023, 6, 15, 9, 15, 0, 0, time.UTC),
			CreatedBy:   "1",
			Location: &models.Location{
				Latitude:  40.7148,
				Longitude: -74.0080,
				Address:   "Pine Ave",
			},
		},
		{
			ID:          "4",
			Title:       "Water main break",
			Description: "Water main break on Elm Street causing flooding. Several homes affected.",
			Category:    models.CategoryCivilDefense,
			Status:      models.StatusResolved,
			CreatedAt:   time.Date(2023, 6, 14, 14, 20, 0, 0, time.UTC),
			CreatedBy:   "1",
			Location: &models.Location{
				Latitude:  40.7158,
				Longitude: -74.0090,
				Address:   "456 Elm St",
			},
		},
		{
			ID:          "5",
			Title:       "Suspicious activity",
			Description: "Suspicious individuals reported near the community center. Police requested.",
			Category:    models.CategoryPolice,
			Status:      models.StatusResolved,
			CreatedAt:   time.Date(2023, 6, 14, 18, 30, 0, 0, time.UTC),
			CreatedBy:   "1",
		},
	}
}

// seedResponses возвращает стартовый демо-набор откликов
func seedResponses() []models.Response {
	return []models.Response{
		{
			ID:            "1",
			AlertID:       "1",
			Text:          "Police units dispatched to the scene.",
			CreatedAt:     time.Date(2023, 6, 15, 10, 35, 0, 0, time.UTC),
			CreatedBy:     "3",
			CreatedByName: "Officer Smith",
			CreatedByRole: models.RolePolice,
		},
		{
			ID:            "2",
			AlertID:       "1",
			Text:          "Traffic being diverted. Estimated clearance time: 30 minutes.",
			CreatedAt:     time.Date(2023, 6, 15, 10, 45, 0, 0, time.UTC),
			CreatedBy:     "3",
			CreatedByName: "Officer Smith",
			CreatedByRole: models.RolePolice,
		},
		{
			ID:            "3",
			AlertID:       "2",
			Text:          "Fire units en route. ETA 5 minutes.",
			CreatedAt:     time.Date(2023, 6, 15, 11, 50, 0, 0, time.UTC),
			CreatedBy:     "4",
			CreatedByName: "Firefighter Johnson",
			CreatedByRole: models.RoleFireDepartment,
		},
		{
			ID:            "4",
			AlertID:       "4",
			Text:          "Repair crew has fixed the water main. Service restored to all homes.",
			CreatedAt:     time.Date(2023, 6, 14, 16, 45, 0, 0, time.UTC),
			CreatedBy:     "5",
			CreatedByName: "Maria Rodriguez",
			CreatedByRole: models.RoleCivilDefense,
		},
		{
			ID:            "5",
			AlertID:       "5",
			Text:          "Officers investigated the area. No suspicious activity found. Case closed.",
			CreatedAt:     time.Date(2023, 6, 14, 19, 15, 0, 0, time.UTC),
			CreatedBy:     "3",
			CreatedByName: "Officer Smith",
			CreatedByRole: models.RolePolice,
		},
	}
}
