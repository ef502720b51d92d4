package v1

import (
	"sort"

	"github.com/citywatch/alert_service/internal/models"
	"github.com/citywatch/alert_service/internal/store"
)

// DTOToCreateAlertInput преобразует DTO создания сигнала во входные данные стора
func DTOToCreateAlertInput(dto CreateAlertRequest) store.CreateAlertInput {
	input := store.CreateAlertInput{
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
		Attachments: dto.Attachments,
	}
	if dto.Location != nil {
		input.Location = &models.Location{
			Latitude:  dto.Location.Latitude,
			Longitude: dto.Location.Longitude,
			Address:   dto.Location.Address,
		}
	}
	return input
}

// ModelToUserResponse преобразует identity сессии в DTO
func ModelToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		Avatar:   user.Avatar,
	}
}

// SnapshotToSessionResponse преобразует снимок сессии в DTO
func SnapshotToSessionResponse(snap store.SessionSnapshot) SessionResponse {
	return SessionResponse{
		User:            ModelToUserResponse(snap.User),
		IsAuthenticated: snap.IsAuthenticated,
		Error:           snap.Error,
	}
}

// ModelToAlertResponse преобразует доменную модель сигнала в DTO
func ModelToAlertResponse(model *models.Alert) *AlertResponse {
	resp := &AlertResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Category:    model.Category,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
		CreatedBy:   model.CreatedBy,
		Attachments: model.Attachments,
	}
	if model.Location != nil {
		resp.Location = &LocationPayload{
			Latitude:  model.Location.Latitude,
			Longitude: model.Location.Longitude,
			Address:   model.Location.Address,
		}
	}
	return resp
}

// ModelsToAlertResponses преобразует слайс сигналов в слайс DTO,
// отсортированный по времени создания, новые первыми
func ModelsToAlertResponses(alerts []models.Alert) []*AlertResponse {
	sorted := make([]models.Alert, len(alerts))
	copy(sorted, alerts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	responses := make([]*AlertResponse, len(sorted))
	for i := range sorted {
		responses[i] = ModelToAlertResponse(&sorted[i])
	}
	return responses
}

// ModelToResponseItem преобразует доменную модель отклика в DTO
func ModelToResponseItem(model *models.Response) *ResponseItem {
	return &ResponseItem{
		ID:            model.ID,
		AlertID:       model.AlertID,
		Text:          model.Text,
		CreatedAt:     model.CreatedAt,
		CreatedBy:     model.CreatedBy,
		CreatedByName: model.CreatedByName,
		CreatedByRole: model.CreatedByRole,
	}
}

// ResponsesForAlert отбирает отклики указанного сигнала, отсортированные
// по времени создания, старые первыми
func ResponsesForAlert(responses []models.Response, alertID string) []*ResponseItem {
	filtered := make([]models.Response, 0)
	for _, r := range responses {
		if r.AlertID == alertID {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
	})

	items := make([]*ResponseItem, len(filtered))
	for i := range filtered {
		items[i] = ModelToResponseItem(&filtered[i])
	}
	return items
}
