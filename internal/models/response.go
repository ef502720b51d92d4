package models

import "time"

// Response - сообщение, прикреплённое к сигналу. Имя и роль автора
// денормализуются на момент публикации и позже не обновляются.
type Response struct {
	ID            string    `json:"id"`
	AlertID       string    `json:"alertId"`
	Text          string    `json:"text"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	CreatedByName string    `json:"createdByName"`
	CreatedByRole Role      `json:"createdByRole"`
}
