package models

import "github.com/leerunique7-spec/Medsol-appointment/internal/domain"

// SettingsResponse ответ с настройками расписания
type SettingsResponse struct {
	BusySlotMode string `json:"busySlotMode"`
}

// UpdateSettingsRequest запрос на обновление настроек расписания
type UpdateSettingsRequest struct {
	BusySlotMode string `json:"busySlotMode" validate:"required,oneof=by_location by_employee"`
}

// NotificationTemplateRequest один шаблон уведомления
type NotificationTemplateRequest struct {
	Channel   string `json:"channel" validate:"required,oneof=email sms whatsapp"`
	Recipient string `json:"recipient" validate:"required,oneof=customer employee admin"`
	Event     string `json:"event" validate:"required,oneof=pending approved declined canceled reminder follow_up"`
	Subject   string `json:"subject,omitempty" validate:"omitempty,max=500"`
	Body      string `json:"body" validate:"required"`
}

// UpdateNotificationsRequest запрос на обновление настроек уведомлений
type UpdateNotificationsRequest struct {
	Enabled   bool                          `json:"enabled"`
	Templates []NotificationTemplateRequest `json:"templates" validate:"dive"`
}

// ToDomain конвертирует request в доменные настройки уведомлений
func (r *UpdateNotificationsRequest) ToDomain() *domain.NotificationSettings {
	settings := &domain.NotificationSettings{Enabled: r.Enabled}
	for _, tpl := range r.Templates {
		settings.SetTemplate(
			domain.NotificationChannel(tpl.Channel),
			domain.NotificationRecipient(tpl.Recipient),
			domain.NotificationEvent(tpl.Event),
			domain.NotificationTemplate{Subject: tpl.Subject, Body: tpl.Body},
		)
	}
	return settings
}
