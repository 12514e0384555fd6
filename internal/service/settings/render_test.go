package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
)

func TestRenderTemplate(t *testing.T) {
	tpl := domain.NotificationTemplate{
		Subject: "Запись подтверждена: {service_name}",
		Body:    "Здравствуйте, {customer_name}! Ждем вас {date} в {start_time}.",
	}

	rendered := RenderTemplate(tpl, map[string]string{
		"customer_name": "Петр",
		"service_name":  "Консультация",
		"date":          "2026-03-16",
		"start_time":    "09:30",
	})

	assert.Equal(t, "Запись подтверждена: Консультация", rendered.Subject)
	assert.Equal(t, "Здравствуйте, Петр! Ждем вас 2026-03-16 в 09:30.", rendered.Body)
}

func TestRenderTemplate_UnknownPlaceholderKept(t *testing.T) {
	tpl := domain.NotificationTemplate{Body: "Привет, {customer_name}! Код: {code}"}

	rendered := RenderTemplate(tpl, map[string]string{"customer_name": "Анна"})

	assert.Equal(t, "Привет, Анна! Код: {code}", rendered.Body)
}

func TestRenderTemplate_NoData(t *testing.T) {
	tpl := domain.NotificationTemplate{Subject: "Без плейсхолдеров", Body: "Текст {как есть}"}

	rendered := RenderTemplate(tpl, nil)

	assert.Equal(t, tpl, rendered)
}

func TestNotificationSettings_SetAndGetTemplate(t *testing.T) {
	settings := &domain.NotificationSettings{Enabled: true}
	tpl := domain.NotificationTemplate{Subject: "s", Body: "b"}

	settings.SetTemplate(domain.ChannelEmail, domain.RecipientCustomer, domain.EventApproved, tpl)

	got, ok := settings.Template(domain.ChannelEmail, domain.RecipientCustomer, domain.EventApproved)
	assert.True(t, ok)
	assert.Equal(t, tpl, got)

	_, ok = settings.Template(domain.ChannelSMS, domain.RecipientCustomer, domain.EventApproved)
	assert.False(t, ok)
}
