package settings

import (
	"strings"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
)

// RenderTemplate подставляет значения плейсхолдеров вида {customer_name}
// в тему и тело шаблона. Плейсхолдеры без значения остаются как есть.
func RenderTemplate(tpl domain.NotificationTemplate, data map[string]string) domain.NotificationTemplate {
	return domain.NotificationTemplate{
		Subject: renderPlaceholders(tpl.Subject, data),
		Body:    renderPlaceholders(tpl.Body, data),
	}
}

func renderPlaceholders(s string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(s, "{") {
		return s
	}

	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
