package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leerunique7-spec/Medsol-appointment/internal/domain"
	settingsRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/settings"
	"github.com/leerunique7-spec/Medsol-appointment/internal/service/settings/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeSettingsRepo key-value хранилище в памяти
type fakeSettingsRepo struct {
	values map[string]json.RawMessage
	getErr error
}

func (f *fakeSettingsRepo) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	value, ok := f.values[key]
	if !ok {
		return nil, settingsRepo.ErrSettingNotFound
	}
	return value, nil
}

func (f *fakeSettingsRepo) Set(ctx context.Context, key string, value json.RawMessage) error {
	if f.values == nil {
		f.values = make(map[string]json.RawMessage)
	}
	f.values[key] = value
	return nil
}

func TestBusySlotMode_DefaultWhenMissing(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, nopLogger{})

	mode, err := svc.BusySlotMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BusySlotsByLocation, mode)
}

func TestBusySlotMode_DefaultWhenMalformed(t *testing.T) {
	repo := &fakeSettingsRepo{values: map[string]json.RawMessage{
		"busy_slots": json.RawMessage(`{"not":"a string"}`),
	}}
	svc := NewService(repo, nopLogger{})

	mode, err := svc.BusySlotMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBusySlotMode, mode)
}

func TestBusySlotMode_DefaultWhenUnknownValue(t *testing.T) {
	repo := &fakeSettingsRepo{values: map[string]json.RawMessage{
		"busy_slots": json.RawMessage(`"by_planet"`),
	}}
	svc := NewService(repo, nopLogger{})

	mode, err := svc.BusySlotMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBusySlotMode, mode)
}

func TestBusySlotMode_RepositoryError(t *testing.T) {
	repo := &fakeSettingsRepo{getErr: errors.New("connection refused")}
	svc := NewService(repo, nopLogger{})

	_, err := svc.BusySlotMode(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateSettings_RoundTrip(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		BusySlotMode: "by_employee",
	})
	require.NoError(t, err)
	assert.Equal(t, "by_employee", resp.BusySlotMode)

	mode, err := svc.BusySlotMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BusySlotsByEmployee, mode)
}

func TestUpdateSettings_RejectsUnknownMode(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, nopLogger{})

	_, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		BusySlotMode: "by_planet",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetNotifications_EmptyWhenUnset(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, nopLogger{})

	settings, err := svc.GetNotifications(context.Background())
	require.NoError(t, err)
	assert.False(t, settings.Enabled)
	assert.Empty(t, settings.Templates)
}

func TestUpdateNotifications_RoundTrip(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdateNotifications(context.Background(), &models.UpdateNotificationsRequest{
		Enabled: true,
		Templates: []models.NotificationTemplateRequest{
			{
				Channel:   "email",
				Recipient: "customer",
				Event:     "approved",
				Subject:   "Запись подтверждена",
				Body:      "Ждем вас {date} в {start_time}",
			},
		},
	})
	require.NoError(t, err)

	stored, err := svc.GetNotifications(context.Background())
	require.NoError(t, err)
	assert.True(t, stored.Enabled)

	tpl, ok := stored.Template(domain.ChannelEmail, domain.RecipientCustomer, domain.EventApproved)
	require.True(t, ok)
	assert.Equal(t, "Запись подтверждена", tpl.Subject)
}

func TestUpdateNotifications_RejectsUnknownChannel(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{}, nopLogger{})

	_, err := svc.UpdateNotifications(context.Background(), &models.UpdateNotificationsRequest{
		Enabled: true,
		Templates: []models.NotificationTemplateRequest{
			{Channel: "pigeon", Recipient: "customer", Event: "approved", Body: "x"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
