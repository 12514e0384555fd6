package settings

import "errors"

var (
	ErrSettingNotFound = errors.New("settings storage: setting not found")
	ErrBuildQuery      = errors.New("settings storage: failed to build query")
	ErrExecQuery       = errors.New("settings storage: failed to execute query")
	ErrScanRow         = errors.New("settings storage: failed to scan row")
)
