package preset

import "errors"

var (
	ErrPresetNotFound = errors.New("preset: not found")
	ErrEmptyPath      = errors.New("preset: path is required")
	ErrInvalidPreset  = errors.New("preset: invalid reconciliation set")
)
