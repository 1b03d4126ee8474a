// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService   = "service"
	FieldVersion   = "version"
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Guide fields
	FieldChannelID = "channel_id"
	FieldChannel   = "channel"
	FieldDay       = "day"
	FieldRef       = "ref"
	FieldStage     = "stage"

	// Cache / transport fields
	FieldKey    = "key"
	FieldURL    = "url"
	FieldStatus = "status"
	FieldBytes  = "bytes"
	FieldPath   = "path"
)
