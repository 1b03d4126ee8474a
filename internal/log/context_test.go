// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextWithRunID(t *testing.T) {
	tests := []struct {
		name  string
		ctx   context.Context
		runID string
		want  string
	}{
		{name: "nil context", ctx: nil, runID: "run-1", want: "run-1"},
		{name: "background context", ctx: context.Background(), runID: "run-2", want: "run-2"},
		{name: "empty run ID", ctx: context.Background(), runID: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := ContextWithRunID(tt.ctx, tt.runID)
			assert.Equal(t, tt.want, RunIDFromContext(ctx))
		})
	}
}

func TestRunIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, RunIDFromContext(nil)) //nolint:staticcheck // nil context is part of the contract
	assert.Empty(t, RunIDFromContext(context.Background()))
}

func TestWithContext_AddsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := ContextWithRunID(context.Background(), "abc")
	l := WithContext(ctx, logger)
	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc", entry[FieldRunID])
}

func TestWithContext_NoFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	l := WithContext(context.Background(), logger)
	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, ok := entry[FieldRunID]
	assert.False(t, ok)
}

func TestFromContext_FallsBackToBase(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)

	var buf bytes.Buffer
	attached := zerolog.New(&buf).Level(zerolog.InfoLevel)
	ctx := attached.WithContext(context.Background())
	got := FromContext(ctx)
	got.Info().Msg("via ctx")
	assert.Contains(t, buf.String(), "via ctx")
}

func TestConfigure_ServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "svc", Version: "v1"})
	t.Cleanup(func() { Configure(Config{}) })

	l := WithComponent("cache")
	l.Debug().Str(FieldEvent, "test").Msg("msg")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "svc", entry[FieldService])
	assert.Equal(t, "v1", entry[FieldVersion])
	assert.Equal(t, "cache", entry[FieldComponent])
	assert.Equal(t, "test", entry[FieldEvent])
}
