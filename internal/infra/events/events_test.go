package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalaconnect-backend/internal/domain/crafts"
)

func TestCraftStatusChangedJSONShape(t *testing.T) {
	evt := CraftStatusChanged{
		EventID:    "e-1",
		EventType:  TypeCraftStatusChanged,
		CraftID:    "c-1",
		From:       crafts.StatusProcessing,
		To:         crafts.StatusCompleted,
		OccurredAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "craft_status_changed", decoded["event_type"])
	assert.Equal(t, "c-1", decoded["craft_id"])
	assert.Equal(t, "processing", decoded["from"])
	assert.Equal(t, "completed", decoded["to"])
	assert.Contains(t, decoded, "occurred_at")
}

func TestSplitBrokers(t *testing.T) {
	assert.Nil(t, splitBrokers(""))
	assert.Equal(t, []string{"a:9092"}, splitBrokers("a:9092"))
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers(" a:9092 , b:9092 ,"))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	require.NoError(t, p.CraftStatusChanged(context.Background(), "c-1", crafts.StatusUploading, crafts.StatusProcessing))
}
