package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvdesk/pkg/cv"
)

func TestRoutingKeyAndBody(t *testing.T) {
	owner := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	ev := cv.StatusEvent{
		CVID:    uuid.New(),
		OwnerID: owner,
		Status:  cv.StatusFailed,
		Reason:  "bad pdf",
		At:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	assert.Equal(t, "cv.11111111-1111-1111-1111-111111111111", RoutingKey(ev))

	body, err := Encode(ev)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Equal(t, "failed", m["status"])
	assert.Equal(t, "bad pdf", m["reason"])
	assert.Equal(t, owner.String(), m["ownerId"])
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), cv.StatusEvent{Status: cv.StatusPending}))
}
