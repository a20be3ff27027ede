package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/jitterapp/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureEmitter struct {
	events []Event
}

func (c *captureEmitter) Emit(_ context.Context, event Event) error {
	c.events = append(c.events, event)
	return nil
}

type failingEmitter struct{}

func (failingEmitter) Emit(context.Context, Event) error {
	return errors.New("sink down")
}

func TestFanoutSwallowsSinkFailures(t *testing.T) {
	capture := &captureEmitter{}
	fanout := NewFanout(failingEmitter{}, capture)

	event := Event{Kind: KindRequestReceived, TargetUserID: 2, ActorUserID: 1}
	err := fanout.Emit(context.Background(), event)

	// a dead sink never surfaces to the caller and never starves the others
	assert.NoError(t, err)
	require.Len(t, capture.events, 1)
	assert.Equal(t, event, capture.events[0])
}

type captureActivityRepo struct {
	created []*models.Activity
}

func (c *captureActivityRepo) CreateActivity(activity *models.Activity) error {
	c.created = append(c.created, activity)
	return nil
}

func (c *captureActivityRepo) GetByUserID(uint, int, int) ([]models.Activity, int64, error) {
	return nil, 0, nil
}

func TestActivityEmitterPersistsFeedRow(t *testing.T) {
	repo := &captureActivityRepo{}
	emitter := NewActivityEmitter(repo)

	err := emitter.Emit(context.Background(), Event{
		Kind:         KindRequestAccepted,
		TargetUserID: 7,
		ActorUserID:  3,
		Payload:      "hello",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	row := repo.created[0]
	assert.Equal(t, models.ActivityRequestAccepted, row.Type)
	assert.EqualValues(t, 7, row.UserID)
	assert.EqualValues(t, 3, row.FromUserID)
	assert.Equal(t, "hello", row.Message)
	assert.NotEmpty(t, row.Description)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "jit_mention", KindJitMention.String())
	assert.Equal(t, "unfriended", KindUnfriended.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
