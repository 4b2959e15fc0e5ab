package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/safety_heatmap/internal/events"
	"github.com/shenikar/safety_heatmap/internal/events/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestNewEvent(t *testing.T) {
	at := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	event, err := events.NewEvent(events.CellUpdated, map[string]any{"geohash": "6gyf4bf", "score": 2.5}, at)

	require.NoError(t, err)
	assert.Equal(t, events.CellUpdated, event.Name)
	assert.Equal(t, at, event.Timestamp)
	assert.JSONEq(t, `{"geohash":"6gyf4bf","score":2.5}`, string(event.Payload))
}

func TestNewEvent_UnmarshalablePayload(t *testing.T) {
	_, err := events.NewEvent(events.CellUpdated, make(chan int), time.Now())
	assert.Error(t, err)
}

func TestFanout_OneBusFailing(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockPublisher(ctrl)
	second := mocks.NewMockPublisher(ctrl)
	event := events.Event{Name: events.IncidentCreated, Payload: json.RawMessage(`{}`)}

	// Ожидания: вторая шина получает событие, несмотря на ошибку первой
	first.EXPECT().Publish(gomock.Any(), event).Return(errors.New("nats down"))
	second.EXPECT().Publish(gomock.Any(), event).Return(nil)

	err := events.NewFanout(newLogger(), first, second).Publish(context.Background(), event)

	assert.NoError(t, err)
}

func TestFanout_AllBusesFailing(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockPublisher(ctrl)
	second := mocks.NewMockPublisher(ctrl)
	event := events.Event{Name: events.IncidentVerified, Payload: json.RawMessage(`{}`)}

	first.EXPECT().Publish(gomock.Any(), event).Return(errors.New("down"))
	second.EXPECT().Publish(gomock.Any(), event).Return(errors.New("down"))

	err := events.NewFanout(newLogger(), first, second).Publish(context.Background(), event)

	require.Error(t, err)
	assert.Contains(t, err.Error(), events.IncidentVerified)
}

func TestFanout_NoBuses(t *testing.T) {
	err := events.NewFanout(newLogger()).Publish(context.Background(), events.Event{Name: events.CellUpdated})
	assert.NoError(t, err)
}
