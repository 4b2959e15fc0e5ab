package service

import (
	"context"
	"time"

	"github.com/shenikar/safety_heatmap/internal/events"
	"github.com/sirupsen/logrus"
)

const emitTimeout = 2 * time.Second

// emit публикует событие без гарантии доставки; ошибка только логируется
func emit(ctx context.Context, pub events.Publisher, log *logrus.Entry, name string, payload any, at time.Time) {
	if pub == nil {
		return
	}
	event, err := events.NewEvent(name, payload, at)
	if err != nil {
		log.WithError(err).Warn("Failed to build event")
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emitTimeout)
	defer cancel()
	if err := pub.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("event", name).Warn("Failed to publish event")
	}
}
