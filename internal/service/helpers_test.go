package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestLogger возвращает логгер без вывода
func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func newTestClock(t *testing.T) *clockwork.FakeClock {
	t.Helper()
	return clockwork.NewFakeClockAt(testNow)
}
