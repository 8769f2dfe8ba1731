package mail

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type failingSender struct {
	mu    sync.Mutex
	calls int
}

func (s *failingSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errors.New("smtp: connection refused")
}

func TestDispatcher_FailureIsLoggedNotRaised(t *testing.T) {
	t.Parallel()

	logger, hook := logrustest.NewNullLogger()
	sender := &failingSender{}
	d := NewDispatcher(sender, logger)

	// Dispatch never blocks or errors even though delivery fails.
	d.SendWelcome("alice@x.com")

	require.Eventually(t, func() bool {
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.ErrorLevel && entry.Message == "send mail" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDispatcher_SendsOTPBody(t *testing.T) {
	t.Parallel()

	logger, _ := logrustest.NewNullLogger()
	rec := &recordingSender{ch: make(chan string, 1)}
	d := NewDispatcher(rec, logger)

	d.SendResetOTP("alice@x.com", "123456")

	select {
	case body := <-rec.ch:
		require.Contains(t, body, "123456")
	case <-time.After(2 * time.Second):
		t.Fatal("mail not dispatched")
	}
}

type recordingSender struct {
	ch chan string
}

func (s *recordingSender) Send(to, subject, body string) error {
	s.ch <- body
	return nil
}
