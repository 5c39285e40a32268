package collector

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/leadform/internal/submission"
	"github.com/wolfman30/leadform/pkg/logging"
)

type blockingSender struct {
	release chan struct{}
	mu      sync.Mutex
	sent    []Payload
	ctxErr  error
	err     error
}

func (s *blockingSender) Send(ctx context.Context, p Payload) error {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, p)
	s.ctxErr = ctx.Err()
	return s.err
}

func (s *blockingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type recordingObserver struct {
	mu       sync.Mutex
	statuses []string
}

func (o *recordingObserver) ObserveDispatch(status string, _ float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, status)
}

func (o *recordingObserver) snapshot() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.statuses...)
}

type recordingNotifier struct {
	mu     sync.Mutex
	emails []string
}

func (n *recordingNotifier) NotifyQualified(_ context.Context, p Payload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.emails = append(n.emails, p.Email)
	return nil
}

func TestDispatchReturnsBeforeSendCompletes(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	d := NewDispatcher(sender, logging.Default())

	done := make(chan bool, 1)
	go func() { done <- d.Dispatch(context.Background(), NewPayload(sampleSubmission(), time.Now())) }()

	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked on the collector")
	}
	assert.Equal(t, 0, sender.count())

	close(sender.release)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 1, sender.count())
}

func TestDispatchSurvivesRequestCancellation(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	d := NewDispatcher(sender, logging.Default())

	ctx, cancel := context.WithCancel(context.Background())
	d.Dispatch(ctx, NewPayload(sampleSubmission(), time.Now()))
	cancel()
	close(sender.release)

	require.NoError(t, d.Close(context.Background()))
	assert.NoError(t, sender.ctxErr)
}

func TestDispatchFailureIsObservedNotReturned(t *testing.T) {
	sender := &blockingSender{err: errors.New("collector down")}
	observer := &recordingObserver{}
	notifier := &recordingNotifier{}
	d := NewDispatcher(sender, logging.Default(), WithObserver(observer), WithNotifier(notifier))

	assert.True(t, d.Dispatch(context.Background(), NewPayload(sampleSubmission(), time.Now())))
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{"error"}, observer.snapshot())
	assert.Empty(t, notifier.emails)
}

func TestDispatchNotifiesOnlyQualified(t *testing.T) {
	sender := &blockingSender{}
	observer := &recordingObserver{}
	notifier := &recordingNotifier{}
	d := NewDispatcher(sender, logging.Default(), WithObserver(observer), WithNotifier(notifier), WithTimeout(time.Second))

	qualified := sampleSubmission()
	unqualified := sampleSubmission()
	unqualified.Email = "drop@example.com"
	unqualified.SetBusinessModel(submission.ModelDropshipping)

	d.Dispatch(context.Background(), NewPayload(qualified, time.Now()))
	d.Dispatch(context.Background(), NewPayload(unqualified, time.Now()))
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{"jane@example.com"}, notifier.emails)
	assert.Equal(t, []string{"sent", "sent"}, observer.snapshot())
}

func TestDispatchAfterClose(t *testing.T) {
	sender := &blockingSender{}
	observer := &recordingObserver{}
	d := NewDispatcher(sender, logging.Default(), WithObserver(observer))
	require.NoError(t, d.Close(context.Background()))

	assert.False(t, d.Dispatch(context.Background(), NewPayload(sampleSubmission(), time.Now())))
	assert.Equal(t, []string{"dropped"}, observer.snapshot())
	assert.Equal(t, 0, sender.count())
}

func TestCloseHonoursContext(t *testing.T) {
	sender := &blockingSender{release: make(chan struct{})}
	defer close(sender.release)
	d := NewDispatcher(sender, logging.Default())
	d.Dispatch(context.Background(), NewPayload(sampleSubmission(), time.Now()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}
