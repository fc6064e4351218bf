package capture

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// --- Fakes ---------------------------------------------------------------

type fakeRecognizer struct {
	mu       sync.Mutex
	events   chan Event
	starts   int
	stops    int
	startErr error
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{events: make(chan Event, 16)}
}

func (f *fakeRecognizer) Start(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	return f.startErr
}

func (f *fakeRecognizer) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return nil
}

func (f *fakeRecognizer) Events() <-chan Event { return f.events }

func (f *fakeRecognizer) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

func (f *fakeRecognizer) emit(ev Event) { f.events <- ev }

type fakeAmplitude struct {
	mu      sync.Mutex
	started int
	stopped int
}

func (f *fakeAmplitude) Start(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	return nil
}

func (f *fakeAmplitude) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
}

func (f *fakeAmplitude) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type noticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

func (l *noticeLog) add(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = append(l.notices, n)
}

func (l *noticeLog) codes() []ErrorCode {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ErrorCode, 0, len(l.notices))
	for _, n := range l.notices {
		out = append(out, n.Code)
	}
	return out
}

// --- Tests ---------------------------------------------------------------

func TestStartWithoutRecognizer(t *testing.T) {
	s := NewSession(nil, nil, nil)
	require.ErrorIs(t, s.Start(context.Background()), ErrUnsupported)
}

func TestStartWhileListening(t *testing.T) {
	rec := newFakeRecognizer()
	s := NewSession(rec, nil, nil)

	require.NoError(t, s.Start(context.Background()))
	defer func() { s.Stop(); close(rec.events); s.Wait() }()

	require.ErrorIs(t, s.Start(context.Background()), ErrAlreadyListening)
}

func TestTranscriptAccumulation(t *testing.T) {
	rec := newFakeRecognizer()
	s := NewSession(rec, nil, nil)
	require.NoError(t, s.Start(context.Background()))

	rec.emit(Event{Kind: EventResult, Text: "photo 50 tờ", Final: true})
	rec.emit(Event{Kind: EventResult, Text: "đóng quyển"})

	require.Eventually(t, func() bool {
		return s.Transcript() == "photo 50 tờ đóng quyển"
	}, time.Second, 10*time.Millisecond)

	// A later interim replaces, never appends to, the preview.
	rec.emit(Event{Kind: EventResult, Text: "đóng 2 quyển"})
	require.Eventually(t, func() bool {
		return s.Transcript() == "photo 50 tờ đóng 2 quyển"
	}, time.Second, 10*time.Millisecond)

	// Finalizing commits the chunk and clears the preview.
	rec.emit(Event{Kind: EventResult, Text: "đóng 2 quyển", Final: true})
	require.Eventually(t, func() bool {
		return s.Transcript() == "photo 50 tờ đóng 2 quyển"
	}, time.Second, 10*time.Millisecond)

	s.Stop()
	close(rec.events)
	s.Wait()
}

func TestWhitespaceOnlyFinalIgnored(t *testing.T) {
	rec := newFakeRecognizer()
	s := NewSession(rec, nil, nil)
	require.NoError(t, s.Start(context.Background()))

	rec.emit(Event{Kind: EventResult, Text: "in màu", Final: true})
	rec.emit(Event{Kind: EventResult, Text: "   ", Final: true})
	rec.emit(Event{Kind: EventResult, Text: "a4", Final: true})

	require.Eventually(t, func() bool {
		return s.Transcript() == "in màu a4"
	}, time.Second, 10*time.Millisecond)

	s.Stop()
	close(rec.events)
	s.Wait()
}

func TestNoSpeechAdvisoryKeepsListening(t *testing.T) {
	rec := newFakeRecognizer()
	notices := &noticeLog{}
	s := NewSession(rec, nil, notices.add)
	require.NoError(t, s.Start(context.Background()))

	rec.emit(Event{Kind: EventError, Code: CodeNoSpeech})

	require.Eventually(t, func() bool {
		return len(notices.codes()) == 1
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, CodeNoSpeech, notices.codes()[0])
	require.Equal(t, StateListening, s.State())

	s.Stop()
	close(rec.events)
	s.Wait()
}

func TestNotAllowedIsTerminal(t *testing.T) {
	rec := newFakeRecognizer()
	amp := &fakeAmplitude{}
	notices := &noticeLog{}
	s := NewSession(rec, amp, notices.add)
	require.NoError(t, s.Start(context.Background()))

	rec.emit(Event{Kind: EventError, Code: CodeNotAllowed})
	s.Wait()

	require.Equal(t, StateIdle, s.State())
	require.Equal(t, []ErrorCode{CodeNotAllowed}, notices.codes())
	require.GreaterOrEqual(t, amp.stopCount(), 1)

	// A later provider end must not resurrect the session.
	require.Equal(t, StateIdle, s.State())
}

func TestAutoRestartAfterProviderEnd(t *testing.T) {
	rec := newFakeRecognizer()
	s := NewSession(rec, nil, nil)
	require.NoError(t, s.Start(context.Background()))

	rec.emit(Event{Kind: EventEnd})

	require.Eventually(t, func() bool {
		return rec.startCount() == 2
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, StateListening, s.State())

	// A final result after the restart lands in the same transcript.
	rec.emit(Event{Kind: EventResult, Text: "ép plastic", Final: true})
	require.Eventually(t, func() bool {
		return s.Transcript() == "ép plastic"
	}, time.Second, 10*time.Millisecond)

	s.Stop()
	close(rec.events)
	s.Wait()
}

func TestStopSuppressesRestart(t *testing.T) {
	rec := newFakeRecognizer()
	s := NewSession(rec, nil, nil)
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	// The provider end that follows an explicit stop must not restart.
	rec.emit(Event{Kind: EventEnd})
	s.Wait()

	require.Equal(t, StateIdle, s.State())
	require.Equal(t, 1, rec.startCount())
}

func TestStopIsIdempotent(t *testing.T) {
	rec := newFakeRecognizer()
	s := NewSession(rec, nil, nil)
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	rec.emit(Event{Kind: EventEnd})
	s.Wait()
	s.Stop()
	s.Stop()

	require.Equal(t, StateIdle, s.State())
}

func TestRestartGivesUpAfterRepeatedEnds(t *testing.T) {
	rec := newFakeRecognizer()
	notices := &noticeLog{}
	s := NewSession(rec, nil, notices.add)
	require.NoError(t, s.Start(context.Background()))

	// Silence with no final result in between: each end bumps the
	// consecutive-restart counter until the session gives up.
	for i := 0; i <= maxConsecutiveRestarts; i++ {
		rec.emit(Event{Kind: EventEnd})
	}

	require.Eventually(t, func() bool {
		return s.State() == StateIdle
	}, 30*time.Second, 50*time.Millisecond)

	codes := notices.codes()
	require.NotEmpty(t, codes)
	require.Equal(t, CodeAborted, codes[len(codes)-1])
}

func TestFinalResultResetsRestartCounter(t *testing.T) {
	rec := newFakeRecognizer()
	s := NewSession(rec, nil, nil)
	require.NoError(t, s.Start(context.Background()))

	rec.emit(Event{Kind: EventEnd})
	require.Eventually(t, func() bool {
		return rec.startCount() == 2
	}, 2*time.Second, 10*time.Millisecond)

	rec.emit(Event{Kind: EventResult, Text: "in 2 mặt", Final: true})
	rec.emit(Event{Kind: EventEnd})
	require.Eventually(t, func() bool {
		return rec.startCount() == 3
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, StateListening, s.State())

	s.Stop()
	close(rec.events)
	s.Wait()
}

func TestResetKeepsListening(t *testing.T) {
	rec := newFakeRecognizer()
	s := NewSession(rec, nil, nil)
	require.NoError(t, s.Start(context.Background()))

	rec.emit(Event{Kind: EventResult, Text: "photo thẻ", Final: true})
	require.Eventually(t, func() bool {
		return s.Transcript() == "photo thẻ"
	}, time.Second, 10*time.Millisecond)

	s.Reset()
	require.Equal(t, "", s.Transcript())
	require.Equal(t, StateListening, s.State())

	s.Stop()
	close(rec.events)
	s.Wait()
}

func TestContextCancelTearsDown(t *testing.T) {
	rec := newFakeRecognizer()
	amp := &fakeAmplitude{}
	s := NewSession(rec, amp, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	cancel()
	s.Wait()

	require.Equal(t, StateIdle, s.State())
	require.GreaterOrEqual(t, amp.stopCount(), 1)
}
