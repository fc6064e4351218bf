// Package capture drives a continuous speech-to-text session: it
// accumulates finalized transcript chunks, keeps the in-flight interim
// preview separate, and survives provider-side idle timeouts by
// restarting the recognizer silently.
package capture

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/metrics"
)

var (
	ErrUnsupported      = errors.New("speech recognition not available")
	ErrPermissionDenied = errors.New("microphone permission denied")
	ErrAlreadyListening = errors.New("capture already running")
)

type State int

const (
	StateIdle State = iota
	StateListening
)

type EventKind int

const (
	EventResult EventKind = iota
	EventError
	EventEnd
)

type ErrorCode string

const (
	CodeNoSpeech   ErrorCode = "no-speech"
	CodeNotAllowed ErrorCode = "not-allowed"
	CodeAborted    ErrorCode = "aborted"
)

// Event is one incremental signal from the speech provider.
type Event struct {
	Kind  EventKind
	Text  string
	Final bool
	Code  ErrorCode
}

// Recognizer abstracts the continuous speech provider. The event
// channel stays open across restarts; an EventEnd marks the provider
// closing one session, after which Start may be called again.
type Recognizer interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// AmplitudeSource feeds the listening visualizer. It is side-band
// only: it must never influence the transcript.
type AmplitudeSource interface {
	Start(ctx context.Context) error
	Stop()
}

// Notice is a non-fatal advisory surfaced to the operator.
type Notice struct {
	Code    ErrorCode
	Message string
}

const (
	maxConsecutiveRestarts = 5
	restartBackoffBase     = 250 * time.Millisecond
	restartBackoffCap      = 2 * time.Second
)

// Session is the capture state machine. All state is guarded by one
// mutex; recognizer events are consumed by a single goroutine, so
// transcript mutations are serialized no matter how the provider
// interleaves results and lifecycle events.
type Session struct {
	rec    Recognizer
	amp    AmplitudeSource
	notify func(Notice)

	mu        sync.Mutex
	state     State
	committed []string
	interim   string
	cancelled bool
	restarts  int
	stopAmp   context.CancelFunc
	loopDone  chan struct{}
}

func NewSession(rec Recognizer, amp AmplitudeSource, notify func(Notice)) *Session {
	if notify == nil {
		notify = func(Notice) {}
	}
	return &Session{rec: rec, amp: amp, notify: notify}
}

// Start requests the recognizer and transitions to Listening.
// ErrUnsupported and ErrPermissionDenied are terminal: the caller must
// retry explicitly.
func (s *Session) Start(ctx context.Context) error {
	if s.rec == nil {
		return ErrUnsupported
	}

	s.mu.Lock()
	if s.state == StateListening {
		s.mu.Unlock()
		return ErrAlreadyListening
	}
	s.cancelled = false
	s.restarts = 0
	s.interim = ""
	s.mu.Unlock()

	if err := s.rec.Start(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = StateListening
	s.loopDone = make(chan struct{})
	s.mu.Unlock()

	s.startAmplitude(ctx)

	go s.loop(ctx)
	return nil
}

// Stop is the explicit cancellation path. Idempotent: repeated calls
// after the session ended are no-ops.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.cancelled && s.state == StateIdle {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	s.mu.Unlock()

	if s.rec != nil {
		_ = s.rec.Stop()
	}
	s.teardown()
}

// Wait blocks until the event loop has exited. Mainly for tests and
// component teardown.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.loopDone
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns committed text plus the current interim preview,
// with redundant whitespace collapsed.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	joined := strings.Join(s.committed, " ") + " " + s.interim
	return strings.Join(strings.Fields(joined), " ")
}

// Reset discards accumulated text without touching the capture state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = nil
	s.interim = ""
}

func (s *Session) loop(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		done := s.loopDone
		s.loopDone = nil
		s.mu.Unlock()
		if done != nil {
			close(done)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.cancelled = true
			s.mu.Unlock()
			_ = s.rec.Stop()
			s.teardown()
			return
		case ev, ok := <-s.rec.Events():
			if !ok {
				s.teardown()
				return
			}
			if !s.handle(ctx, ev) {
				return
			}
		}
	}
}

// handle processes one event; it reports whether the loop continues.
func (s *Session) handle(ctx context.Context, ev Event) bool {
	switch ev.Kind {
	case EventResult:
		s.mu.Lock()
		if ev.Final {
			if t := strings.TrimSpace(ev.Text); t != "" {
				s.committed = append(s.committed, t)
			}
			s.interim = ""
			s.restarts = 0
		} else {
			s.interim = ev.Text
		}
		s.mu.Unlock()
		return true

	case EventError:
		switch ev.Code {
		case CodeNoSpeech:
			// Advisory only: the provider will emit end and we restart,
			// so Listening stays on.
			s.notify(Notice{Code: CodeNoSpeech, Message: "Không nghe thấy tiếng... Hãy nói to hơn."})
			return true
		case CodeNotAllowed:
			s.notify(Notice{Code: CodeNotAllowed, Message: "Bạn cần cho phép quyền truy cập Micro."})
			s.mu.Lock()
			s.cancelled = true
			s.mu.Unlock()
			_ = s.rec.Stop()
			s.teardown()
			return false
		default:
			log.WithField("code", ev.Code).Warn("speech recognition error")
			return true
		}

	case EventEnd:
		return s.restartOrStop(ctx)
	}
	return true
}

func (s *Session) restartOrStop(ctx context.Context) bool {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		s.teardown()
		return false
	}
	s.restarts++
	attempt := s.restarts
	s.mu.Unlock()

	if attempt > maxConsecutiveRestarts {
		s.notify(Notice{Code: CodeAborted, Message: "Mất kết nối nhận diện giọng nói."})
		s.teardown()
		return false
	}

	backoff := restartBackoffBase << (attempt - 1)
	if backoff > restartBackoffCap {
		backoff = restartBackoffCap
	}

	select {
	case <-ctx.Done():
		s.teardown()
		return false
	case <-time.After(backoff):
	}

	// Stop may have been requested while we were backing off.
	s.mu.Lock()
	cancelled := s.cancelled
	s.mu.Unlock()
	if cancelled {
		s.teardown()
		return false
	}

	if err := s.rec.Start(ctx); err != nil {
		log.WithError(err).Warn("speech recognizer restart failed")
		s.notify(Notice{Code: CodeAborted, Message: "Không thể tiếp tục nghe."})
		s.teardown()
		return false
	}

	metrics.CaptureRestarts.Inc()
	return true
}

func (s *Session) startAmplitude(ctx context.Context) {
	if s.amp == nil {
		return
	}
	ampCtx, cancel := context.WithCancel(ctx)
	if err := s.amp.Start(ampCtx); err != nil {
		// Visualizer failure never affects the transcript.
		log.WithError(err).Warn("amplitude source unavailable")
		cancel()
		return
	}
	s.mu.Lock()
	s.stopAmp = cancel
	s.mu.Unlock()
}

// teardown leaves Listening: stops amplitude sampling and clears the
// interim preview. Safe to call more than once.
func (s *Session) teardown() {
	s.mu.Lock()
	s.state = StateIdle
	s.interim = ""
	stopAmp := s.stopAmp
	s.stopAmp = nil
	s.mu.Unlock()

	if stopAmp != nil {
		stopAmp()
	}
	if s.amp != nil {
		s.amp.Stop()
	}
}
