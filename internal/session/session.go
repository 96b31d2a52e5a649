package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/jakejg/outward-bound-chat-fe/internal/answering"
	app_errors "github.com/jakejg/outward-bound-chat-fe/internal/errors"
	"github.com/jakejg/outward-bound-chat-fe/internal/model"
	"github.com/jakejg/outward-bound-chat-fe/internal/transcript"
)

// Session holds the state of one chat conversation: the transcript, the
// unsent input, and the lifecycle of at most one in-flight question to the
// answering service. It is created when the view mounts and discarded with
// it; nothing survives the session.
type Session struct {
	svc   answering.Service
	store transcript.Store

	mu            sync.Mutex
	pendingInput  string
	awaitingReply bool
	serviceReady  bool

	// onChange, if set, is called after every state mutation so a view
	// layer can re-read the session. Called without the lock held.
	onChange func()
}

// Option configures a Session.
type Option func(*Session)

// WithOnChange registers a callback invoked after each state change.
func WithOnChange(fn func()) Option {
	return func(s *Session) { s.onChange = fn }
}

// New creates a Session over the given answering service and transcript store.
func New(svc answering.Service, store transcript.Store, opts ...Option) *Session {
	s := &Session{svc: svc, store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit runs one full submission cycle: it appends the user's message,
// sends the question to the answering service, and appends exactly one
// assistant message with the answer or a fallback notice. It blocks until
// the cycle completes; callers that need it off the UI goroutine run it in
// one (the session is safe for that).
//
// Input that is empty after trimming returns ErrEmptyInput, and a call made
// while a previous submission is still in flight returns ErrBusy. Neither
// touches the transcript or issues a request.
func (s *Session) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return app_errors.ErrEmptyInput
	}

	// Step 1: claim the in-flight slot and append the user's message. Both
	// happen under one lock acquisition so the busy check cannot race with
	// the append.
	s.mu.Lock()
	if s.awaitingReply {
		s.mu.Unlock()
		return app_errors.ErrBusy
	}
	s.awaitingReply = true
	s.pendingInput = ""
	s.store.Append(model.NewUserMessage(text))
	s.mu.Unlock()
	s.notify()

	slog.Info("Submitting question to answering service", "length", len(text))

	// Step 2: one request, no retries. The lock is not held across the
	// network call.
	answer, err := s.svc.Ask(ctx, text)

	// Step 3: convert the outcome into exactly one assistant message. A
	// malformed 2xx body and a transport failure get distinct notices;
	// neither error is returned to the caller.
	reply := answer
	switch {
	case errors.Is(err, answering.ErrNoAnswer):
		slog.Warn("Answering service replied without an answer")
		reply = model.ReplyNoAnswer
	case err != nil:
		slog.Error("Question request failed", "error", err)
		reply = model.ReplyRequestError
	default:
		slog.Info("Received answer from answering service", "length", len(answer))
	}

	s.mu.Lock()
	s.store.Append(model.NewAssistantMessage(reply))
	s.awaitingReply = false
	s.mu.Unlock()
	s.notify()

	return nil
}

// ProbeReadiness pings the answering service once. Success flips the
// advisory serviceReady flag; failure leaves it false for the rest of the
// session. There is no retry and the outcome never blocks submissions.
func (s *Session) ProbeReadiness(ctx context.Context) {
	if err := s.svc.Ping(ctx); err != nil {
		slog.Debug("Readiness probe failed", "error", err)
		return
	}
	s.mu.Lock()
	s.serviceReady = true
	s.mu.Unlock()
	s.notify()
}

// SetPendingInput stores the current unsent input text. Pure state, no
// validation.
func (s *Session) SetPendingInput(text string) {
	s.mu.Lock()
	s.pendingInput = text
	s.mu.Unlock()
}

// PendingInput returns the current unsent input text.
func (s *Session) PendingInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingInput
}

// AwaitingReply reports whether a submission is in flight.
func (s *Session) AwaitingReply() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaitingReply
}

// ServiceReady reports whether the readiness probe has succeeded.
func (s *Session) ServiceReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serviceReady
}

// Messages returns a copy of the transcript in append order.
func (s *Session) Messages() []model.Message {
	return s.store.Messages()
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
