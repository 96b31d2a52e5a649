package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jakejg/outward-bound-chat-fe/internal/answering"
	app_errors "github.com/jakejg/outward-bound-chat-fe/internal/errors"
	"github.com/jakejg/outward-bound-chat-fe/internal/model"
	"github.com/jakejg/outward-bound-chat-fe/internal/session"
	"github.com/jakejg/outward-bound-chat-fe/internal/transcript"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Ask(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

func (m *mockService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setupSession(opts ...session.Option) (*session.Session, *mockService, transcript.Store) {
	svc := &mockService{}
	store := transcript.NewMemoryStore()
	return session.New(svc, store, opts...), svc, store
}

func TestSession_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - answer lands in the transcript", func(t *testing.T) {
		sess, svc, _ := setupSession()
		svc.On("Ask", ctx, "What kind of base layers should I bring?").
			Return("Bring wool or synthetic layers.", nil).Once()

		err := sess.Submit(ctx, "What kind of base layers should I bring?")
		require.NoError(t, err)

		msgs := sess.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, model.SenderUser, msgs[0].Sender)
		assert.Equal(t, "What kind of base layers should I bring?", msgs[0].Text)
		assert.Equal(t, model.SenderAssistant, msgs[1].Sender)
		assert.Equal(t, "Bring wool or synthetic layers.", msgs[1].Text)
		assert.False(t, sess.AwaitingReply())
		svc.AssertExpectations(t)
	})

	t.Run("Input is trimmed before sending", func(t *testing.T) {
		sess, svc, _ := setupSession()
		svc.On("Ask", ctx, "hello").Return("hi", nil).Once()

		require.NoError(t, sess.Submit(ctx, "  hello  \n"))

		msgs := sess.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, "hello", msgs[0].Text)
		svc.AssertExpectations(t)
	})

	t.Run("Transport failure - error notice, not an error", func(t *testing.T) {
		sess, svc, _ := setupSession()
		svc.On("Ask", ctx, "hello").Return("", errors.New("connection refused")).Once()

		err := sess.Submit(ctx, "hello")
		require.NoError(t, err)

		msgs := sess.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, model.SenderAssistant, msgs[1].Sender)
		assert.Equal(t, "Sorry, there was an error processing your request. Please try again.", msgs[1].Text)
		assert.False(t, sess.AwaitingReply())
	})

	t.Run("Missing answer field - distinct fallback notice", func(t *testing.T) {
		sess, svc, _ := setupSession()
		svc.On("Ask", ctx, "hello").Return("", answering.ErrNoAnswer).Once()

		require.NoError(t, sess.Submit(ctx, "hello"))

		msgs := sess.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, "Sorry, I could not process your request.", msgs[1].Text)
		assert.False(t, sess.AwaitingReply())
	})

	t.Run("Empty and whitespace-only input is rejected without side effects", func(t *testing.T) {
		sess, svc, _ := setupSession()

		assert.ErrorIs(t, sess.Submit(ctx, ""), app_errors.ErrEmptyInput)
		assert.ErrorIs(t, sess.Submit(ctx, "   \t\n"), app_errors.ErrEmptyInput)

		assert.Empty(t, sess.Messages())
		svc.AssertNotCalled(t, "Ask", mock.Anything, mock.Anything)
	})

	t.Run("Submission clears pending input", func(t *testing.T) {
		sess, svc, _ := setupSession()
		svc.On("Ask", ctx, "hello").Return("hi", nil).Once()

		sess.SetPendingInput("hello")
		require.NoError(t, sess.Submit(ctx, "hello"))
		assert.Empty(t, sess.PendingInput())
	})
}

// TestSession_Submit_Busy exercises the single in-flight guard: while a
// submission is waiting on the service, a second Submit is a no-op that
// mutates nothing and issues no request.
func TestSession_Submit_Busy(t *testing.T) {
	ctx := context.Background()
	sess, svc, store := setupSession()

	release := make(chan struct{})
	svc.On("Ask", ctx, "first").
		Run(func(args mock.Arguments) { <-release }).
		Return("answer", nil).Once()

	done := make(chan error, 1)
	go func() { done <- sess.Submit(ctx, "first") }()

	// The user message is appended before the request goes out, so once it
	// is visible the session must be in the awaiting state.
	require.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, time.Millisecond)
	assert.True(t, sess.AwaitingReply())

	err := sess.Submit(ctx, "second")
	assert.ErrorIs(t, err, app_errors.ErrBusy)
	assert.Equal(t, 1, store.Len())

	close(release)
	require.NoError(t, <-done)

	msgs := sess.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Text)
	assert.Equal(t, "answer", msgs[1].Text)
	assert.False(t, sess.AwaitingReply())
	svc.AssertNumberOfCalls(t, "Ask", 1)
}

func TestSession_ProbeReadiness(t *testing.T) {
	ctx := context.Background()

	t.Run("Success sets the advisory flag", func(t *testing.T) {
		sess, svc, _ := setupSession()
		svc.On("Ping", ctx).Return(nil).Once()

		assert.False(t, sess.ServiceReady())
		sess.ProbeReadiness(ctx)
		assert.True(t, sess.ServiceReady())
	})

	t.Run("Failure leaves the flag off and submissions unaffected", func(t *testing.T) {
		sess, svc, _ := setupSession()
		svc.On("Ping", ctx).Return(errors.New("connection refused")).Once()
		svc.On("Ask", ctx, "hello").Return("hi", nil).Once()

		sess.ProbeReadiness(ctx)
		assert.False(t, sess.ServiceReady())

		require.NoError(t, sess.Submit(ctx, "hello"))
		msgs := sess.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, "hi", msgs[1].Text)
	})
}

func TestSession_OnChange(t *testing.T) {
	ctx := context.Background()

	var calls int
	svc := &mockService{}
	sess := session.New(svc, transcript.NewMemoryStore(), session.WithOnChange(func() { calls++ }))

	svc.On("Ask", ctx, "hello").Return("hi", nil).Once()
	require.NoError(t, sess.Submit(ctx, "hello"))

	// One notification for the user append, one for the completed cycle.
	assert.Equal(t, 2, calls)
}
