package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/internal/notify"
	"staybook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	retried []notify.ConfirmationTask
	dead    []notify.ConfirmationTask
}

func (q *fakeQueue) Dequeue(ctx context.Context, timeout time.Duration) (*notify.ConfirmationTask, error) {
	return nil, notify.ErrQueueEmpty
}

func (q *fakeQueue) Retry(ctx context.Context, task notify.ConfirmationTask) error {
	task.Attempts++
	q.retried = append(q.retried, task)
	return nil
}

func (q *fakeQueue) DeadLetter(ctx context.Context, task notify.ConfirmationTask) error {
	q.dead = append(q.dead, task)
	return nil
}

type fakeSource struct {
	conf *repository.BookingConfirmation
	err  error
}

func (s *fakeSource) GetConfirmation(ctx context.Context, bookingID int64) (*repository.BookingConfirmation, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.conf, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendConfirmation(to string, c *repository.BookingConfirmation, pdf []byte) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func confirmation() *repository.BookingConfirmation {
	return &repository.BookingConfirmation{
		BookingID:     7,
		GuestName:     "Dana Guest",
		GuestEmail:    "dana@example.com",
		PropertyTitle: "Loft near the park",
		City:          "Almaty",
		CheckIn:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Guests:        2,
		TotalPrice:    800,
	}
}

func TestProcess_SendsEmail(t *testing.T) {
	queue := &fakeQueue{}
	mailer := &fakeMailer{}
	w := New(queue, &fakeSource{conf: confirmation()}, mailer, nil, 3, 0)

	w.Process(context.Background(), notify.NewConfirmationTask(7, "dana@example.com"))

	assert.Equal(t, []string{"dana@example.com"}, mailer.sent)
	assert.Empty(t, queue.retried)
	assert.Empty(t, queue.dead)
}

func TestProcess_FallsBackToSnapshotEmail(t *testing.T) {
	mailer := &fakeMailer{}
	w := New(&fakeQueue{}, &fakeSource{conf: confirmation()}, mailer, nil, 3, 0)

	task := notify.NewConfirmationTask(7, "")
	w.Process(context.Background(), task)

	assert.Equal(t, []string{"dana@example.com"}, mailer.sent)
}

func TestProcess_NoEmailWhenLoadFails(t *testing.T) {
	queue := &fakeQueue{}
	mailer := &fakeMailer{}
	w := New(queue, &fakeSource{err: errors.New("db down")}, mailer, nil, 3, 0)

	w.Process(context.Background(), notify.NewConfirmationTask(7, "dana@example.com"))

	assert.Empty(t, mailer.sent, "email must not go out without a rendered document")
	require.Len(t, queue.retried, 1)
	assert.Equal(t, 1, queue.retried[0].Attempts)
}

func TestProcess_DeadLettersAfterMaxAttempts(t *testing.T) {
	queue := &fakeQueue{}
	mailer := &fakeMailer{err: errors.New("smtp refused")}
	w := New(queue, &fakeSource{conf: confirmation()}, mailer, nil, 3, 0)

	task := notify.NewConfirmationTask(7, "dana@example.com")

	w.Process(context.Background(), task)
	require.Len(t, queue.retried, 1)

	task = queue.retried[0]
	w.Process(context.Background(), task)
	require.Len(t, queue.retried, 2)

	task = queue.retried[1]
	w.Process(context.Background(), task)

	assert.Len(t, queue.retried, 2, "third failure must not re-enqueue")
	require.Len(t, queue.dead, 1)
	assert.Equal(t, 2, queue.dead[0].Attempts)
	assert.Empty(t, mailer.sent)
}

func TestRenderConfirmationPDF(t *testing.T) {
	pdf, err := RenderConfirmationPDF(confirmation())
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
