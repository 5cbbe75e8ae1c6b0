package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tradesupport/internal/app/config"
	"tradesupport/internal/app/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRequestURL(t *testing.T) {
	assert.Equal(t, "https://app.example.com/client/support-requests/7", RequestURL("https://app.example.com/", 7))
}

func TestRenderEmailEscapesMessage(t *testing.T) {
	body, err := RenderEmail("<b>Jane</b> has approved your request", "https://x/client/support-requests/1", "View Request")
	require.NoError(t, err)

	assert.Contains(t, body, "&lt;b&gt;Jane&lt;/b&gt; has approved your request")
	assert.Contains(t, body, `href="https://x/client/support-requests/1"`)
	assert.Contains(t, body, "View Request")
}

func TestNotifierHandle(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := NewMockSender(ctrl)

	sender.EXPECT().
		Send(gomock.Any(), "manager@example.com", "Jane is requesting support", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, body string) error {
			assert.True(t, strings.Contains(body, "/client/support-requests/42"))
			assert.True(t, strings.Contains(body, "Jane has submitted a new support request"))
			return nil
		})

	n := NewNotifier(sender, "https://app.example.com")
	err := n.Handle(context.Background(), outbox.Event{
		Kind:      outbox.KindEmail,
		RequestID: 42,
		Payload: outbox.Email{
			To:      "manager@example.com",
			Subject: "Jane is requesting support",
			Message: "Jane has submitted a new support request",
		},
	})
	require.NoError(t, err)
}

func TestNotifierHandleSendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := NewMockSender(ctrl)
	sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

	n := NewNotifier(sender, "https://app.example.com")
	err := n.Handle(context.Background(), outbox.Event{Kind: outbox.KindEmail, RequestID: 1, Payload: outbox.Email{To: "a@b.c"}})
	assert.EqualError(t, err, "smtp down")
}

func TestNotifierRejectsWrongPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := NewNotifier(NewMockSender(ctrl), "")

	err := n.Handle(context.Background(), outbox.Event{Kind: outbox.KindEmail, Payload: outbox.DocumentIssued{}})
	assert.Error(t, err)
}

func TestNewSenderFallsBackToLog(t *testing.T) {
	_, ok := NewSender(config.SMTPConfig{}).(LogSender)
	assert.True(t, ok)
}
