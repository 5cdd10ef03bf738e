package resend_test

import (
	"context"
	"errors"
	"testing"

	resendsdk "github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postmarkit/pkg/mail"
	"github.com/dmitrymomot/postmarkit/pkg/mailer/resend"
	"github.com/dmitrymomot/postmarkit/pkg/transport"
)

type MockEmailsAPI struct {
	mock.Mock
}

func (m *MockEmailsAPI) SendWithContext(ctx context.Context, params *resendsdk.SendEmailRequest) (*resendsdk.SendEmailResponse, error) {
	args := m.Called(ctx, params)
	resp, _ := args.Get(0).(*resendsdk.SendEmailResponse)
	return resp, args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := resend.New(resend.Config{})
	require.ErrorIs(t, err, resend.ErrMissingAPIKey)

	s, err := resend.New(resend.Config{APIKey: "re_test"})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestSender_SendEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("maps payload", func(t *testing.T) {
		t.Parallel()

		api := &MockEmailsAPI{}
		var got *resendsdk.SendEmailRequest
		api.On("SendWithContext", ctx, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(*resendsdk.SendEmailRequest) }).
			Return(&resendsdk.SendEmailResponse{Id: "re-1"}, nil).Once()

		res, err := resend.NewWithAPI(api).SendEmail(ctx, &transport.Payload{
			From:        "Team <team@example.com>",
			To:          ptr("<a@example.com>,Bob <b@example.com>"),
			Subject:     "Hi",
			HTMLBody:    ptr("<p>hi</p>"),
			TextBody:    ptr("hi"),
			Tag:         ptr("welcome"),
			TrackOpens:  true,
			ReplyTo:     ptr("<reply@example.com>"),
			Cc:          ptr("<c@example.com>"),
			Headers:     map[string]string{"X-Campaign": "spring"},
			Attachments: []transport.Attachment{{Name: "a.txt", Content: "YQ==", ContentType: "text/plain"}},
			TrackLinks:  ptr(mail.LinkTrackingHTMLOnly),
			Metadata:    map[string]any{"user": "42", "beta": true},
		})
		require.NoError(t, err)
		api.AssertExpectations(t)

		assert.Equal(t, "re-1", res.MessageID)
		assert.False(t, res.SubmittedAt.IsZero())

		require.NotNil(t, got)
		assert.Equal(t, "Team <team@example.com>", got.From)
		assert.Equal(t, []string{"a@example.com", "Bob <b@example.com>"}, got.To)
		assert.Equal(t, []string{"c@example.com"}, got.Cc)
		assert.Nil(t, got.Bcc)
		assert.Equal(t, "reply@example.com", got.ReplyTo)
		assert.Equal(t, "<p>hi</p>", got.Html)
		assert.Equal(t, "hi", got.Text)
		assert.Equal(t, map[string]string{"X-Campaign": "spring"}, got.Headers)
		require.Len(t, got.Attachments, 1)
		assert.Equal(t, []byte("a"), got.Attachments[0].Content)
		assert.Equal(t, []resendsdk.Tag{
			{Name: resend.TagName, Value: "welcome"},
			{Name: "beta", Value: "true"},
			{Name: "user", Value: "42"},
		}, got.Tags)
	})

	t.Run("bad attachment", func(t *testing.T) {
		t.Parallel()

		api := &MockEmailsAPI{}
		_, err := resend.NewWithAPI(api).SendEmail(ctx, &transport.Payload{
			From:        "team@example.com",
			To:          ptr("a@example.com"),
			Attachments: []transport.Attachment{{Name: "a.txt", Content: "%%%"}},
		})
		require.ErrorIs(t, err, resend.ErrInvalidAttachment)
		api.AssertNotCalled(t, "SendWithContext", mock.Anything, mock.Anything)
	})

	t.Run("bad address", func(t *testing.T) {
		t.Parallel()

		api := &MockEmailsAPI{}
		_, err := resend.NewWithAPI(api).SendEmail(ctx, &transport.Payload{From: "nope", To: ptr("a@example.com")})
		require.ErrorIs(t, err, resend.ErrInvalidPayload)
		api.AssertNotCalled(t, "SendWithContext", mock.Anything, mock.Anything)
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		api := &MockEmailsAPI{}
		boom := errors.New("rate limited")
		api.On("SendWithContext", ctx, mock.Anything).Return(nil, boom).Once()

		_, err := resend.NewWithAPI(api).SendEmail(ctx, &transport.Payload{From: "team@example.com", To: ptr("a@example.com")})
		require.ErrorIs(t, err, boom)
	})
}

func TestSender_ThroughTransport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := &MockEmailsAPI{}
	api.On("SendWithContext", ctx, mock.Anything).Return(&resendsdk.SendEmailResponse{Id: "re-2"}, nil).Once()

	tr, err := transport.New(resend.NewWithAPI(api))
	require.NoError(t, err)

	msg := mail.NewPostmarkMessage().
		AddFrom("team@example.com").
		AddTo("jane@example.com").
		SetSubject("Hi").
		SetText("hello")
	res, err := tr.SendWithResult(ctx, msg)
	require.NoError(t, err)
	assert.Equal(t, "re-2", res.MessageID)
	api.AssertExpectations(t)
}
