package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"mergingtonactivities/internal/domain"
)

type sentMail struct {
	to, subject, html, text string
}

type mockMailer struct {
	sent []sentMail
	err  error
}

func (m *mockMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, html, text})
	return nil
}

type mockRenderer struct {
	template string
	err      error
}

func (m *mockRenderer) Render(templateName string, data any) (string, string, string, error) {
	m.template = templateName
	if m.err != nil {
		return "", "", "", m.err
	}
	return "subject " + templateName, "<p>html</p>", "text", nil
}

func TestEmailService_Send(t *testing.T) {
	data := &domain.RosterEmailData{Email: "s@mergington.edu", ActivityName: "Chess Club"}

	tests := []struct {
		name         string
		call         func(svc domain.EmailService) error
		mailer       *mockMailer
		renderer     *mockRenderer
		wantTemplate string
		wantErr      bool
	}{
		{
			name:         "signup confirmation",
			call:         func(svc domain.EmailService) error { return svc.SendSignupConfirmation(context.Background(), data) },
			mailer:       &mockMailer{},
			renderer:     &mockRenderer{},
			wantTemplate: "signup_confirmation",
		},
		{
			name:         "unregister notice",
			call:         func(svc domain.EmailService) error { return svc.SendUnregisterNotice(context.Background(), data) },
			mailer:       &mockMailer{},
			renderer:     &mockRenderer{},
			wantTemplate: "unregister_notice",
		},
		{
			name:         "render error",
			call:         func(svc domain.EmailService) error { return svc.SendSignupConfirmation(context.Background(), data) },
			mailer:       &mockMailer{},
			renderer:     &mockRenderer{err: errors.New("bad template")},
			wantTemplate: "signup_confirmation",
			wantErr:      true,
		},
		{
			name:         "mailer error",
			call:         func(svc domain.EmailService) error { return svc.SendUnregisterNotice(context.Background(), data) },
			mailer:       &mockMailer{err: errors.New("ses unavailable")},
			renderer:     &mockRenderer{},
			wantTemplate: "unregister_notice",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEmailService(tt.mailer, tt.renderer, discardLogger())
			err := tt.call(svc)
			require.Equal(t, tt.wantTemplate, tt.renderer.template)
			if tt.wantErr {
				require.Error(t, err)
				require.Empty(t, tt.mailer.sent)
				return
			}
			require.NoError(t, err)
			require.Len(t, tt.mailer.sent, 1)
			require.Equal(t, "s@mergington.edu", tt.mailer.sent[0].to)
			require.Equal(t, "subject "+tt.wantTemplate, tt.mailer.sent[0].subject)
		})
	}
}

func TestEmailService_NilData(t *testing.T) {
	svc := NewEmailService(&mockMailer{}, &mockRenderer{}, discardLogger())
	require.Error(t, svc.SendSignupConfirmation(context.Background(), nil))
}
