package mailer

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"lavtracker/backend/config"
)

func TestNew_NoHostIsNoop(t *testing.T) {
	s := New(&config.MailConfig{}, zap.NewNop())
	if _, ok := s.(*noopSender); !ok {
		t.Fatalf("未配置 SMTP 时期望 noopSender，实际 %T", s)
	}
	if err := s.Send(context.Background(), &Message{Subject: "x"}); err != nil {
		t.Errorf("noopSender 不应返回错误: %v", err)
	}
}

func TestSMTPSender_RequiresRecipients(t *testing.T) {
	s := New(&config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, From: "lav@example.com"}, zap.NewNop())
	err := s.Send(context.Background(), &Message{Subject: "x"})
	if !errors.Is(err, ErrNoRecipients) {
		t.Errorf("期望 ErrNoRecipients，实际: %v", err)
	}
}
