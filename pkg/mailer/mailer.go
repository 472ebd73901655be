package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"lavtracker/backend/config"
)

// ErrNoRecipients 收件人为空
var ErrNoRecipients = errors.New("mailer: no recipients")

// Message 一封 HTML 通知邮件
type Message struct {
	To      []string
	Cc      []string
	Subject string
	HTML    string
}

// Sender 邮件发送接口
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// New 按配置创建发送器；未配置 SMTP 主机时返回只记日志的空实现
func New(cfg *config.MailConfig, logger *zap.Logger) Sender {
	if cfg.SMTPHost == "" {
		logger.Warn("未配置 SMTP，通知邮件将被跳过")
		return &noopSender{logger: logger}
	}
	return &smtpSender{cfg: *cfg, logger: logger}
}

type smtpSender struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

func (s *smtpSender) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("设置发件人失败: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("设置收件人失败: %w", err)
	}
	if len(msg.Cc) > 0 {
		if err := m.Cc(msg.Cc...); err != nil {
			return fmt.Errorf("设置抄送失败: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(30 * time.Second),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}

	client, err := gomail.NewClient(s.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("创建 SMTP 客户端失败: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	s.logger.Info("通知邮件已发送",
		zap.String("subject", msg.Subject),
		zap.Strings("to", msg.To),
		zap.Int("cc", len(msg.Cc)),
	)
	return nil
}

type noopSender struct {
	logger *zap.Logger
}

func (s *noopSender) Send(_ context.Context, msg *Message) error {
	s.logger.Debug("SMTP 未配置，跳过邮件", zap.String("subject", msg.Subject))
	return nil
}
