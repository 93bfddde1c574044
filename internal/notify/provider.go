package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hallmoor/binduty/internal/config"
)

// ProviderSender delivers through the real services: AiSensy campaign API for
// WhatsApp, a bearer-token SMS gateway, and Resend for email.
type ProviderSender struct {
	cfg      *config.Config
	whatsapp *resty.Client
	sms      *resty.Client
	email    *resty.Client
}

const resendAPIURL = "https://api.resend.com"

func NewProviderSender(cfg *config.Config) *ProviderSender {
	newClient := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(1 * time.Second).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json")
	}
	return &ProviderSender{
		cfg:      cfg,
		whatsapp: newClient(cfg.AiSensyAPIURL),
		sms:      newClient(cfg.SMSAPIURL).SetAuthToken(cfg.SMSAPIKey),
		email:    newClient(resendAPIURL).SetAuthToken(cfg.ResendAPIKey),
	}
}

type aisensyRequest struct {
	APIKey         string   `json:"apiKey"`
	CampaignName   string   `json:"campaignName"`
	Destination    string   `json:"destination"`
	UserName       string   `json:"userName"`
	TemplateParams []string `json:"templateParams"`
}

func (p *ProviderSender) SendWhatsApp(ctx context.Context, number, recipientName, campaign string, params []string) error {
	if p.cfg.AiSensyAPIKey == "" {
		return fmt.Errorf("whatsapp sender not configured")
	}
	resp, err := p.whatsapp.R().
		SetContext(ctx).
		SetBody(aisensyRequest{
			APIKey:         p.cfg.AiSensyAPIKey,
			CampaignName:   campaign,
			Destination:    number,
			UserName:       recipientName,
			TemplateParams: params,
		}).
		Post("")
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("whatsapp send: %s: %s", resp.Status(), resp.String())
	}
	return nil
}

type smsRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

func (p *ProviderSender) SendSMS(ctx context.Context, number, body string) error {
	if p.cfg.SMSAPIURL == "" {
		return fmt.Errorf("sms sender not configured")
	}
	resp, err := p.sms.R().
		SetContext(ctx).
		SetBody(smsRequest{To: number, Body: body}).
		Post("")
	if err != nil {
		return fmt.Errorf("sms send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms send: %s: %s", resp.Status(), resp.String())
	}
	return nil
}

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (p *ProviderSender) SendEmail(ctx context.Context, address, subject, htmlBody string) error {
	if p.cfg.ResendAPIKey == "" || p.cfg.ResendFromEmail == "" {
		return fmt.Errorf("email sender not configured")
	}
	resp, err := p.email.R().
		SetContext(ctx).
		SetBody(resendRequest{
			From:    p.cfg.ResendFromEmail,
			To:      address,
			Subject: subject,
			HTML:    htmlBody,
		}).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("email send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("email send: %s: %s", resp.Status(), resp.String())
	}
	return nil
}
