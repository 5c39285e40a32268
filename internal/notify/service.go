package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/wolfman30/leadform/internal/collector"
	"github.com/wolfman30/leadform/pkg/logging"
)

// LeadAlerter emails the sales inbox when a qualified lead comes in.
type LeadAlerter struct {
	email      EmailSender
	recipients []string
	logger     *logging.Logger
}

// NewLeadAlerter returns nil when there is no sender or no recipient, so the
// dispatcher can skip alerts entirely.
func NewLeadAlerter(email EmailSender, recipients []string, logger *logging.Logger) *LeadAlerter {
	var to []string
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	if email == nil || len(to) == 0 {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadAlerter{email: email, recipients: to, logger: logger}
}

// NotifyQualified sends one alert per recipient. The first failure is returned
// after every recipient was attempted.
func (a *LeadAlerter) NotifyQualified(ctx context.Context, p collector.Payload) error {
	if a == nil {
		return nil
	}
	msg := EmailMessage{
		Subject: fmt.Sprintf("Qualified lead: %s (%s)", p.Name, p.BusinessModel),
		Body:    alertText(p),
		HTML:    alertHTML(p),
	}

	var firstErr error
	for _, to := range a.recipients {
		msg.To = to
		if err := a.email.Send(ctx, msg); err != nil {
			a.logger.Error("lead alert failed", "error", err, "to", to)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func alertRows(p collector.Payload) [][2]string {
	channels := make([]string, 0, len(p.MarketingChannels))
	for _, c := range p.MarketingChannels {
		channels = append(channels, string(c))
	}
	if p.OtherMarketingChannel != "" {
		channels = append(channels, p.OtherMarketingChannel)
	}
	return [][2]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Website", p.WebsiteURL},
		{"Business model", string(p.BusinessModel)},
		{"Monthly revenue", p.MonthlyRevenue},
		{"Monthly spend", p.MonthlySpend},
		{"Channels", strings.Join(channels, ", ")},
		{"Source", p.PageSource},
		{"Submitted", p.Timestamp},
	}
}

func alertText(p collector.Payload) string {
	var b strings.Builder
	for _, row := range alertRows(p) {
		fmt.Fprintf(&b, "%s: %s\n", row[0], row[1])
	}
	return b.String()
}

var alertTemplate = template.Must(template.New("alert").Parse(
	`<table>{{range .}}<tr><th align="left">{{index . 0}}</th><td>{{index . 1}}</td></tr>{{end}}</table>`,
))

func alertHTML(p collector.Payload) string {
	var b strings.Builder
	if err := alertTemplate.Execute(&b, alertRows(p)); err != nil {
		return ""
	}
	return b.String()
}
