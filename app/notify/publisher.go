package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/imakhov/edgar-comb/app/database"
	"github.com/imakhov/edgar-comb/app/filing"
)

// Alert is one classified, alert-worthy filing ready for delivery. Message
// is Telegram HTML with all document text already escaped.
type Alert struct {
	Fingerprint string
	JobName     string
	RuleName    string
	Issuer      string
	Ticker      string
	Value       float64
	Message     string
	Link        string
}

// Receipt reports what Publish managed to deliver.
type Receipt struct {
	MessageID int64
	LedgerOK  bool
}

// Ledger is an external append-only sink for alert rows.
type Ledger interface {
	AppendRow(ctx context.Context, values []string) error
}

// Publisher delivers alerts. The Telegram message is the primary
// deliverable: its failure fails Publish. Ledger, spreadsheet and email
// mirrors are best-effort and only degrade the receipt.
type Publisher struct {
	telegram        *Telegram
	chatID          string
	heartbeatChatID string

	chart  *ChartFetcher            // optional
	alerts database.AlertRepository // optional
	sheet  Ledger                   // optional
	email  *EmailSender             // optional
}

func NewPublisher(telegram *Telegram, chatID, heartbeatChatID string) *Publisher {
	return &Publisher{
		telegram:        telegram,
		chatID:          chatID,
		heartbeatChatID: heartbeatChatID,
	}
}

func (p *Publisher) WithChart(chart *ChartFetcher) *Publisher {
	p.chart = chart
	return p
}

func (p *Publisher) WithAlertRepository(alerts database.AlertRepository) *Publisher {
	p.alerts = alerts
	return p
}

func (p *Publisher) WithSheet(sheet Ledger) *Publisher {
	p.sheet = sheet
	return p
}

func (p *Publisher) WithEmail(email *EmailSender) *Publisher {
	p.email = email
	return p
}

// Publish sends the alert to the channel, then records it in the ledgers.
func (p *Publisher) Publish(ctx context.Context, alert Alert) (Receipt, error) {
	messageID, err := p.send(ctx, alert)
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{
		MessageID: messageID,
		LedgerOK:  p.record(ctx, alert, messageID),
	}, nil
}

// send posts the message, attaching a chart when one can be fetched. A
// failed chart degrades to a text-only message, never a lost alert.
func (p *Publisher) send(ctx context.Context, alert Alert) (int64, error) {
	if p.chart != nil && alert.Ticker != "" && alert.Ticker != filing.PlaceholderTicker {
		img, err := p.chart.Fetch(ctx, alert.Ticker)
		if err != nil {
			slog.Warn("Failed to fetch chart, sending text only", "ticker", alert.Ticker, "error", err)
		} else {
			messageID, err := p.telegram.SendPhoto(ctx, p.chatID, img, alert.Message)
			if err == nil {
				return messageID, nil
			}
			slog.Warn("Failed to send photo, sending text only", "ticker", alert.Ticker, "error", err)
		}
	}

	messageID, err := p.telegram.SendMessage(ctx, p.chatID, alert.Message)
	if err != nil {
		return 0, fmt.Errorf("failed to publish alert: %w", err)
	}
	return messageID, nil
}

func (p *Publisher) record(ctx context.Context, alert Alert, messageID int64) bool {
	ok := true

	if p.alerts != nil {
		err := p.alerts.Append(database.Alert{
			Fingerprint: alert.Fingerprint,
			JobName:     alert.JobName,
			RuleName:    alert.RuleName,
			Issuer:      alert.Issuer,
			Ticker:      alert.Ticker,
			Value:       alert.Value,
			Link:        alert.Link,
			MessageID:   messageID,
		})
		if err != nil {
			slog.Warn("Failed to record alert in database", "error", err)
			ok = false
		}
	}

	if p.sheet != nil {
		row := []string{
			time.Now().UTC().Format(time.RFC3339),
			alert.JobName,
			alert.Issuer,
			alert.Ticker,
			strconv.FormatFloat(alert.Value, 'f', 0, 64),
			alert.Link,
		}
		if err := p.sheet.AppendRow(ctx, row); err != nil {
			slog.Warn("Failed to record alert in spreadsheet", "error", err)
			ok = false
		}
	}

	if p.email != nil {
		subject := fmt.Sprintf("EDGAR alert: %s", alert.Issuer)
		body := strings.ReplaceAll(alert.Message, "\n", "<br>\n")
		if err := p.email.Send(subject, body); err != nil {
			slog.Warn("Failed to mirror alert to email", "error", err)
			ok = false
		}
	}

	return ok
}

// Heartbeat posts a liveness message on runs that land in the first five
// minutes of every third hour, so a silent channel can be told apart from a
// dead job.
func (p *Publisher) Heartbeat(ctx context.Context, now time.Time) error {
	if p.heartbeatChatID == "" {
		return nil
	}
	if now.Hour()%3 != 0 || now.Minute() >= 5 {
		return nil
	}

	text := fmt.Sprintf("💓 edgar-comb alive at %s", now.Format("15:04 MST"))
	if p.alerts != nil {
		recent, err := p.alerts.Recent(1)
		if err != nil {
			slog.Warn("Failed to read alert history for heartbeat", "error", err)
		} else if len(recent) > 0 {
			last := recent[0]
			text += fmt.Sprintf("\nLast alert: $%s at %s",
				html.EscapeString(last.Ticker), last.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
		}
	}

	if _, err := p.telegram.SendMessage(ctx, p.heartbeatChatID, text); err != nil {
		return fmt.Errorf("failed to send heartbeat: %w", err)
	}
	return nil
}
