package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/imakhov/edgar-comb/app/database"
)

type memoryAlerts struct {
	records   []database.Alert
	appendErr error
}

func (m *memoryAlerts) Append(alert database.Alert) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, alert)
	return nil
}

func (m *memoryAlerts) Recent(limit int) ([]database.Alert, error) {
	return m.records, nil
}

type memoryLedger struct {
	rows      [][]string
	appendErr error
}

func (m *memoryLedger) AppendRow(ctx context.Context, values []string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.rows = append(m.rows, values)
	return nil
}

func testAlert() Alert {
	return Alert{
		Fingerprint: "4 - DOE JOHN - 2026-01-05T10:00:00Z",
		JobName:     "whale",
		RuleName:    "whale",
		Issuer:      "Apple Inc.",
		Ticker:      "AAPL",
		Value:       600000,
		Message:     "🐳 <b>Insider whale alert</b>",
		Link:        "https://www.sec.gov/x.txt",
	}
}

func TestPublisherPublishRecordsLedgers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	}))
	defer server.Close()

	alerts := &memoryAlerts{}
	ledger := &memoryLedger{}
	pub := NewPublisher(testTelegram(server), "-100123", "").
		WithAlertRepository(alerts).
		WithSheet(ledger)

	receipt, err := pub.Publish(context.Background(), testAlert())
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if receipt.MessageID != 42 {
		t.Errorf("Expected message id 42, got %d", receipt.MessageID)
	}
	if !receipt.LedgerOK {
		t.Error("Expected LedgerOK with healthy ledgers")
	}
	if len(alerts.records) != 1 || alerts.records[0].MessageID != 42 {
		t.Errorf("Expected alert record with message id, got %+v", alerts.records)
	}
	if len(ledger.rows) != 1 {
		t.Fatalf("Expected 1 ledger row, got %d", len(ledger.rows))
	}
	row := strings.Join(ledger.rows[0], "|")
	for _, want := range []string{"whale", "Apple Inc.", "AAPL", "600000"} {
		if !strings.Contains(row, want) {
			t.Errorf("Expected %q in ledger row %q", want, row)
		}
	}
}

func TestPublisherHeartbeatReportsLastAlert(t *testing.T) {
	var sentText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		sentText = r.PostForm.Get("text")
		w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer server.Close()

	alerts := &memoryAlerts{records: []database.Alert{{
		Ticker:    "AAPL",
		Value:     600000,
		CreatedAt: time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC),
	}}}
	pub := NewPublisher(testTelegram(server), "-100123", "-100456").WithAlertRepository(alerts)

	now := time.Date(2026, 1, 5, 9, 2, 0, 0, time.UTC)
	if err := pub.Heartbeat(context.Background(), now); err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	for _, want := range []string{"alive", "$AAPL", "2026-01-05 08:30"} {
		if !strings.Contains(sentText, want) {
			t.Errorf("Expected %q in heartbeat text %q", want, sentText)
		}
	}
}

func TestPublisherLedgerFailureDoesNotFailPublish(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	}))
	defer server.Close()

	pub := NewPublisher(testTelegram(server), "-100123", "").
		WithSheet(&memoryLedger{appendErr: errors.New("quota exceeded")})

	receipt, err := pub.Publish(context.Background(), testAlert())
	if err != nil {
		t.Fatalf("A ledger failure must not fail Publish: %v", err)
	}
	if receipt.LedgerOK {
		t.Error("Expected LedgerOK=false after a ledger failure")
	}
	if receipt.MessageID != 42 {
		t.Errorf("Expected message id 42, got %d", receipt.MessageID)
	}
}

func TestPublisherChannelFailureFailsPublish(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	alerts := &memoryAlerts{}
	pub := NewPublisher(testTelegram(server), "-100123", "").WithAlertRepository(alerts)

	_, err := pub.Publish(context.Background(), testAlert())
	if err == nil {
		t.Fatal("Expected error when the channel rejects the message")
	}
	if len(alerts.records) != 0 {
		t.Error("A failed publish must not be recorded in the ledger")
	}
}

func TestPublisherChartFailureDegradesToText(t *testing.T) {
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
		w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	}))
	defer server.Close()

	charts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer charts.Close()

	pub := NewPublisher(testTelegram(server), "-100123", "").
		WithChart(NewChartFetcher(charts.URL + "/{ticker}.png"))

	receipt, err := pub.Publish(context.Background(), testAlert())
	if err != nil {
		t.Fatalf("A chart failure must not fail Publish: %v", err)
	}
	if receipt.MessageID != 42 {
		t.Errorf("Expected message id 42, got %d", receipt.MessageID)
	}
	if len(methods) != 1 || methods[0] != "sendMessage" {
		t.Errorf("Expected a single text message, got %v", methods)
	}
}

func TestPublisherSendsPhotoWhenChartAvailable(t *testing.T) {
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
		w.Write([]byte(`{"ok":true,"result":{"message_id":42}}`))
	}))
	defer server.Close()

	charts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/AAPL.png" {
			t.Errorf("Expected ticker substitution, got %q", r.URL.Path)
		}
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer charts.Close()

	pub := NewPublisher(testTelegram(server), "-100123", "").
		WithChart(NewChartFetcher(charts.URL + "/{ticker}.png"))

	if _, err := pub.Publish(context.Background(), testAlert()); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if len(methods) != 1 || methods[0] != "sendPhoto" {
		t.Errorf("Expected a single photo message, got %v", methods)
	}
}
