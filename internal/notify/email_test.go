package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/konanauto/garage-booking/internal/catalog"
	"github.com/konanauto/garage-booking/internal/schedule"
	"github.com/konanauto/garage-booking/internal/titles"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "shop@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "shop@example.com",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "予約システム" {
		t.Errorf("expected default from name, got %q", sender.fromName)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{}

	err := sender.Send(context.Background(), Message{
		To:      "owner@example.com",
		Subject: "Test",
		Body:    "Test body",
	})

	if err == nil {
		t.Error("expected error when client is nil")
	}
}

func TestSendGridSender_Send_NoRecipient(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "shop@example.com",
	}, nil)

	err := sender.Send(context.Background(), Message{Subject: "Test", Body: "x"})
	if err == nil {
		t.Error("expected error when neither message nor config carry a recipient")
	}
}

func TestStubSender_Send(t *testing.T) {
	sender := NewStubSender(nil)

	if err := sender.Send(context.Background(), Message{Subject: "Test"}); err != nil {
		t.Errorf("stub sender should not return error, got: %v", err)
	}
}

func TestBookingReceived(t *testing.T) {
	d := titles.Details{
		FullName: "山田太郎",
		Phone:    "090-0000-0000",
		Service:  catalog.ServiceOilChange,
	}
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, schedule.Location)

	msg := BookingReceived(d, start, false)
	if !strings.Contains(msg.Subject, "2026/09/07 09:00") {
		t.Errorf("timed booking subject missing clock time: %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "山田太郎") {
		t.Error("body should carry the customer name")
	}

	allDay := BookingReceived(d, start, true)
	if strings.Contains(allDay.Subject, "09:00") {
		t.Errorf("all-day booking subject should not carry a clock time: %q", allDay.Subject)
	}
	if !strings.Contains(allDay.Subject, "2026/09/07") {
		t.Errorf("all-day booking subject missing date: %q", allDay.Subject)
	}
}
