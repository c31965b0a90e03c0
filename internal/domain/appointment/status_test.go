package appointment

import (
	"testing"
	"time"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/httperr"
	"github.com/Pranaysalavadhi/medic-connect-online/internal/models"
)

func TestInitialStatus(t *testing.T) {
	if InitialStatus() != StatusPending {
		t.Fatalf("expected new appointments to start PENDING, got %s", InitialStatus())
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "CONFIRMED", "CANCELLED"} {
		if _, err := ParseStatus(valid); err != nil {
			t.Fatalf("expected %s to parse, got %v", valid, err)
		}
	}

	if _, err := ParseStatus("RESCHEDULED"); !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
}

func TestConfirmFromPending(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusPending)}

	if err := Confirm(ap, now); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if ap.Status != string(StatusConfirmed) {
		t.Fatalf("expected CONFIRMED, got %s", ap.Status)
	}
	if ap.ConfirmedAt == nil || !ap.ConfirmedAt.Equal(now) {
		t.Fatal("expected ConfirmedAt to be stamped")
	}
}

func TestCancelFromPending(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusPending)}

	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if ap.Status != string(StatusCancelled) {
		t.Fatalf("expected CANCELLED, got %s", ap.Status)
	}
	if ap.CancelledAt == nil {
		t.Fatal("expected CancelledAt to be stamped")
	}
}

// Terminal states accept no further transition, in either direction.
func TestTerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []Status{StatusConfirmed, StatusCancelled} {
		if !IsTerminal(terminal) {
			t.Fatalf("expected %s to be terminal", terminal)
		}

		ap := &models.Appointment{Status: string(terminal)}

		if err := Confirm(ap, time.Now()); !httperr.IsBusiness(err, "invalid_state") {
			t.Fatalf("confirm from %s: expected invalid_state, got %v", terminal, err)
		}
		if err := Cancel(ap, time.Now()); !httperr.IsBusiness(err, "invalid_state") {
			t.Fatalf("cancel from %s: expected invalid_state, got %v", terminal, err)
		}

		if ap.Status != string(terminal) {
			t.Fatalf("status changed from %s to %s", terminal, ap.Status)
		}
	}

	if IsTerminal(StatusPending) {
		t.Fatal("PENDING must not be terminal")
	}
}
