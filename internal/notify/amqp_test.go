package notify

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	at := time.Date(2024, 3, 18, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	body, err := Encode("budget_alert", at, map[string]int{"count": 2})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != "budget_alert" || msg.Source != "finburn" {
		t.Fatalf("got type=%q source=%q", msg.Type, msg.Source)
	}
	if !msg.Timestamp.Equal(at) || msg.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp = %v, want %v in UTC", msg.Timestamp, at)
	}
	if string(msg.Payload) != `{"count":2}` {
		t.Fatalf("payload = %s", msg.Payload)
	}
}

func TestEncodeRequiresType(t *testing.T) {
	if _, err := Encode("", time.Now(), nil); err == nil {
		t.Fatal("expected error for empty type")
	}
}
