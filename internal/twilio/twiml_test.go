package twilio

import (
	"encoding/xml"
	"strings"
	"testing"
)

func TestReply_BuildsEnvelope(t *testing.T) {
	out, err := Reply("Temperature: 20.5°C")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}

	got := string(out)
	if !strings.HasPrefix(got, xml.Header) {
		t.Errorf("envelope missing XML declaration: %q", got)
	}
	if !strings.Contains(got, "<Response><Message>Temperature: 20.5°C</Message></Response>") {
		t.Errorf("unexpected envelope: %q", got)
	}
}

func TestReply_EscapesMarkup(t *testing.T) {
	out, err := Reply(`10 < 20 & "windy"`)
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}

	got := string(out)
	if strings.Contains(got, `10 < 20`) {
		t.Errorf("markup not escaped: %q", got)
	}

	var decoded MessagingResponse
	if err := xml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("reply is not valid XML: %v", err)
	}
	if decoded.Message != `10 < 20 & "windy"` {
		t.Errorf("round-trip = %q, want original text", decoded.Message)
	}
}
