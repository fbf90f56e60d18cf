package payload

import (
	"testing"
)

type samplePayload struct {
	Name    string `json:"name" validate:"required,min=3,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Seats   int    `json:"seats" validate:"omitempty,gte=2,lte=500"`
	Subject string `json:"subject" validate:"omitempty,oneof=Mathematics Physics Other"`
}

func TestCheck_Valid(t *testing.T) {
	p := samplePayload{Name: "Calc Study Crew", Email: "crew@example.com", Seats: 10, Subject: "Physics"}
	if details := Check(&p); details != nil {
		t.Errorf("expected no field errors, got %v", details)
	}
}

func TestCheck_ReportsJSONFieldNames(t *testing.T) {
	p := samplePayload{Name: "ab", Email: "not-an-email"}
	details := Check(&p)
	if len(details) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(details), details)
	}

	fields := map[string]bool{}
	for _, d := range details {
		fields[d.Field] = true
		if d.Message == "" {
			t.Errorf("field %q has empty message", d.Field)
		}
	}
	if !fields["name"] {
		t.Error("expected an error keyed by json tag \"name\"")
	}
	if !fields["email"] {
		t.Error("expected an error keyed by json tag \"email\"")
	}
}

func TestCheck_RangeAndEnum(t *testing.T) {
	p := samplePayload{Name: "Valid Name", Email: "a@b.co", Seats: 1, Subject: "Astrology"}
	details := Check(&p)
	if len(details) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(details), details)
	}
}
