package pass

import (
	"testing"
	"time"

	"github.com/mwhitlock/wanderguide/internal/model"
)

func TestParse(t *testing.T) {
	for _, in := range []string{"day", "day_pass"} {
		k, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if k != KindDay {
			t.Errorf("Parse(%q) = %q, want %q", in, k, KindDay)
		}
	}

	if _, err := Parse("fortnight"); err == nil {
		t.Error("expected error for unknown pass type")
	}
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty pass type")
	}
}

func TestDurations(t *testing.T) {
	if d := KindDay.Duration(); d != 24*time.Hour {
		t.Errorf("day duration = %v, want 24h", d)
	}
	if d := KindWeekend.Duration(); d != 72*time.Hour {
		t.Errorf("weekend duration = %v, want 72h", d)
	}
	if d := KindWeek.Duration(); d != 7*24*time.Hour {
		t.Errorf("week duration = %v, want 168h", d)
	}
}

func TestPricing(t *testing.T) {
	if p := KindDay.PricePence(); p != 299 {
		t.Errorf("day price = %d, want 299", p)
	}
	if p := KindWeekend.PricePence(); p != 499 {
		t.Errorf("weekend price = %d, want 499", p)
	}
	if p := KindWeek.PricePence(); p != 799 {
		t.Errorf("week price = %d, want 799", p)
	}
}

func TestApplyWeekendPass(t *testing.T) {
	granted := time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC)
	ent := Apply(model.Entitlement{UserID: 7}, KindWeekend, granted)

	if !ent.HasActivePass {
		t.Error("expected HasActivePass=true")
	}
	want := granted.Add(3 * 24 * time.Hour)
	if ent.PassExpiresAt == nil || !ent.PassExpiresAt.Equal(want) {
		t.Errorf("pass expires = %v, want %v", ent.PassExpiresAt, want)
	}
}

func TestApplyOverwritesExistingPass(t *testing.T) {
	granted := time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC)
	existing := granted.Add(6 * 24 * time.Hour)
	ent := model.Entitlement{UserID: 7, HasActivePass: true, PassExpiresAt: &existing}

	ent = Apply(ent, KindDay, granted)
	want := granted.Add(24 * time.Hour)
	if !ent.PassExpiresAt.Equal(want) {
		t.Errorf("pass expires = %v, want overwrite to %v", ent.PassExpiresAt, want)
	}
}
