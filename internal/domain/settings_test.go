package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSettingsUnmarshalKeepsDefaultsForMissingKeys(t *testing.T) {
	s := DefaultSettings()
	if err := json.Unmarshal([]byte(`{"street_rate": 3.2, "theme": "light", "cash_fee_fixed": null}`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := DefaultSettings()
	want.Street = 3.2
	want.Theme = ThemeLight

	if !reflect.DeepEqual(s, want) {
		t.Errorf("settings = %+v, want %+v", s, want)
	}
}

func TestSettingsPreservesUnknownKeys(t *testing.T) {
	s := DefaultSettings()
	input := `{"active_profile": "serbia", "window_geometry": "800x600", "plugins": {"a": 1}}`
	if err := json.Unmarshal([]byte(input), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.ActiveProfile != "serbia" {
		t.Errorf("ActiveProfile = %q, want serbia", s.ActiveProfile)
	}
	if len(s.Extra) != 2 {
		t.Fatalf("Extra = %v, want 2 unknown keys", s.Extra)
	}

	out, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var back map[string]json.RawMessage
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(back["window_geometry"]) != `"800x600"` {
		t.Errorf("window_geometry = %s, want preserved", back["window_geometry"])
	}
	if _, ok := back["reference_rate"]; !ok {
		t.Error("known keys missing from merged output")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.ActiveProfile = "mars"
	s.Amount = 250.5
	s.Reference = 3.1611
	s.Fees.CashFixed = 2
	s.Theme = ThemeLight
	s.Dates = Dates{ReferenceDate: "2024-05-01", CashDate: "yesterday"}
	s.CustomProfiles = ProfileSet{
		{Key: "mars", Name: "Mars", Flag: "🔴", Currency: "MRS", Symbol: "M", Origin: OriginUser,
			DefaultRates: Rates{Reference: 2, Street: 1.98, Direct: 1.92, Cross: 1.08, Secondary: 2 / 1.08}},
		{Key: "atlantis", Name: "Atlantis", Flag: "🌊", Currency: "ATL", Symbol: "A", Origin: OriginUser},
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := DefaultSettings()
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, s)
	}
}

func TestProfileSetKeepsDocumentOrder(t *testing.T) {
	var ps ProfileSet
	input := `{"zeta": {"name": "Z"}, "alpha": {"name": "A"}, "mid": {"name": "M"}, "alpha": {"name": "A2"}}`
	if err := json.Unmarshal([]byte(input), &ps); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := make([]string, 0, len(ps))
	for _, p := range ps {
		keys = append(keys, p.Key)
		if p.Origin != OriginUser {
			t.Errorf("profile %s origin = %q, want user", p.Key, p.Origin)
		}
	}
	if strings.Join(keys, ",") != "zeta,alpha,mid" {
		t.Errorf("keys = %v, want zeta,alpha,mid", keys)
	}
	if ps[1].Name != "A2" {
		t.Errorf("duplicate key name = %q, want last write A2", ps[1].Name)
	}
}

func TestProfileSetRejectsNonObject(t *testing.T) {
	var ps ProfileSet
	if err := json.Unmarshal([]byte(`[1, 2]`), &ps); err == nil {
		t.Error("expected error for array input")
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeDark.Toggle() != ThemeLight || ThemeLight.Toggle() != ThemeDark {
		t.Error("Toggle should switch between dark and light")
	}
	if Theme("sepia").Valid() {
		t.Error("unknown theme should be invalid")
	}
}
