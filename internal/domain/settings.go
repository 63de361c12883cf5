package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Theme is the presentation colour scheme remembered between sessions.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Valid returns true for known themes.
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// Dates are free-form rate observation dates, one per rate source.
type Dates struct {
	ReferenceDate string `json:"reference_date"`
	DirectDate    string `json:"direct_date"`
	TransferDate  string `json:"transfer_date"`
	CashDate      string `json:"cash_date"`
}

// Settings is the scalar user state persisted between sessions.
type Settings struct {
	ActiveProfile string `json:"active_profile"`
	Inputs
	Theme Theme `json:"theme"`
	Dates
	CustomProfiles ProfileSet `json:"custom_profiles"`

	// Extra keeps unknown top-level keys so they survive a save.
	Extra map[string]json.RawMessage `json:"-"`
}

// DefaultSettings returns the documented defaults used for every missing key.
func DefaultSettings() Settings {
	return Settings{
		ActiveProfile: "georgia",
		Inputs: Inputs{
			Amount: 100,
			Rates: Rates{
				Reference: 3.1595,
				Street:    3.143,
				Direct:    3.02,
				Cross:     1.16,
				Secondary: 2.69,
			},
			Fees: Fees{
				TransferPct: 1.5,
				CashPct:     1.5,
				CashFixed:   1.0,
			},
		},
		Theme: ThemeDark,
	}
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	s.CustomProfiles = slices.Clone(s.CustomProfiles)
	s.Extra = maps.Clone(s.Extra)
	return s
}

type plainSettings Settings

// MarshalJSON writes the known fields and merges back any preserved unknown keys.
func (s Settings) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(plainSettings(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(s.Extra)+16)
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range s.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON overlays the document onto the receiver, so keys absent from
// the document keep whatever value the receiver already holds.
func (s *Settings) UnmarshalJSON(data []byte) error {
	p := plainSettings(s.Clone())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	known := settingsKeys()
	var extra map[string]json.RawMessage
	for k, v := range all {
		if known[k] {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = v
	}

	*s = Settings(p)
	s.Extra = extra
	return nil
}

// settingsKeys returns the JSON names of every known settings field.
func settingsKeys() map[string]bool {
	raw, _ := json.Marshal(plainSettings{})
	var m map[string]json.RawMessage
	_ = json.Unmarshal(raw, &m)
	keys := make(map[string]bool, len(m))
	for k := range m {
		keys[k] = true
	}
	return keys
}

// ProfileSet is an insertion-ordered collection of user profiles encoded as a
// JSON object keyed by profile key.
type ProfileSet []Profile

// MarshalJSON writes the set as an object, preserving order.
func (ps ProfileSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encoding profile %s: %w", p.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of profiles in document order. A repeated key
// replaces the earlier entry in place. JSON null leaves the set unchanged.
func (ps *ProfileSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("custom profiles: expected object, got %v", tok)
	}

	var out ProfileSet
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var p Profile
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("custom profile %s: %w", key, err)
		}
		p.Key = key
		p.Origin = OriginUser

		if i := slices.IndexFunc(out, func(e Profile) bool { return e.Key == key }); i >= 0 {
			out[i] = p
			continue
		}
		out = append(out, p)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*ps = out
	return nil
}
