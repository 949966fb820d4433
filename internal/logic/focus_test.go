package logic

import "testing"

func TestClassifyFocus(t *testing.T) {
	tests := []struct {
		name string
		text string
		want FocusArea
	}{
		{"debt keywords", "my credit card debt keeps growing", FocusDebts},
		{"business keywords", "I want to find my first client", FocusBusiness},
		{"job keywords", "my boss passed me over for the promotion", FocusJobs},
		{"time keywords", "my schedule is packed and I'm always busy", FocusTimeAudit},
		{"necessity keywords", "is this subscription something I actually need", FocusNecessityTest},
		{"no match", "good morning", FocusGeneral},
		{"empty input", "", FocusGeneral},
		{"whitespace only", "   ", FocusGeneral},
		{"case insensitive", "MY LOAN PAYMENT IS DUE", FocusDebts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyFocus(tt.text); got != tt.want {
				t.Errorf("ClassifyFocus(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// A message matching two categories always resolves to the earlier rule.
func TestClassifyFocus_Precedence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want FocusArea
	}{
		{"debts beats business", "I took a loan to fund my business", FocusDebts},
		{"debts beats jobs", "my salary barely covers the debt", FocusDebts},
		{"business beats jobs", "leaving my job to start a company", FocusBusiness},
		{"jobs beats time audit", "work eats every hour I have", FocusJobs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyFocus(tt.text); got != tt.want {
				t.Errorf("ClassifyFocus(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidFocus(t *testing.T) {
	for _, area := range []FocusArea{FocusDebts, FocusBusiness, FocusJobs, FocusTimeAudit, FocusNecessityTest, FocusGeneral} {
		if !ValidFocus(string(area)) {
			t.Errorf("expected %q to be valid", area)
		}
	}
	if ValidFocus("astrology") {
		t.Error("expected unknown focus to be invalid")
	}
}
