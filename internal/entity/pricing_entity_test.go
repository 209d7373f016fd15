package entity

import (
	"testing"
	"time"
)

func TestPricingEntryEffectiveAt(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name  string
		entry PricingEntry
		want  bool
	}{
		{"active with open window", PricingEntry{IsActive: true}, true},
		{"inactive", PricingEntry{IsActive: false}, false},
		{"inside window", PricingEntry{IsActive: true, EffectiveFrom: &past, EffectiveTo: &future}, true},
		{"not yet effective", PricingEntry{IsActive: true, EffectiveFrom: &future}, false},
		{"expired", PricingEntry{IsActive: true, EffectiveTo: &past}, false},
		{"open start with future end", PricingEntry{IsActive: true, EffectiveTo: &future}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.EffectiveAt(now); got != tt.want {
				t.Errorf("EffectiveAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []ConversationCategory{CategoryMarketing, CategoryUtility, CategoryAuthentication, CategoryService} {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false, want true", c)
		}
	}
	if ValidCategory("promotional") {
		t.Error(`ValidCategory("promotional") = true, want false`)
	}
}
