package domain

import "testing"

// Test: Classification table, including tie-breaks between categories
func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"comma separated list of words", CategoryCommaSeparated},
		{"Comma-Delimited numbers", CategoryCommaSeparated},
		{"values separated by a pipe", CategoryPipeSeparated},
		{"tab delimited columns", CategoryTabSeparated},
		{"semicolon separated items", CategorySemicolonSeparated},
		{"a list where each item is on its own line", CategoryItemList},
		{"email addresses", CategoryEmail},
		{"an email or a phone", CategoryEmail},
		{"US phone number", CategoryPhone},
		{"any URL in the text", CategoryURL},
		{"an IP address", CategoryIPAddress},
		{"credit card number", CategoryCreditCard},
		{"social security numbers", CategorySSN},
		{"hex color codes", CategoryHexColor},
		{"a date like 12/25/1990", CategoryDate},
		{"whole numbers", CategoryNumber},
		{"three digit codes", CategoryNumber},
		{"validate numbers", CategoryNumber},
		{"candidate ids made of digits", CategoryNumber},
		{"numbers in a date", CategoryNumber},
		{"update timestamps", CategoryDate},
		{"every word", CategoryWord},
		{"hello.world", CategoryDefault},
		{"", CategoryDefault},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// Test: Same input always yields the same category
func TestClassify_Deterministic(t *testing.T) {
	for _, input := range []string{"email and phone", "comma separated numbers", "zzz"} {
		first := Classify(input)
		for i := 0; i < 10; i++ {
			if got := Classify(input); got != first {
				t.Fatalf("Classify(%q) changed from %s to %s", input, first, got)
			}
		}
	}
}

// Test: Comma without "separated"/"delimited" does not select the comma category
func TestClassify_CommaRequiresSeparator(t *testing.T) {
	if got := Classify("a comma"); got == CategoryCommaSeparated {
		t.Errorf("expected comma alone not to classify as %s", got)
	}
}

// Test: Categories lists rules in order and ends with Default
func TestCategories_Order(t *testing.T) {
	cats := Categories()
	if cats[0] != CategoryCommaSeparated {
		t.Errorf("first category = %s, want %s", cats[0], CategoryCommaSeparated)
	}
	if cats[len(cats)-1] != CategoryDefault {
		t.Errorf("last category = %s, want %s", cats[len(cats)-1], CategoryDefault)
	}

	seen := map[Category]bool{}
	for _, c := range cats {
		if seen[c] {
			t.Errorf("duplicate category %s", c)
		}
		seen[c] = true
	}
}
