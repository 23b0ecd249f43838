package docgen

import "testing"

func TestClassifierDefaults(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier()

	cases := []struct {
		expression string
		want       Category
	}{
		{"string", CategoryText},
		{"String", CategoryText},
		{" number ", CategoryNumber},
		{"bigint", CategoryNumber},
		{"boolean", CategoryBoolean},
		{"Date", CategoryTemporal},
		{"timestamp", CategoryTemporal},
		{"Profile", CategoryStructured},
		{"string[]", CategoryStructured},
		{"", CategoryStructured},
	}
	for _, tc := range cases {
		if got := classifier.Classify(tc.expression); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.expression, got, tc.want)
		}
	}
}

func TestClassifierOverrides(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier(
		WithToken("UUID", CategoryText),
		WithTokens(map[string]Category{
			"decimal": CategoryNumber,
			"string":  CategoryStructured,
		}),
	)

	if got := classifier.Classify("uuid"); got != CategoryText {
		t.Fatalf("Classify(uuid) = %q, want %q", got, CategoryText)
	}
	if got := classifier.Classify("Decimal"); got != CategoryNumber {
		t.Fatalf("Classify(Decimal) = %q, want %q", got, CategoryNumber)
	}
	if got := classifier.Classify("string"); got != CategoryStructured {
		t.Fatalf("Classify(string) = %q, want %q", got, CategoryStructured)
	}

	// Overrides stay local to the constructed classifier.
	if got := NewClassifier().Classify("string"); got != CategoryText {
		t.Fatalf("default classifier changed: Classify(string) = %q", got)
	}
}
