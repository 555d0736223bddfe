package errors

import (
	"fmt"
	"testing"
)

func TestEnhancedErrorBuilder(t *testing.T) {
	t.Parallel()

	base := fmt.Errorf("design matrix has condition number above tolerance")
	ee := New(base).
		Component("fitter").
		Category(CategoryRegression).
		Context("plate", 4055).
		Build()

	if ee.Error() != base.Error() {
		t.Errorf("Error() = %q, want %q", ee.Error(), base.Error())
	}
	if ee.GetComponent() != "fitter" {
		t.Errorf("GetComponent() = %q, want fitter", ee.GetComponent())
	}
	if ee.GetCategory() != string(CategoryRegression) {
		t.Errorf("GetCategory() = %q, want %q", ee.GetCategory(), CategoryRegression)
	}
	if ctx := ee.GetContext(); ctx["plate"] != 4055 {
		t.Errorf("GetContext()[plate] = %v, want 4055", ctx["plate"])
	}
}

func TestCategoryDetectionFromMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  string
		want ErrorCategory
	}{
		{"catalog", "airglow catalog directory is empty", CategoryCatalogLoad},
		{"metadata", "metadata row missing CAMERAS column", CategoryMetadata},
		{"regression", "matrix is rank deficient", CategoryRegression},
		{"validation", "invalid continuum term count", CategoryValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ee := Newf("%s", tt.msg).Build()
			if ee.Category != tt.want {
				t.Errorf("detected category %q, want %q", ee.Category, tt.want)
			}
		})
	}
}

func TestIsCategory(t *testing.T) {
	t.Parallel()

	ee := New(NewStd("db locked")).Category(CategoryDatabase).Build()
	wrapped := fmt.Errorf("saving plate: %w", ee)

	if !IsCategory(wrapped, CategoryDatabase) {
		t.Error("IsCategory should match through wrapping")
	}
	if IsCategory(wrapped, CategoryRegression) {
		t.Error("IsCategory matched the wrong category")
	}
}
