package application

import "testing"

func TestValidationError_Merge(t *testing.T) {
	base := &ValidationError{}
	base.add("name", "name is required")

	other := &ValidationError{}
	other.add("endDate", "end date is required")

	base.merge(other)
	base.merge(nil)

	if len(base.FieldErrors) != 2 {
		t.Fatalf("expected 2 field errors, got %v", base.FieldErrors)
	}
	if base.FieldErrors["endDate"] != "end date is required" {
		t.Fatalf("expected merged end date error, got %v", base.FieldErrors)
	}
	if !base.HasErrors() {
		t.Fatal("expected merged error to report issues")
	}
}
