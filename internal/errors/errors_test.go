package errors

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, ""},
		{"simple error", errors.New("storage not loaded"), "Error: storage not loaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("goal %q not found", "Run")
	want := `Error: goal "Run" not found`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestSaveWarning(t *testing.T) {
	if got := SaveWarning(nil); got != "" {
		t.Errorf("SaveWarning(nil) = %q, want empty", got)
	}
	if got := SaveWarning(errors.New("disk full")); got == "" {
		t.Error("SaveWarning should return a message for a non-nil error")
	}
}
