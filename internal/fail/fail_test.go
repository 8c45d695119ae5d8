package fail

import (
	"errors"
	"fmt"
	"testing"
)

type testError struct{ code ExitCode }

func (e testError) Error() string      { return "test error" }
func (e testError) ExitCode() ExitCode { return e.code }

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{"nil", nil, Success},
		{"plain", errors.New("boom"), UnknownError},
		{"coded", testError{code: FileSystemError}, FileSystemError},
		{"wrapped coded", fmt.Errorf("outer: %w", testError{code: ConfigurationError}), ConfigurationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFriendly(t *testing.T) {
	if IsUserFriendly(errors.New("opaque")) {
		t.Error("plain error should not be user friendly")
	}
	if !IsUserFriendly(fmt.Errorf("wrap: %w", testError{code: UnknownError})) {
		t.Error("wrapped coded error should be user friendly")
	}
}

type opaqueError struct{ testError }

func (e opaqueError) Opaque() bool { return true }

func TestIsUserFriendly_Opaque(t *testing.T) {
	err := fmt.Errorf("wrap: %w", opaqueError{testError{code: FileSystemError}})
	if IsUserFriendly(err) {
		t.Error("opaque coded error should not be user friendly")
	}
	if CodeOf(err) != FileSystemError {
		t.Errorf("CodeOf() = %v, want FileSystemError", CodeOf(err))
	}
}

func TestExitCode_String(t *testing.T) {
	if got := FileSystemError.String(); got != "FileSystemError" {
		t.Errorf("String() = %q, want %q", got, "FileSystemError")
	}
	if got := ExitCode(42).String(); got != "ExitCode(?)" {
		t.Errorf("String() = %q, want %q", got, "ExitCode(?)")
	}
}
