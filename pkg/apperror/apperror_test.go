package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not_found", err: NotFound("batch with id %d not found", 7), expected: http.StatusNotFound},
		{name: "bad_request", err: BadRequest("quantity must be positive"), expected: http.StatusBadRequest},
		{name: "conflict", err: Conflict("rack A-01 is already occupied"), expected: http.StatusConflict},
		{name: "unprocessable", err: Unprocessable("requested quantity exceeds available"), expected: http.StatusUnprocessableEntity},
		{name: "plain_error", err: errors.New("boom"), expected: http.StatusInternalServerError},
		{name: "wrapped", err: fmt.Errorf("handler: %w", Conflict("busy")), expected: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestErrorsIsAgainstSentinels(t *testing.T) {
	err := Unprocessable("placement quantity (%d) exceeds available quantity (%d)", 80, 70)

	if !errors.Is(err, ErrUnprocessable) {
		t.Error("Expected errors.Is match against ErrUnprocessable")
	}
	if errors.Is(err, ErrConflict) {
		t.Error("Unexpected errors.Is match against ErrConflict")
	}

	wrapped := fmt.Errorf("reallocate: %w", err)
	if !errors.Is(wrapped, ErrUnprocessable) {
		t.Error("Expected wrapped error to match ErrUnprocessable")
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("record not found")
	err := Wrap(KindNotFound, cause, "allocation lookup failed")

	if !errors.Is(err, cause) {
		t.Error("Expected wrapped error to unwrap to cause")
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("Expected KindNotFound, got %v", KindOf(err))
	}
	if err.Error() != "allocation lookup failed: record not found" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("Expected KindUnknown for plain errors")
	}
	if KindOf(BadRequest("nope")) != KindBadRequest {
		t.Error("Expected KindBadRequest")
	}
}
