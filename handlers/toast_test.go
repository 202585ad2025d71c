package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

func newToastEvent() (*core.RequestEvent, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	return e, rec
}

// parseToast decodes the showToast payload of an HX-Trigger header.
func parseToast(t *testing.T, header string) map[string]string {
	t.Helper()
	if header == "" {
		t.Fatal("expected HX-Trigger header to be set")
	}
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(header), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	raw, ok := parsed["showToast"]
	if !ok {
		t.Fatal("expected showToast key in HX-Trigger JSON")
	}
	var toast map[string]string
	if err := json.Unmarshal(raw, &toast); err != nil {
		t.Fatalf("showToast is not valid JSON: %v", err)
	}
	return toast
}

func TestSetToast(t *testing.T) {
	tests := []struct {
		name      string
		toastType string
		message   string
	}{
		{"success", "success", "Quote #3 saved"},
		{"error", "error", "Quote not found"},
		{"quotes", "info", `Job "Tile install" priced`},
		{"markup", "warning", `<script>alert("x")</script>`},
		{"newline", "info", "line1\nline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newToastEvent()

			SetToast(e, tt.toastType, tt.message)

			toast := parseToast(t, rec.Header().Get("HX-Trigger"))
			if toast["type"] != tt.toastType {
				t.Errorf("expected type %q, got %q", tt.toastType, toast["type"])
			}
			if toast["message"] != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, toast["message"])
			}
		})
	}
}

func TestSetToast_MergesWithExisting(t *testing.T) {
	e, rec := newToastEvent()
	rec.Header().Set("HX-Trigger", `{"quotesChanged":{"id":"4"}}`)

	SetToast(e, "success", "Quote #4 marked won")

	trigger := rec.Header().Get("HX-Trigger")
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trigger), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := parsed["quotesChanged"]; !ok {
		t.Error("expected existing event to be preserved after merge")
	}
	if toast := parseToast(t, trigger); toast["message"] != "Quote #4 marked won" {
		t.Errorf("unexpected toast message %q", toast["message"])
	}
}

func TestSetToast_OverwritesInvalidExisting(t *testing.T) {
	e, rec := newToastEvent()
	rec.Header().Set("HX-Trigger", "notValidJSON")

	SetToast(e, "error", "Overwritten")

	if toast := parseToast(t, rec.Header().Get("HX-Trigger")); toast["message"] != "Overwritten" {
		t.Errorf("unexpected toast message %q", toast["message"])
	}
}

func TestSetToast_HeaderOnly(t *testing.T) {
	e, rec := newToastEvent()

	SetToast(e, "success", "Quote #1 deleted")

	if cookies := rec.Result().Cookies(); len(cookies) != 0 {
		t.Errorf("toasts travel in HX-Trigger only, got cookies %v", cookies)
	}
}

func TestErrorToast(t *testing.T) {
	tests := []struct {
		name string
		code int
		msg  string
	}{
		{"bad request", http.StatusBadRequest, "Invalid quote ID"},
		{"not found", http.StatusNotFound, "Quote not found"},
		{"unavailable", http.StatusServiceUnavailable, "Quote store is unavailable"},
		{"server error", http.StatusInternalServerError, "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, rec := newToastEvent()

			if err := ErrorToast(e, tt.code, tt.msg); err != nil {
				t.Fatalf("ErrorToast returned error: %v", err)
			}

			if rec.Code != tt.code {
				t.Errorf("expected status %d, got %d", tt.code, rec.Code)
			}
			if rec.Header().Get("HX-Reswap") != "none" {
				t.Error("expected HX-Reswap: none")
			}
			if rec.Body.String() != tt.msg {
				t.Errorf("expected body %q, got %q", tt.msg, rec.Body.String())
			}
			if toast := parseToast(t, rec.Header().Get("HX-Trigger")); toast["type"] != "error" {
				t.Errorf("expected error toast, got %q", toast["type"])
			}
		})
	}
}
