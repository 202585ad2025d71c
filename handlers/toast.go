package handlers

import (
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"

	"handymanquotes/logger"
)

// SetToast adds a showToast event to the HX-Trigger response header. Events
// already in the header are kept; a header that is not a JSON object is
// replaced.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			logger.Log.WithError(err).Warn("toast: existing HX-Trigger is not valid JSON, overwriting")
			events = map[string]any{}
		}
	}

	events["showToast"] = map[string]string{
		"message": message,
		"type":    toastType,
	}

	data, err := json.Marshal(events)
	if err != nil {
		logger.Log.WithError(err).Warn("toast: failed to marshal HX-Trigger JSON")
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}

// ErrorToast sets an error toast and answers with HX-Reswap: none so HTMX
// leaves the page as it is while the toast still fires.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
