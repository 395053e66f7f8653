package httpapi

import (
	"encoding/json"
	"net/http"
)

type HealthHandler struct{}

// Health is the liveness probe the desktop shell polls while waiting for
// the engine to come up after launch.
func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":      true,
		"service": "opsdesk-engine",
	})
}
