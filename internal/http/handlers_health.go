package httpx

import "net/http"

// healthHandler reports process liveness. It deliberately does not probe the
// commerce backend: a backend outage should surface as 502s on real routes,
// not as a restart loop.
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
