package httpx

import "net/http"

// healthHandler reports process liveness. There is no backing store to
// probe, so reachable means healthy.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
