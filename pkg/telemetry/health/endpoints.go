package health

import (
	"encoding/json"
	"net/http"
	"runtime"
)

// VersionInfo is the body of the /version response.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

// LivenessHandler answers 200 while the process runs.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, c.CheckLiveness(r.Context()))
	}
}

// ReadinessHandler answers 200 when every check passes and 503 otherwise:
//
//	{
//	  "status": "degraded",
//	  "checks": {
//	    "models_dir": {"status": "ok"},
//	    "last_run": {"status": "unhealthy", "message": "no lint run completed yet"}
//	  },
//	  "timestamp": "2026-10-17T10:30:00Z"
//	}
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := c.CheckReadiness(r.Context())
		code := http.StatusOK
		if status.Status != StatusReady {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, r, code, status)
	}
}

// VersionHandler answers with the build version.
func VersionHandler(version, commit string) http.HandlerFunc {
	info := VersionInfo{Version: version, Commit: commit, GoVersion: runtime.Version()}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, info)
	}
}

// Register mounts /health, /ready and /version on mux for GET and HEAD.
// Other methods get 405 from the mux.
func Register(mux *http.ServeMux, checker *Checker, version, commit string) {
	mux.Handle("GET /health", checker.LivenessHandler())
	mux.Handle("GET /ready", checker.ReadinessHandler())
	mux.Handle("GET /version", VersionHandler(version, commit))
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
