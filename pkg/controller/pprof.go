package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofMux exposes the net/http/pprof handlers on a dedicated ServeMux. The
// API server mounts it under /debug/pprof/; pprof.Index resolves the named
// profiles (heap, goroutine, ...) from that prefix itself, so only the
// non-profile endpoints need explicit routes here.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", pprof.Index)
	for path, handler := range map[string]http.HandlerFunc{
		"/cmdline": pprof.Cmdline,
		"/profile": pprof.Profile,
		"/symbol":  pprof.Symbol,
		"/trace":   pprof.Trace,
	} {
		mux.HandleFunc(path, handler)
	}

	return mux
}
