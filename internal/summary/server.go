package summary

import (
	"encoding/json"
	"net/http"

	golog "github.com/tochemey/goakt/v3/log"
)

// maxBodyBytes caps the size of a posted record.
const maxBodyBytes = 1 << 16

// Handler serves POST /data and appends every decoded record to a store.
type Handler struct {
	store  Appender
	logger golog.Logger
}

// NewHandler returns a handler writing to store. A nil logger discards.
func NewHandler(store Appender, logger golog.Logger) *Handler {
	if logger == nil {
		logger = golog.DiscardLogger
	}
	return &Handler{store: store, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var rec Record
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&rec); err != nil {
		h.logger.Warnf("%s /data: unable to parse record: %v", r.RemoteAddr, err)
		http.Error(w, "invalid record: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.Append(rec); err != nil {
		h.logger.Errorf("%s /data: %v", r.RemoteAddr, err)
		http.Error(w, "unable to store record", http.StatusInternalServerError)
		return
	}
	h.logger.Infof("%s /data: %+v", r.RemoteAddr, rec)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}

// NewServeMux routes /data to h and, when staticDir is set, serves files
// from it at /.
func NewServeMux(h *Handler, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/data", h)
	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}
	return mux
}
