package api

import (
	"encoding/json"
	"net/http"

	"git.sr.ht/~spc/go-log"
	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/strfmt"

	"github.com/iamadya/admybrand-insights-dashboard/internal/metrics"
	"github.com/iamadya/admybrand-insights-dashboard/internal/poller"
	"github.com/iamadya/admybrand-insights-dashboard/internal/visibility"
)

//go:generate mockgen -package=api -destination=mock_poller.go . Poller
type Poller interface {
	Snapshot() metrics.Snapshot
	State() poller.State
	Start()
	Stop()
	Refresh()
}

// VisibilitySetter is implemented by sources that can be switched by hand.
type VisibilitySetter interface {
	visibility.Source
	Set(state visibility.State)
}

type SnapshotResponse struct {
	ID         string           `json:"id,omitempty"`
	Timestamp  *strfmt.DateTime `json:"timestamp,omitempty"`
	Metrics    []metrics.Metric `json:"metrics"`
	IsLoading  bool             `json:"isLoading"`
	Error      string           `json:"error,omitempty"`
	State      poller.State     `json:"state"`
	Visibility visibility.State `json:"visibility,omitempty"`
}

type DashboardHandler struct {
	poller Poller
	source visibility.Source
}

// NewDashboardHandler accepts a nil source when visibility is not tracked.
func NewDashboardHandler(p Poller, source visibility.Source) *DashboardHandler {
	return &DashboardHandler{poller: p, source: source}
}

func (h *DashboardHandler) GetSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := h.poller.Snapshot()

	res := SnapshotResponse{
		ID:        snapshot.ID,
		Metrics:   snapshot.Metrics,
		IsLoading: snapshot.IsLoading,
		Error:     snapshot.Error,
		State:     h.poller.State(),
	}
	if res.Metrics == nil {
		res.Metrics = []metrics.Metric{}
	}
	if !snapshot.Timestamp.IsZero() {
		ts := strfmt.DateTime(snapshot.Timestamp)
		res.Timestamp = &ts
	}
	if h.source != nil {
		res.Visibility = h.source.Current()
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *DashboardHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	h.poller.Refresh()
	w.WriteHeader(http.StatusAccepted)
}

func (h *DashboardHandler) StartHandler(w http.ResponseWriter, r *http.Request) {
	h.poller.Start()
	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHandler) StopHandler(w http.ResponseWriter, r *http.Request) {
	h.poller.Stop()
	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHandler) SetVisibilityHandler(w http.ResponseWriter, r *http.Request) {
	setter, ok := h.source.(VisibilitySetter)
	if !ok {
		http.Error(w, "visibility cannot be changed through the API", http.StatusConflict)
		return
	}

	state, err := visibility.ParseState(chi.URLParam(r, "state"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	setter.Set(state)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("cannot encode response: %v", err)
	}
}
