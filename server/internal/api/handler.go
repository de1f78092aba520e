package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kinitsZ/HybridAI-System/pkg/dataset"
	"github.com/kinitsZ/HybridAI-System/pkg/metrics"
	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/synth"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
	"github.com/kinitsZ/HybridAI-System/server/internal/alerts"
	"github.com/kinitsZ/HybridAI-System/server/internal/store"
)

// maxBodyBytes bounds request bodies. A batch record is well under 512 bytes.
const maxBodyBytes = 8 << 20

// Limits bounds the work a single request may ask for.
type Limits struct {
	BatchMaxRecords   int
	BatchWorkers      int
	DatasetMaxRecords int
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	store   *store.Store
	metrics *metrics.Recorder
	alerts  *alerts.Engine
	limits  Limits
	mux     *http.ServeMux
}

// New creates a Handler wired to the given dataset store, metrics recorder
// and alert engine and registers all routes.
func New(st *store.Store, rec *metrics.Recorder, eng *alerts.Engine, limits Limits) http.Handler {
	h := &Handler{store: st, metrics: rec, alerts: eng, limits: limits, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/rules", h.rules)
	h.mux.HandleFunc("/api/v1/score", h.score)
	h.mux.HandleFunc("/api/v1/score/batch", h.scoreBatch)
	h.mux.HandleFunc("/api/v1/datasets", h.datasets)
	h.mux.HandleFunc("/api/v1/datasets/", h.getDataset) // subtree: {id} and {id}/csv
	h.mux.HandleFunc("/api/v1/alerts", h.listAlerts)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{Status: "ok", DatasetCount: len(h.store.List())})
}

// rules returns GET /api/v1/rules: the contribution table and level bands.
func (h *Handler) rules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, RulesResponse{
		Rules: stress.Rules,
		Levels: []LevelBand{
			{Level: types.LevelLow, Min: stress.MinScore, Max: stress.LowMax},
			{Level: types.LevelMedium, Min: stress.LowMax + 1, Max: stress.MediumMax},
			{Level: types.LevelHigh, Min: stress.MediumMax + 1, Max: stress.MaxScore},
		},
	})
}

// score handles POST /api/v1/score for a single record.
func (h *Handler) score(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body map[string]json.RawMessage
	if err := decodeBody(w, r, &body); err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := parseRecord(body)
	if err != nil {
		h.invalid(w, err)
		return
	}
	res, err := stress.Score(rec)
	if err != nil {
		h.invalid(w, err)
		return
	}

	h.metrics.ObserveScored(types.ScoredRecord{WorkloadRecord: rec, Score: res.Score, Level: res.Level})
	jsonResp(w, http.StatusOK, toScoreResponse(rec, res))
}

// scoreBatch handles POST /api/v1/score/batch. Results keep request order;
// the first invalid record fails the whole batch.
func (h *Handler) scoreBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body struct {
		Records []map[string]json.RawMessage `json:"records"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(body.Records) > h.limits.BatchMaxRecords {
		jsonErr(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("batch of %d records exceeds limit of %d", len(body.Records), h.limits.BatchMaxRecords))
		return
	}

	records := make([]types.WorkloadRecord, len(body.Records))
	for i, raw := range body.Records {
		rec, err := parseRecord(raw)
		if err != nil {
			h.invalid(w, withIndex(err, i))
			return
		}
		records[i] = rec
	}

	start := time.Now()
	scored, err := stress.ScoreBatchConcurrent(r.Context(), records, h.limits.BatchWorkers)
	if err != nil {
		if errors.Is(err, stress.ErrInvalidAttribute) {
			h.invalid(w, err)
			return
		}
		jsonErr(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.metrics.ObserveBatch("batch", start)
	h.metrics.ObserveScored(scored...)

	out := BatchResponse{Results: make([]ScoreResponse, len(scored))}
	for i, sr := range scored {
		// Re-derive contributions; scoring is pure so this matches the batch.
		res, _ := stress.Score(sr.WorkloadRecord)
		out.Results[i] = toScoreResponse(sr.WorkloadRecord, res)
	}
	jsonResp(w, http.StatusOK, out)
}

// datasets handles GET (list) and POST (generate) on /api/v1/datasets.
func (h *Handler) datasets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		jsonResp(w, http.StatusOK, BuildDatasets(h.store).Datasets)

	case http.MethodPost:
		h.createDataset(w, r)

	default:
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) createDataset(w http.ResponseWriter, r *http.Request) {
	var req datasetRequest
	if err := decodeBody(w, r, &req); err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Records == 0 {
		req.Records = synth.DefaultRecords
	}
	if req.Records < 0 {
		jsonErr(w, http.StatusBadRequest, "records must be positive")
		return
	}
	if req.Records > h.limits.DatasetMaxRecords {
		jsonErr(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("dataset of %d records exceeds limit of %d", req.Records, h.limits.DatasetMaxRecords))
		return
	}
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	start := time.Now()
	scored, err := stress.ScoreBatchConcurrent(r.Context(), synth.New(seed).Generate(req.Records), h.limits.BatchWorkers)
	if err != nil {
		// Generated records are always in range; only cancellation lands here.
		jsonErr(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.metrics.ObserveBatch("dataset", start)
	h.metrics.ObserveScored(scored...)

	ds := h.store.Add(seed, scored)
	h.metrics.DatasetsHeld.Set(float64(h.store.Count()))
	slog.Info("api: dataset generated", "id", ds.ID, "seed", seed, "records", len(scored))
	h.alerts.Evaluate(ds.ID, ds.Summary)

	jsonResp(w, http.StatusCreated, toDatasetResponse(ds))
}

// getDataset returns GET /api/v1/datasets/{id} or /api/v1/datasets/{id}/csv.
func (h *Handler) getDataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/datasets/")
	if rest == "" {
		h.datasets(w, r)
		return
	}
	id, sub, _ := strings.Cut(rest, "/")
	if sub != "" && sub != "csv" {
		jsonErr(w, http.StatusNotFound, "not found")
		return
	}

	ds, ok := h.store.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "dataset not found")
		return
	}

	if sub == "csv" {
		writeCSV(w, r, ds)
		return
	}
	jsonResp(w, http.StatusOK, DatasetDetailResponse{
		DatasetResponse: toDatasetResponse(ds),
		Data:            ds.Records,
	})
}

// listAlerts returns GET /api/v1/alerts: firing alerts and those resolved
// within the past hour.
func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.alerts.Active())
}

// BuildDatasets summarises every live dataset in st, oldest first. It backs
// GET /api/v1/datasets and the WebSocket stream.
func BuildDatasets(st *store.Store) DatasetsSnapshot {
	list := st.List()
	out := DatasetsSnapshot{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Datasets:    make([]DatasetResponse, 0, len(list)),
	}
	for _, ds := range list {
		out.Datasets = append(out.Datasets, toDatasetResponse(ds))
	}
	return out
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// invalid writes 422 for an InvalidAttributeError, 400 for anything else.
func (h *Handler) invalid(w http.ResponseWriter, err error) {
	h.metrics.ObserveError(err)

	var ie *stress.InvalidAttributeError
	if !errors.As(err, &ie) {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := errorResponse{Error: ie.Error(), Attribute: ie.Attribute, Reason: ie.Reason}
	if ie.Index >= 0 {
		idx := ie.Index
		resp.Index = &idx
	}
	jsonResp(w, http.StatusUnprocessableEntity, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// parseRecord builds a WorkloadRecord from a JSON object keyed by the
// lower-cased attribute names. Every attribute must be present as an integer
// (a numeric string is accepted); faculty_id is optional.
func parseRecord(raw map[string]json.RawMessage) (types.WorkloadRecord, error) {
	var rec types.WorkloadRecord
	if id, ok := raw["faculty_id"]; ok {
		if err := json.Unmarshal(id, &rec.FacultyID); err != nil {
			return rec, fmt.Errorf("faculty_id must be a string")
		}
	}
	for _, a := range types.AllAttributes {
		msg, ok := raw[a.JSONKey()]
		if !ok {
			return rec, &stress.InvalidAttributeError{Attribute: a, Reason: stress.ReasonMissing, Index: -1}
		}
		var n json.Number
		if err := json.Unmarshal(msg, &n); err != nil {
			return rec, &stress.InvalidAttributeError{Attribute: a, Value: string(msg), Reason: stress.ReasonNotInteger, Index: -1}
		}
		v, err := stress.ParseAttribute(a, n.String())
		if err != nil {
			return rec, err
		}
		rec = rec.With(a, v)
	}
	return rec, nil
}

// withIndex sets the batch position on an InvalidAttributeError.
func withIndex(err error, i int) error {
	var ie *stress.InvalidAttributeError
	if errors.As(err, &ie) {
		ie.Index = i
	}
	return err
}

func writeCSV(w http.ResponseWriter, r *http.Request, ds *store.Dataset) {
	labeled := r.URL.Query().Get("labels") != "false"
	name := dataset.DefaultLabeledFile
	if !labeled {
		name = dataset.DefaultUnlabeledFile
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s"`, ds.ID, name))
	w.WriteHeader(http.StatusOK)

	var err error
	if labeled {
		err = dataset.WriteLabeled(w, ds.Records)
	} else {
		plain := make([]types.WorkloadRecord, len(ds.Records))
		for i, sr := range ds.Records {
			plain[i] = sr.WorkloadRecord
		}
		err = dataset.WriteUnlabeled(w, plain)
	}
	if err != nil {
		slog.Warn("api: csv export failed", "id", ds.ID, "err", err)
	}
}

func toScoreResponse(rec types.WorkloadRecord, res stress.Result) ScoreResponse {
	contribs := make([]ContributionResponse, 0, len(res.Contributions))
	for i, p := range res.Contributions {
		a := types.AllAttributes[i]
		contribs = append(contribs, ContributionResponse{Attribute: a, Value: rec.Value(a), Points: p})
	}
	drivers := computeDrivers(rec, res.Contributions)
	if drivers == nil {
		drivers = []Driver{}
	}
	return ScoreResponse{
		Record:        rec,
		WSS:           res.Score,
		StressLevel:   res.Level,
		Contributions: contribs,
		Drivers:       drivers,
	}
}

func toDatasetResponse(ds *store.Dataset) DatasetResponse {
	return DatasetResponse{
		ID:        ds.ID,
		Seed:      ds.Seed,
		Records:   len(ds.Records),
		CreatedAt: ds.CreatedAt.UTC().Format(time.RFC3339),
		Summary:   ds.Summary,
	}
}
