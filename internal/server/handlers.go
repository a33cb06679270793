package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/mohammed-shakir/geojson-geometry/internal/cache/keys"
	"github.com/mohammed-shakir/geojson-geometry/internal/logger"
	"github.com/mohammed-shakir/geojson-geometry/internal/service"
	"github.com/mohammed-shakir/geojson-geometry/pkg/geojson"
)

const maxDocumentIDs = 100

type handlers struct {
	deps Deps
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx, &h.deps.Log)

	o, err := parseDecodeQuery(r.URL.Query(), h.deps.Base)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dim, err := o.Dim(h.deps.DefaultDim)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.deps.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.deps.Decoder.Decode(ctx, service.Request{
		Body:    body,
		Options: o.Options(geojson.WithLogger(log)),
		Dim:     dim,
	})
	if err != nil {
		log.Error().Err(err).Msg("decode render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !res.OK() {
		log.Debug().Err(res.Err).Msg("decode rejected")
		http.Error(w, res.Err.Error(), http.StatusUnprocessableEntity)
		return
	}

	cache := "miss"
	if res.Cached {
		cache = "hit"
	}
	w.Header().Set("X-Cache", cache)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(res.Body)
}

func (h *handlers) documents(w http.ResponseWriter, r *http.Request) {
	if h.deps.Documents == nil {
		http.Error(w, "document store not configured", http.StatusNotFound)
		return
	}
	var ids []string
	for _, id := range r.URL.Query()["id"] {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		http.Error(w, "missing required parameter: id", http.StatusBadRequest)
		return
	}
	if len(ids) > maxDocumentIDs {
		http.Error(w, "too many ids", http.StatusBadRequest)
		return
	}

	ks := make([]string, len(ids))
	for i, id := range ids {
		ks[i] = keys.Document(id)
	}
	found, err := h.deps.Documents.MGet(r.Context(), ks)
	if err != nil {
		logger.FromContext(r.Context(), &h.deps.Log).Error().Err(err).Msg("document lookup failed")
		http.Error(w, "document store unavailable", http.StatusServiceUnavailable)
		return
	}

	out := struct {
		Documents map[string]json.RawMessage `json:"documents"`
		Missing   []string                   `json:"missing,omitempty"`
	}{Documents: make(map[string]json.RawMessage, len(found))}
	for i, id := range ids {
		if b, ok := found[ks[i]]; ok {
			out.Documents[id] = b
			continue
		}
		out.Missing = append(out.Missing, id)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
