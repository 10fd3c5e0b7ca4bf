package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/maksimkurb/configurator/src/internal/coerce"
	"github.com/maksimkurb/configurator/src/internal/config"
	"github.com/maksimkurb/configurator/src/internal/log"
)

// Handler serves the configuration of one engine.
type Handler struct {
	engine *config.Engine
	// The engine does not serialise Save; concurrent requests must not
	// interleave their read-modify-write.
	saveMu sync.Mutex
}

// NewHandler creates a new API handler for engine.
func NewHandler(engine *config.Engine) *Handler {
	return &Handler{engine: engine}
}

// GetConfig returns the whole typed configuration.
// GET /api/v1/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	doc, err := h.engine.Load()
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	writeJSONData(w, ConfigResponse(doc.Natives()))
}

// GetSection returns one section.
// GET /api/v1/config/{section}
func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	if _, ok := h.engine.Schema()[name]; !ok {
		WriteNotFound(w, "section "+name)
		return
	}

	doc, err := h.engine.Load()
	if err != nil {
		WriteEngineError(w, err)
		return
	}
	writeJSONData(w, SectionResponse(doc[name].Natives()))
}

// UpdateSection replaces one section. The body must carry every key of the
// section; values may be JSON natives or strings.
// PUT /api/v1/config/{section}
func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	schema := h.engine.Schema()
	keys, ok := schema[name]
	if !ok {
		WriteNotFound(w, "section "+name)
		return
	}

	var body map[string]interface{}
	if err := decodeJSON(r, &body); err != nil {
		WriteInvalidRequest(w, "Invalid JSON: "+err.Error())
		return
	}

	section := make(config.Section, len(body))
	for key, raw := range body {
		typ, declared := keys[key]
		if !declared {
			WriteValidationError(w, "Unknown key: "+key, map[string]interface{}{
				"section": name,
				"key":     key,
			})
			return
		}
		v, err := coerce.Native(raw, typ)
		if err != nil {
			WriteEngineError(w, locateErr(err, name, key))
			return
		}
		section[key] = v
	}

	h.saveMu.Lock()
	err := h.engine.Save(config.Document{name: section})
	h.saveMu.Unlock()
	if err != nil {
		WriteEngineError(w, err)
		return
	}

	log.Infof("Updated section %s in %s", name, h.engine.Location())
	writeJSONData(w, SectionResponse(section.Natives()))
}

// GetSchema returns the declared schema with type names.
// GET /api/v1/schema
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	writeJSONData(w, SchemaResponse(h.engine.Schema().TypeNames()))
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// decodeJSON decodes JSON from the request body. Numbers are kept as
// json.Number so that large integers are not rounded.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}
