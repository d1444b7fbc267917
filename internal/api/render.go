package api

import (
	"encoding/json"
	"net/http"
)

// geoJSON renders a value as JSON with the GeoJSON media type.
type geoJSON struct {
	data any
}

func (g geoJSON) Render(w http.ResponseWriter) error {
	g.WriteContentType(w)
	return json.NewEncoder(w).Encode(g.data)
}

func (g geoJSON) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if len(header["Content-Type"]) == 0 {
		header["Content-Type"] = []string{geoJSONContentType}
	}
}
