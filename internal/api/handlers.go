package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rshade/feedprint/internal/dataset"
	"github.com/rshade/feedprint/internal/footprint"
	"github.com/rshade/feedprint/internal/logging"
	"github.com/rshade/feedprint/internal/observability"
	"github.com/rshade/feedprint/internal/origins"
	"github.com/rshade/feedprint/internal/ranking"
	"github.com/rshade/feedprint/internal/report"
)

// geoJSONContentType is the media type of GeoJSON responses.
const geoJSONContentType = "application/geo+json"

// errBadRequest marks malformed query parameters or bodies.
var errBadRequest = errors.New("bad request")

// errIngredientNotFound marks an ingredient name missing from the table.
var errIngredientNotFound = errors.New("ingredient not found")

// FootprintRequest is the body of POST /v1/footprint. Unset fields are
// taken from the base scenario (the first one when Scenario is empty).
type FootprintRequest struct {
	Scenario         string          `json:"scenario"`
	Blend            footprint.Blend `json:"blend"`
	TotalFeedMassKg  *float64        `json:"total_feed_mass_kg"`
	FCR              *float64        `json:"fcr"`
	OutputKg         *float64        `json:"output_kg"`
	ProductionTonnes *float64        `json:"production_tonnes"`
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrScenarioNotFound),
		errors.Is(err, errIngredientNotFound),
		errors.Is(err, report.ErrMissingComparison):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, footprint.ErrInvalidScalar),
		errors.Is(err, footprint.ErrDuplicateBlendKey),
		errors.Is(err, footprint.ErrEmptyIngredientTable),
		errors.Is(err, ranking.ErrUnknownMetric),
		errors.Is(err, report.ErrUnknownFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error().Err(err).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) builder(c *gin.Context) *report.Builder {
	return report.NewBuilder(s.clock, logging.TraceIDFromContext(c.Request.Context()), s.data.Name)
}

// evaluate runs a scenario and records the computation.
func (s *Server) evaluate(c *gin.Context, sc dataset.Scenario, kind string) (dataset.Evaluation, error) {
	ev, err := s.data.Evaluate(sc)
	if err != nil {
		return dataset.Evaluation{}, err
	}
	unresolved := ev.PerTonne.WarningsOf(footprint.WarningUnresolvedBlendKey)
	s.metrics.ObserveComputation(kind, len(unresolved))
	if len(ev.PerTonne.Warnings) > 0 {
		l := logging.FromContext(c.Request.Context())
		for _, w := range ev.PerTonne.Warnings {
			l.Warn().Str("kind", w.Kind.String()).Str("key", w.Key).Msg(w.Message)
		}
	}
	return ev, nil
}

func (s *Server) scenarioFromQuery(c *gin.Context) (dataset.Scenario, error) {
	return s.data.Scenario(c.Query("scenario"))
}

func queryFloat(c *gin.Context, name string) (float64, bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, raw)
	}
	return v, true, nil
}

// GET /v1/ingredients
func (s *Server) handleIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, s.builder(c).Ingredients(s.data.Ingredients))
}

// GET /v1/ingredients/:name
func (s *Server) handleIngredient(c *gin.Context) {
	name := c.Param("name")
	ing, ok := s.data.Ingredients.Lookup(name)
	if !ok {
		s.fail(c, fmt.Errorf("%w: %q", errIngredientNotFound, name))
		return
	}
	c.JSON(http.StatusOK, ing)
}

// GET /v1/scenarios
func (s *Server) handleScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"scenarios": s.data.Scenarios,
		"meta":      gin.H{"count": len(s.data.Scenarios)},
	})
}

// GET /v1/footprint?scenario=
func (s *Server) handleFootprint(c *gin.Context) {
	sc, err := s.scenarioFromQuery(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	ev, err := s.evaluate(c, sc, observability.KindPerTonne)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.builder(c).Footprint(ev))
}

// POST /v1/footprint
func (s *Server) handleFootprintPost(c *gin.Context) {
	var req FootprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}

	sc, err := s.data.Scenario(req.Scenario)
	if err != nil {
		s.fail(c, err)
		return
	}
	sc = req.apply(sc)

	ev, err := s.evaluate(c, sc, observability.KindPerTonne)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.builder(c).Footprint(ev))
}

// apply overlays the request's fields onto a base scenario.
func (r FootprintRequest) apply(sc dataset.Scenario) dataset.Scenario {
	if r.Blend != nil {
		sc.Blend = r.Blend
	}
	if r.FCR != nil {
		sc.FCR = *r.FCR
		sc.TotalFeedMassKg = 0
	}
	if r.OutputKg != nil {
		sc.OutputKg = *r.OutputKg
	}
	if r.TotalFeedMassKg != nil {
		sc.TotalFeedMassKg = *r.TotalFeedMassKg
	}
	if r.ProductionTonnes != nil {
		sc.ProductionTonnes = *r.ProductionTonnes
	}
	return sc
}

// GET /v1/national?scenario=&production_tonnes=
func (s *Server) handleNational(c *gin.Context) {
	sc, err := s.scenarioFromQuery(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	tonnes, ok, err := queryFloat(c, "production_tonnes")
	if err != nil {
		s.fail(c, err)
		return
	}
	if ok {
		sc.ProductionTonnes = tonnes
	}

	ev, err := s.evaluate(c, sc, observability.KindNational)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.builder(c).National(ev, s.data.AreaComparisons))
}

// GET /v1/compare?scenario=&sort=co2:asc
func (s *Server) handleCompare(c *gin.Context) {
	metric, order, err := ranking.ParseSortExpression(c.Query("sort"))
	if err != nil {
		s.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	sc, err := s.scenarioFromQuery(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	ev, err := s.evaluate(c, sc, observability.KindRanking)
	if err != nil {
		s.fail(c, err)
		return
	}
	rows := s.data.Ranking(ev, metric, order)
	c.JSON(http.StatusOK, s.builder(c).Compare(ev, rows, metric, order))
}

// GET /v1/origins?metric=co2|land&format=json|geojson
func (s *Server) handleOrigins(c *gin.Context) {
	metric, err := ranking.ParseMetric(c.Query("metric"))
	if err != nil {
		s.fail(c, err)
		return
	}

	flows := origins.Flows(s.data.Ingredients, s.data.Destination, metric)
	s.metrics.ObserveComputation(observability.KindOrigins, 0)

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, s.builder(c).Origins(s.data.Destination, metric, flows))
	case "geojson":
		c.Render(http.StatusOK, geoJSON{data: origins.ToGeoJSON(flows)})
	default:
		s.fail(c, fmt.Errorf("%w: format must be json or geojson", errBadRequest))
	}
}

// GET /v1/pollution?format=json|geojson
func (s *Server) handlePollution(c *gin.Context) {
	switch c.DefaultQuery("format", "json") {
	case "json":
		rep, err := s.builder(c).Pollution(s.data.PopulationComparisons)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rep)
	case "geojson":
		c.Render(http.StatusOK, geoJSON{data: origins.Markers(s.data.PopulationComparisons)})
	default:
		s.fail(c, fmt.Errorf("%w: format must be json or geojson", errBadRequest))
	}
}
