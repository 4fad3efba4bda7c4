// Package server is the public HTTP API: image submission, status polling,
// result retrieval, and refinement. Handlers validate and translate; all
// domain work happens in the pipeline and its adapters.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/stylelens/stylelens/internal/logger"
	"github.com/stylelens/stylelens/internal/pipeline"
	"github.com/stylelens/stylelens/internal/queue"
	"github.com/stylelens/stylelens/internal/store"
)

// Server wraps the echo engine and the handler dependencies.
type Server struct {
	echo    *echo.Echo
	cfg     Config
	db      Store
	upload  Uploader
	publish Publisher
	status  StatusReader
	results ResultsReader
	refine  Refinery
	log     logger.Logger
}

// NewServer builds the engine, installs middleware, and registers routes.
// Listening starts in the fx lifecycle hook.
func NewServer(
	cfg Config,
	db Store,
	upload Uploader,
	publish Publisher,
	status StatusReader,
	results ResultsReader,
	refine Refinery,
	log logger.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(cfg.MaxBodySize))

	s := &Server{
		echo:    e,
		cfg:     cfg,
		db:      db,
		upload:  upload,
		publish: publish,
		status:  status,
		results: results,
		refine:  refine,
		log:     log,
	}

	api := e.Group("/api/v1")
	api.POST("/analyses", s.createAnalysis)
	api.GET("/analyses/:id/status", s.getStatus)
	api.GET("/analyses/:id/results", s.getResults)
	api.POST("/analyses/:id/objects/:objectID/refine", s.refineObject)

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	return s
}

// Engine exposes the router for tests.
func (s *Server) Engine() *echo.Echo { return s.echo }

// Start begins serving. Blocks until Shutdown.
func (s *Server) Start() error {
	return s.echo.Start(s.cfg.Address)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

type analysisAccepted struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type refineRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// createAnalysis accepts a multipart image upload, stores it, records the
// PENDING analysis, and enqueues the processing job. Responds 202: the work
// happens asynchronously and clients poll the status endpoint.
func (s *Server) createAnalysis(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "image file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable image upload"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "empty image upload"})
	}

	var userID *int64
	if raw := c.FormValue("user_id"); raw != "" {
		parsed, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "user_id must be an integer"})
		}
		userID = &parsed
	}

	id := uuid.New()
	key := "uploads/" + id.String() + uploadExt(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	imageURL, err := s.upload.Put(ctx, key, data, contentType)
	if err != nil {
		s.log.Error("image upload failed", err, map[string]interface{}{"key": key})
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "image storage unavailable"})
	}

	analysis := &store.Analysis{
		ID:       id,
		UserID:   userID,
		ImageURL: imageURL,
		Status:   store.StatusPending,
	}
	if err := s.db.CreateAnalysis(ctx, analysis); err != nil {
		s.log.Error("analysis row not created", err, map[string]interface{}{"analysis_id": id.String()})
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "could not record analysis"})
	}

	job := queue.AnalysisJob{AnalysisID: id.String(), ImageURL: imageURL}
	if userID != nil {
		job.UserID = strconv.FormatInt(*userID, 10)
	}
	if err := s.publish.PublishJob(ctx, job); err != nil {
		s.log.Error("analysis job not published", err, map[string]interface{}{"analysis_id": id.String()})
		// The row exists but no worker will ever pick it up; fail it so
		// clients are not left polling forever.
		if updErr := s.db.UpdateAnalysisStatus(ctx, id, store.StatusFailed, store.ReasonPersistence); updErr != nil {
			s.log.Warn("orphaned analysis not marked failed", updErr, map[string]interface{}{
				"analysis_id": id.String(),
			})
		}
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "processing queue unavailable"})
	}

	return c.JSON(http.StatusAccepted, analysisAccepted{ID: id.String(), Status: string(store.StatusPending)})
}

func (s *Server) getStatus(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid analysis id"})
	}

	view, err := s.status.GetStatus(c.Request().Context(), id)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) getResults(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid analysis id"})
	}

	analysis, complete, err := s.results.GetResults(c.Request().Context(), id)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(http.StatusOK, resultsViewOf(analysis, complete))
}

func (s *Server) refineObject(c echo.Context) error {
	analysisID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid analysis id"})
	}
	objectID, err := parseID(c.Param("objectID"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid object id"})
	}

	var req refineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "query is required"})
	}

	refined, err := s.refine.Refine(c.Request().Context(), analysisID, objectID, req.Query)
	if err != nil {
		return s.mapError(c, err)
	}
	return c.JSON(http.StatusOK, objectViewOf(refined))
}

// mapError translates domain errors into status codes. Validation failures
// are the client's fault; everything else is ours.
func (s *Server) mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, pipeline.ErrValidation):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		s.log.Error("request failed", err, map[string]interface{}{"path": c.Path()})
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func parseID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

func uploadExt(filename string) string {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	default:
		return ".jpg"
	}
}

type boxView struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type matchView struct {
	ProductID        string  `json:"product_id"`
	VisualSimilarity float64 `json:"visual_similarity"`
	IndexScore       float64 `json:"index_score"`
	AttributeScore   float64 `json:"attribute_score"`
	BlendedScore     float64 `json:"blended_score"`
	Rank             int     `json:"rank"`
	RankSource       string  `json:"rank_source"`
}

type objectView struct {
	ID            uuid.UUID   `json:"id"`
	Category      string      `json:"category"`
	BBox          boxView     `json:"bbox"`
	Confidence    float64     `json:"confidence"`
	Status        string      `json:"status"`
	FailureReason *string     `json:"failure_reason,omitempty"`
	CropURL       string      `json:"crop_url,omitempty"`
	Version       int         `json:"version"`
	Matches       []matchView `json:"matches"`
}

type resultsView struct {
	ID            uuid.UUID    `json:"id"`
	Status        string       `json:"status"`
	FailureReason string       `json:"failure_reason,omitempty"`
	Complete      bool         `json:"complete"`
	CreatedAt     time.Time    `json:"created_at"`
	Objects       []objectView `json:"objects"`
}

func resultsViewOf(a *store.Analysis, complete bool) resultsView {
	objects := make([]objectView, len(a.Objects))
	for i := range a.Objects {
		objects[i] = objectViewOf(&a.Objects[i])
	}
	return resultsView{
		ID:            a.ID,
		Status:        string(a.Status),
		FailureReason: a.FailureReason,
		Complete:      complete,
		CreatedAt:     a.CreatedAt,
		Objects:       objects,
	}
}

func objectViewOf(o *store.DetectedObject) objectView {
	matches := make([]matchView, len(o.Matches))
	for i, m := range o.Matches {
		matches[i] = matchView{
			ProductID:        m.ProductID,
			VisualSimilarity: m.VisualSimilarity,
			IndexScore:       m.IndexScore,
			AttributeScore:   m.AttributeScore,
			BlendedScore:     m.BlendedScore,
			Rank:             m.Rank,
			RankSource:       m.RankSource,
		}
	}
	return objectView{
		ID:            o.ID,
		Category:      o.Category,
		BBox:          boxView{X1: o.BBoxX1, Y1: o.BBoxY1, X2: o.BBoxX2, Y2: o.BBoxY2},
		Confidence:    o.Confidence,
		Status:        string(o.Status),
		FailureReason: o.FailureReason,
		CropURL:       o.CropURL,
		Version:       o.Version,
		Matches:       matches,
	}
}
