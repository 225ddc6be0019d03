package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/uyouii/voltage-analytics/analyzer"
	"github.com/uyouii/voltage-analytics/export"
	"github.com/uyouii/voltage-analytics/loader"
	"github.com/uyouii/voltage-analytics/model"
	"github.com/uyouii/voltage-analytics/render"
	"github.com/uyouii/voltage-analytics/utils"
	"go.uber.org/zap"
)

type AnalysisResponse struct {
	RunID          string                   `json:"run_id"`
	DataPath       string                   `json:"data_path"`
	Summary        render.Summary           `json:"summary"`
	Extrema        []render.ExtremaRow      `json:"extrema"`
	BelowThreshold []render.ThresholdRow    `json:"below_threshold"`
	Acceleration   []render.AccelerationRow `json:"acceleration"`
}

type errorResponse struct {
	RunID string `json:"run_id"`
	Error string `json:"error"`
}

// analyze loads the data file fresh for every call, nothing is shared between requests.
func (s *Server) analyze(ctx context.Context, runID string) (*model.AnalysisResult, error) {
	logger := utils.GetLogger(ctx)

	raw, err := loader.Load(ctx, s.cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	res, err := analyzer.Analyze(ctx, raw)
	if err != nil {
		return nil, err
	}

	if s.cfg.Export.Enabled {
		if err := export.WriteTables(ctx, s.cfg.Export.Dir, res); err != nil {
			logger.Error("export tables failed", zap.String("runID", runID), zap.Error(err))
		}
	}
	return res, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := utils.GetLogger(ctx)
	runID := uuid.NewString()

	res, err := s.analyze(ctx, runID)
	if err != nil {
		logger.Error("analyze failed", zap.String("runID", runID), zap.Error(err))
		s.writeErrorPage(w, runID, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, render.BuildPage(ctx, res, runID, s.cfg.Data.Path)); err != nil {
		logger.Error("render page failed", zap.String("runID", runID), zap.Error(err))
		s.writeErrorPage(w, runID, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) writeErrorPage(w http.ResponseWriter, runID string, err error) {
	var buf bytes.Buffer
	if renderErr := render.ErrorPage(&buf, render.ErrorView{RunID: runID, Message: err.Error()}); renderErr != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write(buf.Bytes())
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := utils.GetLogger(ctx)
	runID := uuid.NewString()

	res, err := s.analyze(ctx, runID)
	if err != nil {
		logger.Error("analyze failed", zap.String("runID", runID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{RunID: runID, Error: err.Error()})
		return
	}

	summary, err := render.Summarize(res.Series)
	if err != nil {
		logger.Error("Summarize failed", zap.String("runID", runID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, AnalysisResponse{
		RunID:          runID,
		DataPath:       s.cfg.Data.Path,
		Summary:        summary,
		Extrema:        render.ExtremaTable(res.Extrema),
		BelowThreshold: render.ThresholdTable(res.BelowThreshold),
		Acceleration:   render.AccelerationTable(res.Acceleration),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
