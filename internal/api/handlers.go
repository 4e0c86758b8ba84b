package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lumafab/agpattern/pkg/errors"
	"github.com/lumafab/agpattern/pkg/jobs"
	"github.com/lumafab/agpattern/pkg/pattern"
	"github.com/lumafab/agpattern/pkg/pipeline"
	"github.com/lumafab/agpattern/pkg/storage"
)

func (s *Server) handleGenerateJitter(w http.ResponseWriter, r *http.Request) {
	s.handleGenerate(w, r, pattern.KindJitterGrid)
}

func (s *Server) handleGenerateSunflower(w http.ResponseWriter, r *http.Request) {
	s.handleGenerate(w, r, pattern.KindSunflower)
}

func (s *Server) handleGeneratePoisson(w http.ResponseWriter, r *http.Request) {
	s.handleGenerate(w, r, pattern.KindPoissonDisc)
}

// handleGenerate is the shared implementation of the three generate
// endpoints: decode, validate, run the parameter sweep, respond with
// the uploaded URLs.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, kind pattern.Kind) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, err, "decode request body"))
		return
	}
	if err := req.validate(kind); err != nil {
		s.writeError(w, err)
		return
	}

	rec := jobs.NewRecord(req.JobID)
	rec.Status = jobs.StatusRunning
	if err := s.jobs.Create(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}

	urls, err := s.runSweep(r.Context(), kind, &req, rec.ID)
	if err != nil {
		rec.Status = jobs.StatusFailed
		rec.Error = errors.UserMessage(err)
		_ = s.jobs.Update(r.Context(), rec)
		s.writeError(w, err)
		return
	}

	rec.Status = jobs.StatusCompleted
	rec.URLs = urls
	if err := s.jobs.Update(r.Context(), rec); err != nil {
		s.logger.Warn("job record update failed", "job", rec.ID, "err", err)
	}

	writeJSON(w, http.StatusOK, GenerateResponse{JobID: rec.ID, PublicURLs: urls})
}

// runSweep generates and uploads every parameter combination. A failing
// combination is logged and skipped; only a sweep with zero successes is
// an error.
func (s *Server) runSweep(ctx context.Context, kind pattern.Kind, req *GenerateRequest, jobID string) ([]string, error) {
	combos := req.combinations()
	formats := req.formats()

	var (
		urls    []string
		lastErr error
	)
	for _, combo := range combos {
		comboURLs, err := s.runCombination(ctx, kind, req, jobID, combo, formats)
		if err != nil {
			lastErr = err
			s.logger.Warn("combination failed, skipping",
				"job", jobID,
				"cell_um", combo.CellSizeUM,
				"line_um", combo.LineWidthUM,
				"err", err)
			continue
		}
		urls = append(urls, comboURLs...)
	}

	if len(urls) == 0 {
		if lastErr != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, lastErr, "all %d combinations failed", len(combos))
		}
		return nil, errors.New(errors.ErrCodeInternal, "sweep produced no artifacts")
	}
	return urls, nil
}

func (s *Server) runCombination(ctx context.Context, kind pattern.Kind, req *GenerateRequest, jobID string, combo combination, formats []string) ([]string, error) {
	cfg := req.baseConfig(combo)
	gen, err := pattern.DeriveGenerator(kind, cfg.Boundary, float64(combo.CellSizeUM)/1000)
	if err != nil {
		return nil, err
	}
	cfg.Generator = gen

	result, err := s.runner.Execute(ctx, pipeline.Options{
		Config:  cfg,
		Formats: formats,
		Logger:  s.logger,
	})
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(result.Artifacts))
	for _, format := range formats {
		name := storage.ObjectName(jobID, kind, combo.CellSizeUM, combo.LineWidthUM, format)
		url, err := s.store.Upload(ctx, name, result.Artifacts[format], storage.ContentTypes[format])
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
