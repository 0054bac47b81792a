package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chibuka/algoviz/internal/steps"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleBubbleSort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, r, http.MethodPost)
		return
	}

	var input []int
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeBadRequest(w, r, "body must be a JSON array of integers")
		return
	}
	if len(input) > s.opts.MaxArrayLen {
		writeBadRequest(w, r, fmt.Sprintf("array has %d elements; at most %d are allowed", len(input), s.opts.MaxArrayLen))
		return
	}

	start := time.Now()
	trace := steps.BubbleSort(input)
	result := steps.SortResult{
		Steps:       trace,
		TimeTakenMs: time.Since(start).Milliseconds(),
		Algorithm:   steps.AlgorithmBubbleSort,
	}

	s.logger.Debug("bubble sort traced", zap.Int("size", len(input)), zap.Int("steps", len(trace)))
	s.writeJSON(w, result)
}

func (s *Server) handlePrimeCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, r, http.MethodGet)
		return
	}

	raw := r.URL.Query().Get("n")
	if raw == "" {
		writeBadRequest(w, r, "query parameter n is required")
		return
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeBadRequest(w, r, fmt.Sprintf("n must be an integer, got %q", raw))
		return
	}
	if n < 2 {
		writeBadRequest(w, r, fmt.Sprintf("n must be at least 2, got %d", n))
		return
	}
	if n > s.opts.MaxPrime {
		writeBadRequest(w, r, fmt.Sprintf("n must be at most %d, got %d", s.opts.MaxPrime, n))
		return
	}

	start := time.Now()
	result := steps.CheckPrimality(n)
	result.TimeTakenMs = time.Since(start).Milliseconds()

	s.logger.Debug("primality checked", zap.Int64("n", n), zap.Bool("prime", result.IsPrime), zap.Int("steps", len(result.Steps)))
	s.writeJSON(w, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}
