// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/mock-ballot/middleware"
	"github.com/danielhkuo/mock-ballot/models"
	"github.com/danielhkuo/mock-ballot/results"
	"github.com/danielhkuo/mock-ballot/session"
)

type ResultsHandler struct {
	session *session.Session
}

func NewResultsHandler(s *session.Session) *ResultsHandler {
	return &ResultsHandler{session: s}
}

// GetResults handles GET /results
// Always available, in every stage. ?chart=bar switches from the default pie.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	chart := r.URL.Query().Get("chart")
	switch chart {
	case "":
		chart = models.ChartPie
	case models.ChartPie, models.ChartBar:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "chart must be pie or bar")
		return
	}

	res := h.session.Results()
	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Results: res,
		Leaders: results.Leaders(res),
		Summary: results.Summary(res),
		Chart:   chart,
	})
}
