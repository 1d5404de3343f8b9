package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/resumate/internal/types"
	"github.com/jonathan/resumate/internal/ui"
)

// HealthResponse represents the response for /health
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

var notReadyNotice = fmt.Sprintf("Job description and resume must each be more than %d characters.", types.MinInputLength)

// handleIndex renders the empty form
func (s *Server) handleIndex(c echo.Context) error {
	return c.Render(http.StatusOK, pageTemplate, newPageData(ui.NewState()))
}

// handleGenerate runs one form submission through submit, generate and resolve
func (s *Server) handleGenerate(c echo.Context) error {
	var req types.GenerationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission").SetInternal(err)
	}

	state := ui.NewState()
	if err := state.SetInputs(req.JobDescription, req.ResumeText); err != nil {
		return err
	}

	submitted, err := state.Submit()
	if err != nil {
		if !errors.Is(err, ui.ErrNotReady) {
			return err
		}
		data := newPageData(state)
		data.Notice = notReadyNotice
		return c.Render(http.StatusUnprocessableEntity, pageTemplate, data)
	}

	result := s.generator.Generate(c.Request().Context(), submitted)
	if err := state.Resolve(result); err != nil {
		return err
	}

	return c.Render(http.StatusOK, pageTemplate, newPageData(state))
}

// handleReset returns to the form with the previous inputs filled in
func (s *Server) handleReset(c echo.Context) error {
	var req types.GenerationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission").SetInternal(err)
	}

	state := ui.Restore(req)
	state.Reset()
	return c.Render(http.StatusOK, pageTemplate, newPageData(state))
}

// handleBullets is the JSON equivalent of /generate
func (s *Server) handleBullets(c echo.Context) error {
	var req types.GenerationRequest
	if err := c.Bind(&req); err != nil {
		return s.errorResponse(c, &ErrBadRequest{Cause: err})
	}

	if err := validateRequest(&req); err != nil {
		return s.errorResponse(c, err)
	}

	result := s.generator.Generate(c.Request().Context(), req)
	return c.JSON(http.StatusOK, result)
}

// handleHealth reports liveness and the configured model
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Provider: s.info.Provider,
		Model:    s.info.Model,
	})
}

// errorResponse writes a JSON error with the status from HTTPStatus
func (s *Server) errorResponse(c echo.Context, err error) error {
	status := HTTPStatus(err)

	message := "Internal server error"
	var validation *ErrValidation
	switch {
	case errors.As(err, &validation):
		message = fmt.Sprintf("%s %s", validation.Field, validation.Message)
	case status == http.StatusBadRequest:
		message = "Invalid request body"
	}

	s.logger.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"status":     status,
	}).WithError(err).Warn("Request rejected")

	return c.JSON(status, ErrorResponse{
		Error:     errorCode(err),
		Message:   message,
		RequestID: requestID(c),
	})
}
