package server

import (
	"errors"

	"oscesim/app/config"
	"oscesim/app/service/catalog"
	"oscesim/app/service/patient"
	"oscesim/app/util/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

var _ do.Shutdownable = (*Server)(nil)

// Server exposes the boundary operations over HTTP.
type Server struct {
	cfg        *config.Config
	patientSvc *patient.Service
	catalogSvc *catalog.Service

	app *fiber.App
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:        do.MustInvoke[*config.Config](di),
		patientSvc: do.MustInvoke[*patient.Service](di),
		catalogSvc: do.MustInvoke[*catalog.Service](di),
	}

	s.app = fiber.New(fiber.Config{
		BodyLimit:             16 << 20,
		DisableStartupMessage: true,
	})

	s.app.Post("/upload", s.handleUpload)
	s.app.Post("/load-case", s.handleLoadCase)
	s.app.Post("/start-session", s.handleGreeting)
	s.app.Post("/ask", s.handleAsk)
	s.app.Post("/tts", s.handleSpeak)
	s.app.Post("/reset", s.handleReset)
	s.app.Get("/collections", s.handleCollections)
	s.app.Static("/media", s.cfg.Server.MediaDir)

	return s, nil
}

func (s *Server) Run() error {
	return s.app.Listen(s.cfg.Server.Listen)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func writeError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  apperr.Kind(err),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput), errors.Is(err, apperr.ErrDocumentUnreadable):
		return fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrCaseNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperr.ErrNotReady):
		return fiber.StatusConflict
	case errors.Is(err, apperr.ErrUpstreamFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
