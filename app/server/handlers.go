package server

import (
	"fmt"
	"io"

	"oscesim/app/service/extract"
	"oscesim/app/util/apperr"

	"github.com/gofiber/fiber/v2"
)

type loadCaseRequest struct {
	Collection string `json:"collection"`
	Case       string `json:"case"`
}

type askRequest struct {
	Question string `json:"question"`
}

type speakRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fmt.Errorf("%w: no file uploaded", apperr.ErrInvalidInput))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fmt.Errorf("%w: %v", apperr.ErrDocumentUnreadable, err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return writeError(c, fmt.Errorf("%w: %v", apperr.ErrDocumentUnreadable, err))
	}

	view, err := s.patientSvc.LoadCase(c.Context(), data, extract.TypeFromName(fileHeader.Filename))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(view)
}

func (s *Server) handleLoadCase(c *fiber.Ctx) error {
	var req loadCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
	}

	if req.Collection == "" || req.Case == "" {
		return writeError(c, fmt.Errorf("%w: collection and case are required", apperr.ErrInvalidInput))
	}

	view, err := s.patientSvc.LoadPredefinedCase(c.Context(), req.Collection, req.Case)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(view)
}

func (s *Server) handleGreeting(c *fiber.Ctx) error {
	greeting, err := s.patientSvc.StartGreeting(c.Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"greeting": greeting})
}

func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
	}

	answer, err := s.patientSvc.Ask(c.Context(), req.Question)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{"answer": answer})
}

func (s *Server) handleSpeak(c *fiber.Ctx) error {
	var req speakRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err))
	}

	name, err := s.patientSvc.Speak(c.Context(), req.Text)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"audio": "/media/" + name,
		"ready": true,
	})
}

func (s *Server) handleReset(c *fiber.Ctx) error {
	s.patientSvc.Reset()

	return c.JSON(fiber.Map{"message": "session reset"})
}

func (s *Server) handleCollections(c *fiber.Ctx) error {
	collections, err := s.catalogSvc.List()
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(collections)
}
