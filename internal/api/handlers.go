package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/faunadex/faunadex-go/internal/errors"
	"github.com/faunadex/faunadex-go/internal/fauna"
	"github.com/faunadex/faunadex-go/internal/notification"
)

func (s *Server) listAnimals(c echo.Context) error {
	animals, err := s.Store.GetAllAnimals()
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, animals)
}

func (s *Server) getAnimal(c echo.Context) error {
	animal, err := s.Store.GetAnimal(c.Param("id"))
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, animal)
}

func (s *Server) searchAnimals(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, errorBody("MISSING_QUERY", "query parameter q is required"))
	}
	animals, err := s.Store.SearchAnimals(query)
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, animals)
}

func (s *Server) listAnimalsByClass(c echo.Context) error {
	class := fauna.AnimalClass(strings.ToUpper(c.Param("class")))
	animals, err := s.Store.GetAnimalsByClass(class)
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, animals)
}

func (s *Server) listEndangered(c echo.Context) error {
	animals, err := s.Store.GetAllAnimals()
	if err != nil {
		return s.jsonError(c, err)
	}
	endangered := make([]*fauna.Animal, 0)
	for _, animal := range animals {
		if animal.IsEndangered() {
			endangered = append(endangered, animal)
		}
	}
	return c.JSON(http.StatusOK, endangered)
}

func (s *Server) getFunFact(c echo.Context) error {
	animal, err := s.Store.GetAnimal(c.Param("id"))
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"animal_id": animal.ID,
		"name":      animal.Name,
		"fun_fact":  animal.RandomFunFact(),
	})
}

type recognizeRequest struct {
	Image string `json:"image"`
}

type recognizeResponse struct {
	Recognized  bool                      `json:"recognized"`
	Recognition *notification.Recognition `json:"recognition,omitempty"`
}

// recognizeImage runs single image recognition with no session semantics.
func (s *Server) recognizeImage(c echo.Context) error {
	var req recognizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", "malformed request body"))
	}

	frame, err := fauna.FrameFromBase64(req.Image)
	if err != nil {
		return s.jsonError(c, err)
	}

	recognition, err := s.Processor.RecognizeImage(c.Request().Context(), frame)
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, recognizeResponse{
		Recognized:  recognition != nil,
		Recognition: recognition,
	})
}

type startSessionRequest struct {
	UserID string `json:"user_id"`
}

// startSession creates a session without an attached stream. Discoveries
// made through the REST recognize flow are not possible on such a session,
// it exists for clients that poll discoveries instead of streaming.
func (s *Server) startSession(c echo.Context) error {
	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("INVALID_REQUEST", "malformed request body"))
	}

	// The session outlives this request, so its actor must not inherit
	// the request context.
	session, err := s.Sessions.Start(context.Background(), req.UserID, notification.Discard{})
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, session)
}

func (s *Server) getSession(c echo.Context) error {
	session, err := s.Store.GetSession(c.Param("id"))
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"session":      session,
		"discoveries":  session.Discoveries,
		"unique_count": session.UniqueAnimalCount(),
	})
}

// endSession ends a session and returns its summary.
func (s *Server) endSession(c echo.Context) error {
	id := c.Param("id")
	if err := s.Sessions.End(id); err != nil {
		return s.jsonError(c, err)
	}
	session, err := s.Store.GetSession(id)
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"session_id":        session.ID,
		"user_id":           session.UserID,
		"started_at":        session.StartedAt,
		"ended_at":          session.EndedAt,
		"total_discoveries": len(session.Discoveries),
		"unique_animals":    session.UniqueAnimalCount(),
		"discoveries":       session.Discoveries,
	})
}

func (s *Server) listDiscoveries(c echo.Context) error {
	discoveries, err := s.Store.GetDiscoveriesBySession(c.Param("id"))
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, discoveries)
}

func (s *Server) listUserDiscoveries(c echo.Context) error {
	discoveries, err := s.Store.GetDiscoveriesByUser(c.Param("id"))
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.JSON(http.StatusOK, discoveries)
}

func (s *Server) serveThumbnail(c echo.Context) error {
	path, err := s.Thumbs.Open(c.Param("filename"))
	if err != nil {
		return s.jsonError(c, err)
	}
	return c.File(path)
}

func errorBody(code, message string) map[string]string {
	return map[string]string{"code": code, "message": message}
}

// jsonError maps pipeline errors onto HTTP statuses.
func (s *Server) jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, fauna.ErrAnimalNotFound), errors.Is(err, fauna.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, errorBody("NOT_FOUND", err.Error()))
	case errors.Is(err, fauna.ErrInvalidImage):
		return c.JSON(http.StatusBadRequest, errorBody("INVALID_IMAGE", err.Error()))
	case errors.Is(err, fauna.ErrModelNotReady):
		return c.JSON(http.StatusServiceUnavailable, errorBody("MODEL_NOT_READY", err.Error()))
	default:
		logger.Error("request failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, errorBody("INTERNAL", "internal server error"))
	}
}
