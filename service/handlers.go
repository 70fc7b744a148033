package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/jdginn/go-mirror-room/room"
)

// ============================================================
// Room Handler
// ============================================================

// RenderOptions sizes the PNG served by RenderPNG.
type RenderOptions struct {
	Width  int
	Height int
	Margin float64
	Style  room.RenderStyle
}

type RoomHandler struct {
	sessions *SessionManager
	store    *Store
	render   RenderOptions
}

func NewRoomHandler(sessions *SessionManager, store *Store, render RenderOptions) *RoomHandler {
	return &RoomHandler{
		sessions: sessions,
		store:    store,
		render:   render,
	}
}

type createResponse struct {
	ID   string        `json:"id"`
	Room room.RoomJSON `json:"room"`
}

type wallRequest struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
	// Defaults to room.DefaultRadiusCoef for round walls
	RadiusCoef *float64 `json:"radiusCoef"`
}

type pointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type radiusRequest struct {
	RadiusCoef float64 `json:"radiusCoef"`
}

type angleRequest struct {
	Angle float64 `json:"angle"`
}

type aimRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

type segmentsResponse struct {
	Segments []room.SegmentJSON `json:"segments"`
	Stats    room.PathStats     `json:"stats"`
}

var errBadRequest = errors.New("bad request")

// statusOf maps an error to the HTTP status it is reported with.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, room.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, room.ErrUnknownWall), errors.Is(err, room.ErrUnknownPoint):
		return http.StatusNotFound
	case errors.Is(err, room.ErrPointsAreTooClose),
		errors.Is(err, room.ErrTooManyPoints),
		errors.Is(err, room.ErrTooFewPoints),
		errors.Is(err, room.ErrInvalidRadiusCoef),
		errors.Is(err, room.ErrInvalidAngle),
		errors.Is(err, room.ErrCantStartInCorner),
		errors.Is(err, room.ErrRoomClosed),
		errors.Is(err, room.ErrNoWallNearby),
		errors.Is(err, room.ErrNoRay),
		errors.Is(err, room.ErrInvalidAimRadius),
		errors.Is(err, room.ErrNotRound),
		errors.Is(err, room.ErrWallsCollision):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c fiber.Ctx, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("[ROOMS] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return fmt.Errorf("%w: empty body", errBadRequest)
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fmt.Errorf("%w: invalid json", errBadRequest)
	}
	return nil
}

func indexParam(c fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, fmt.Errorf("%w: index must be an integer", errBadRequest)
	}
	return index, nil
}

// mutate applies fn to the room named in the path and answers with the
// updated document.
func (h *RoomHandler) mutate(c fiber.Ctx, fn func(r *room.Room) error) error {
	doc, err := h.sessions.Update(c.Context(), c.Params("id"), fn)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(doc)
}

// mutateWall is mutate for the wall named by the index path parameter.
func (h *RoomHandler) mutateWall(c fiber.Ctx, fn func(r *room.Room, w *room.Wall) error) error {
	index, err := indexParam(c)
	if err != nil {
		return writeError(c, err)
	}
	return h.mutate(c, func(r *room.Room) error {
		w, err := r.Wall(index)
		if err != nil {
			return err
		}
		return fn(r, w)
	})
}

// List returns the ids of every stored room.
func (h *RoomHandler) List(c fiber.Ctx) error {
	ids, err := h.store.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"rooms": ids})
}

// Create opens a new session, empty or built from the room document in the
// body.
func (h *RoomHandler) Create(c fiber.Ctx) error {
	r := room.New()
	if len(c.Body()) > 0 {
		var err error
		if r, err = room.FromJSON(c.Body()); err != nil {
			return writeError(c, err)
		}
	}

	s, err := h.sessions.Create(c.Context(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(createResponse{ID: s.ID, Room: r.ToJSON()})
}

func (h *RoomHandler) Get(c fiber.Ctx) error {
	var doc room.RoomJSON
	err := h.sessions.View(c.Context(), c.Params("id"), func(r *room.Room) error {
		doc = r.ToJSON()
		return nil
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(doc)
}

func (h *RoomHandler) Delete(c fiber.Ctx) error {
	if err := h.sessions.Remove(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *RoomHandler) Clear(c fiber.Ctx) error {
	return h.mutate(c, func(r *room.Room) error {
		r.Clear()
		return nil
	})
}

// AddWall adds the next point of an open room, joined by a line or a round
// wall.
func (h *RoomHandler) AddWall(c fiber.Ctx) error {
	var req wallRequest
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, err)
	}

	return h.mutate(c, func(r *room.Room) error {
		p := room.V2(req.X, req.Y)
		switch req.Type {
		case "", "line":
			_, err := r.AddWallLine(p)
			return err
		case "round":
			coef := float64(room.DefaultRadiusCoef)
			if req.RadiusCoef != nil {
				coef = *req.RadiusCoef
			}
			_, err := r.AddWallRound(p, coef)
			return err
		default:
			return fmt.Errorf("%w: type must be line or round", errBadRequest)
		}
	})
}

func (h *RoomHandler) MovePoint(c fiber.Ctx) error {
	index, err := indexParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var req pointRequest
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, err)
	}

	return h.mutate(c, func(r *room.Room) error {
		return r.MovePoint(index, room.V2(req.X, req.Y))
	})
}

func (h *RoomHandler) ChangeWallType(c fiber.Ctx) error {
	return h.mutateWall(c, func(r *room.Room, w *room.Wall) error {
		_, err := r.ChangeWallType(w)
		return err
	})
}

func (h *RoomHandler) ToggleOrient(c fiber.Ctx) error {
	return h.mutateWall(c, func(r *room.Room, w *room.Wall) error {
		return r.ToggleOrient(w)
	})
}

func (h *RoomHandler) ToggleArcSize(c fiber.Ctx) error {
	return h.mutateWall(c, func(r *room.Room, w *room.Wall) error {
		return r.ToggleArcSize(w)
	})
}

func (h *RoomHandler) SetRadiusCoef(c fiber.Ctx) error {
	var req radiusRequest
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, err)
	}
	return h.mutateWall(c, func(r *room.Room, w *room.Wall) error {
		return r.SetRadiusCoef(w, req.RadiusCoef)
	})
}

func (h *RoomHandler) AddRay(c fiber.Ctx) error {
	var req pointRequest
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, err)
	}
	return h.mutate(c, func(r *room.Room) error {
		_, err := r.AddRay(room.V2(req.X, req.Y))
		return err
	})
}

func (h *RoomHandler) SetRayAngle(c fiber.Ctx) error {
	var req angleRequest
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, err)
	}
	return h.mutate(c, func(r *room.Room) error {
		return r.SetRayAngle(req.Angle)
	})
}

func (h *RoomHandler) InverseRay(c fiber.Ctx) error {
	return h.mutate(c, func(r *room.Room) error {
		return r.InverseRayDirection()
	})
}

func (h *RoomHandler) RemoveRay(c fiber.Ctx) error {
	return h.mutate(c, func(r *room.Room) error {
		r.RemoveRay()
		return nil
	})
}

func (h *RoomHandler) AddAim(c fiber.Ctx) error {
	var req aimRequest
	if err := decodeBody(c, &req); err != nil {
		return writeError(c, err)
	}
	return h.mutate(c, func(r *room.Room) error {
		_, err := r.AddAim(room.V2(req.X, req.Y), req.Radius)
		return err
	})
}

func (h *RoomHandler) RemoveAim(c fiber.Ctx) error {
	return h.mutate(c, func(r *room.Room) error {
		r.RemoveAim()
		return nil
	})
}

// Segments returns the traced ray path and its statistics.
func (h *RoomHandler) Segments(c fiber.Ctx) error {
	var resp segmentsResponse
	err := h.sessions.View(c.Context(), c.Params("id"), func(r *room.Room) error {
		segments := r.Segments()
		resp = segmentsResponse{Segments: room.SegmentsToJSON(segments), Stats: room.StatsOf(segments)}
		return nil
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

func (h *RoomHandler) RenderPNG(c fiber.Ctx) error {
	var buf bytes.Buffer
	err := h.sessions.View(c.Context(), c.Params("id"), func(r *room.Room) error {
		view := room.View{
			Room:   r,
			XSize:  h.render.Width,
			YSize:  h.render.Height,
			Margin: h.render.Margin,
			Style:  h.render.Style,
		}
		return view.WritePNG(&buf)
	})
	if err != nil {
		return writeError(c, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}
