package room

import (
	"github.com/pkg/errors"
)

// Errors returned by room operations. A rejected operation never leaves the
// room partially modified.
var (
	ErrPointsAreTooClose = errors.New("points are too close")
	ErrTooManyPoints     = errors.Errorf("room cannot have more than %d points", MaximumPoints)
	ErrTooFewPoints      = errors.Errorf("room cannot be closed with fewer than %d points", MinimumPoints)
	ErrInvalidRadiusCoef = errors.New("radius coefficient must be between 0 and 100")
	ErrInvalidAngle      = errors.New("ray angle must be between 1 and 179 degrees")
	ErrCantStartInCorner = errors.New("ray cannot start in a corner of the room")
	ErrInvalidFormat     = errors.New("invalid room format")

	ErrRoomClosed       = errors.New("room is already closed")
	ErrNoWallNearby     = errors.New("no wall near point")
	ErrNoRay            = errors.New("room has no ray")
	ErrInvalidAimRadius = errors.New("aim radius must be positive")
	ErrUnknownWall      = errors.New("wall does not belong to this room")
	ErrUnknownPoint     = errors.New("no such point")
	ErrNotRound         = errors.New("wall is not round")
	ErrWallsCollision   = errors.New("walls cannot cross")
)
