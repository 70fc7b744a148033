package config

import (
	"fmt"

	"github.com/jdginn/go-mirror-room/room"
)

// LoadRoom builds the room named by the input section, from a saved room or
// by slicing a mesh, and applies the simulation parameters to it.
func (c *Config) LoadRoom() (*room.Room, error) {
	var (
		r   *room.Room
		err error
	)
	switch {
	case c.Input.Room.Path != "":
		r, err = room.Load(c.Input.Room.Path)
	case c.Input.Mesh.Path != "":
		r, err = room.NewFrom3MF(c.Input.Mesh.Path, c.Input.Mesh.ImportOptions())
	default:
		return nil, fmt.Errorf("config names neither input.room.path nor input.mesh.path")
	}
	if err != nil {
		return nil, fmt.Errorf("loading room: %w", err)
	}

	r.SetTraceParams(c.Simulation.TraceParams())
	return r, nil
}

// View sizes a view of r from the render section.
func (c *Config) View(r *room.Room) room.View {
	return room.View{
		Room:   r,
		XSize:  c.Render.Width,
		YSize:  c.Render.Height,
		Margin: c.Render.Margin,
		Style:  c.Render.Style(),
	}
}
