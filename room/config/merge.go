package config

import (
	"time"

	"github.com/jdginn/go-mirror-room/room"
)

// Default returns the configuration used when a file leaves a value unset
func Default() *Config {
	trace := room.DefaultTraceParams()
	style := room.DefaultRenderStyle()

	c := &Config{}
	c.Input.Mesh.Scale = 1
	c.Simulation = Simulation{
		MaxRayDepth:    trace.MaxDepth,
		FarDistance:    trace.FarDistance,
		MinHitDistance: trace.MinHitDistance,
		Precision:      trace.Precision,
	}
	c.Render = Render{
		Width:       800,
		Height:      800,
		Margin:      20,
		WallWidth:   style.WallWidth,
		RayWidth:    style.RayWidth,
		PointRadius: style.PointRadius,
	}
	c.Render.Colors.Background = style.Background
	c.Render.Colors.Wall = style.WallColor
	c.Render.Colors.RoundWall = style.RoundWallColor
	c.Render.Colors.Point = style.PointColor
	c.Render.Colors.Ray = style.RayColor
	c.Render.Colors.Aim = style.AimColor
	c.Scan.Samples = 179
	c.Output.Dir = "runs"
	c.Server = Server{
		Addr:         ":8080",
		DBPath:       "rooms.db",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return c
}

// MergeDefaults fills every unset value from defaults, with values already in
// c taking precedence
func (c *Config) MergeDefaults(defaults *Config) {
	mergeFloat(&c.Input.Mesh.Scale, defaults.Input.Mesh.Scale)

	mergeInt(&c.Simulation.MaxRayDepth, defaults.Simulation.MaxRayDepth)
	mergeFloat(&c.Simulation.FarDistance, defaults.Simulation.FarDistance)
	mergeFloat(&c.Simulation.MinHitDistance, defaults.Simulation.MinHitDistance)
	mergeFloat(&c.Simulation.Precision, defaults.Simulation.Precision)

	mergeInt(&c.Render.Width, defaults.Render.Width)
	mergeInt(&c.Render.Height, defaults.Render.Height)
	mergeFloat(&c.Render.Margin, defaults.Render.Margin)
	mergeString(&c.Render.Colors.Background, defaults.Render.Colors.Background)
	mergeString(&c.Render.Colors.Wall, defaults.Render.Colors.Wall)
	mergeString(&c.Render.Colors.RoundWall, defaults.Render.Colors.RoundWall)
	mergeString(&c.Render.Colors.Point, defaults.Render.Colors.Point)
	mergeString(&c.Render.Colors.Ray, defaults.Render.Colors.Ray)
	mergeString(&c.Render.Colors.Aim, defaults.Render.Colors.Aim)
	mergeFloat(&c.Render.WallWidth, defaults.Render.WallWidth)
	mergeFloat(&c.Render.RayWidth, defaults.Render.RayWidth)
	mergeFloat(&c.Render.PointRadius, defaults.Render.PointRadius)

	mergeInt(&c.Scan.Samples, defaults.Scan.Samples)
	mergeString(&c.Output.Dir, defaults.Output.Dir)

	mergeString(&c.Server.Addr, defaults.Server.Addr)
	mergeString(&c.Server.DBPath, defaults.Server.DBPath)
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaults.Server.WriteTimeout
	}
}

func mergeInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

func mergeFloat(dst *float64, def float64) {
	if *dst == 0 {
		*dst = def
	}
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// TraceParams converts the simulation section for the room package
func (s Simulation) TraceParams() room.TraceParams {
	return room.TraceParams{
		MaxDepth:       s.MaxRayDepth,
		FarDistance:    s.FarDistance,
		MinHitDistance: s.MinHitDistance,
		Precision:      s.Precision,
	}
}

func (r Render) Style() room.RenderStyle {
	return room.RenderStyle{
		Background:     r.Colors.Background,
		WallColor:      r.Colors.Wall,
		RoundWallColor: r.Colors.RoundWall,
		PointColor:     r.Colors.Point,
		RayColor:       r.Colors.Ray,
		AimColor:       r.Colors.Aim,
		WallWidth:      r.WallWidth,
		RayWidth:       r.RayWidth,
		PointRadius:    r.PointRadius,
	}
}

func (m Mesh) ImportOptions() room.ImportOptions {
	return room.ImportOptions{Height: m.Height, Scale: m.Scale}
}
