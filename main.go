package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdginn/go-mirror-room/interact"
	goroom "github.com/jdginn/go-mirror-room/room"
	roomConfig "github.com/jdginn/go-mirror-room/room/config"
	roomExperiment "github.com/jdginn/go-mirror-room/room/experiment"
	"github.com/jdginn/go-mirror-room/service"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	aimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	wallStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var CLI struct {
	Trace   TraceCmd   `cmd:"" help:"Trace the ray of a room and print its path"`
	Render  RenderCmd  `cmd:"" help:"Render a room to PNG"`
	Scan    ScanCmd    `cmd:"" help:"Sweep the launch angle and report which angles reach the aim"`
	Import  ImportCmd  `cmd:"" help:"Build a room from a 3MF model"`
	Inspect InspectCmd `cmd:"" help:"Browse the ray path of a room"`
	Serve   ServeCmd   `cmd:"" help:"Serve the room API"`
}

func loadConfig(path string) (*roomConfig.Config, error) {
	return roomConfig.LoadFromFile(path, roomConfig.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeDefaults:       true,
	})
}

// setup loads the config and its room, and opens a run directory holding a
// copy of the config.
func setup(path string) (*roomConfig.Config, *goroom.Room, *roomExperiment.RunDir, error) {
	config, err := loadConfig(path)
	if err != nil {
		return nil, nil, nil, err
	}
	room, err := config.LoadRoom()
	if err != nil {
		return nil, nil, nil, err
	}
	runDir, err := roomExperiment.CreateRunDirectory(config.Output.Dir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating run directory: %w", err)
	}
	if err := runDir.CopyFile(path); err != nil {
		return nil, nil, nil, fmt.Errorf("copying config file: %w", err)
	}
	return config, room, runDir, nil
}

func describe(s goroom.RaySegment) string {
	switch {
	case s.HitAim:
		return aimStyle.Render(fmt.Sprintf("aim at (%.2f, %.2f)", s.HitPoint.X, s.HitPoint.Y))
	case s.HitWall != nil:
		return wallStyle.Render(fmt.Sprintf("wall %d at (%.2f, %.2f)", s.HitWall.Index(), s.HitPoint.X, s.HitPoint.Y))
	default:
		return missStyle.Render("escapes")
	}
}

type TraceCmd struct {
	Config string `arg:"" name:"config" help:"config file naming the room"`
}

func (c TraceCmd) Run() error {
	_, room, runDir, err := setup(c.Config)
	if err != nil {
		return err
	}
	if room.Ray() == nil {
		return goroom.ErrNoRay
	}

	segments := room.Segments()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Ray from (%.2f, %.2f) at %.1f°", room.Ray().Start().X, room.Ray().Start().Y, room.Ray().Angle())))
	for _, s := range segments {
		fmt.Printf("%3d  %8.2f  %s\n", s.Depth, s.Length(), describe(s))
	}
	stats := goroom.StatsOf(segments)
	fmt.Printf("%d bounces, length %.2f, aim reached: %t\n", stats.Bounces, stats.Length, stats.HitAim)

	if err := room.Save(runDir.FilePath("room.json")); err != nil {
		return err
	}
	data, err := json.MarshalIndent(goroom.SegmentsToJSON(segments), "", "  ")
	if err != nil {
		return err
	}
	return runDir.WriteFile("segments.json", data)
}

type RenderCmd struct {
	Config string `arg:"" name:"config" help:"config file naming the room"`
	Out    string `name:"out" help:"write the PNG here instead of the run directory"`
}

func (c RenderCmd) Run() error {
	config, room, runDir, err := setup(c.Config)
	if err != nil {
		return err
	}
	out := c.Out
	if out == "" {
		out = runDir.FilePath("room.png")
	}
	view := config.View(room)
	if err := view.SavePNG(out); err != nil {
		return err
	}
	log.Printf("Rendered %s", out)
	return nil
}

type ScanCmd struct {
	Config  string `arg:"" name:"config" help:"config file naming the room"`
	Samples int    `name:"samples" help:"override scan.samples"`
}

func (c ScanCmd) Run() error {
	config, room, runDir, err := setup(c.Config)
	if err != nil {
		return err
	}
	samples := config.Scan.Samples
	if c.Samples > 0 {
		samples = c.Samples
	}

	result, err := room.ScanAngles(samples)
	if err != nil {
		return err
	}

	angles := result.AimAngles()
	fmt.Println(titleStyle.Render(fmt.Sprintf("%d of %d angles reach the aim", len(angles), len(result.Samples))))
	if len(angles) > 0 {
		formatted := make([]string, len(angles))
		for i, a := range angles {
			formatted[i] = fmt.Sprintf("%.1f", a)
		}
		fmt.Println(aimStyle.Render(strings.Join(formatted, " ")))
	}

	data, err := json.MarshalIndent(result.Samples, "", "  ")
	if err != nil {
		return err
	}
	if err := runDir.WriteFile("scan.json", data); err != nil {
		return err
	}
	return result.SavePlot(config.Render.Width, config.Render.Height, runDir.FilePath("scan.png"))
}

type ImportCmd struct {
	Mesh   string  `arg:"" name:"mesh" help:"3MF model of the room"`
	Out    string  `arg:"" name:"out" help:"room JSON to write"`
	Height float64 `name:"height" help:"height of the horizontal cut, in model units"`
	Scale  float64 `name:"scale" default:"1" help:"model units to room units"`
}

func (c ImportCmd) Run() error {
	room, err := goroom.NewFrom3MF(c.Mesh, goroom.ImportOptions{Height: c.Height, Scale: c.Scale})
	if err != nil {
		return err
	}
	if err := room.Save(c.Out); err != nil {
		return err
	}
	log.Printf("Imported %d walls into %s", len(room.Walls()), c.Out)
	return nil
}

type InspectCmd struct {
	Config string `arg:"" name:"config" help:"config file naming the room"`
}

func (c InspectCmd) Run() error {
	config, room, runDir, err := setup(c.Config)
	if err != nil {
		return err
	}
	return interact.Interact(config.View(room), runDir.FilePath("selected.png"))
}

type ServeCmd struct {
	Config string `arg:"" name:"config" help:"config file with the server section"`
}

func (c ServeCmd) Run() error {
	config, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	store, err := service.OpenStore(config.Server.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()
	if err := store.Init(context.Background()); err != nil {
		return fmt.Errorf("init db: %w", err)
	}

	app := service.NewApp(config, store)
	log.Printf("Starting room service on %s", config.Server.Addr)
	return app.Listen(config.Server.Addr)
}

func main() {
	ctx := kong.Parse(&CLI)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
