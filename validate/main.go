package main

import (
	"fmt"
	"log"

	"github.com/alecthomas/kong"

	roomConfig "github.com/jdginn/go-mirror-room/room/config"
	roomExperiment "github.com/jdginn/go-mirror-room/room/experiment"
)

var CLI struct {
	Room ValidateCmd `cmd:"" help:"Check the room named by a config file"`
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"config file naming the room to check"`
}

// Run checks that the configured room is closed, has a ray and an aim, and
// that the ray reaches the aim. On failure the room is rendered into a run
// directory next to a copy of the config.
func (c ValidateCmd) Run() error {
	config, err := roomConfig.LoadFromFile(c.Config, roomConfig.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeDefaults:       true,
	})
	if err != nil {
		return err
	}

	room, err := config.LoadRoom()
	if err != nil {
		return err
	}

	var problems []string
	if !room.IsClosed() {
		problems = append(problems, "room is not closed")
	}
	if room.Ray() == nil {
		problems = append(problems, "room has no ray")
	}
	if room.Aim() == nil {
		problems = append(problems, "room has no aim")
	}
	if len(problems) == 0 && !room.Stats().HitAim {
		problems = append(problems, fmt.Sprintf("ray misses the aim within %d segments", config.Simulation.MaxRayDepth))
	}
	if len(problems) == 0 {
		log.Printf("%s: ok", c.Config)
		return nil
	}

	runDir, err := roomExperiment.CreateRunDirectory(config.Output.Dir)
	if err != nil {
		return fmt.Errorf("creating run directory: %w", err)
	}
	if err := runDir.CopyFile(c.Config); err != nil {
		return fmt.Errorf("copying config file: %w", err)
	}
	view := config.View(room)
	if err := view.SavePNG(runDir.FilePath("room.png")); err != nil {
		return err
	}

	for _, p := range problems {
		log.Printf("%s: %s", c.Config, p)
	}
	return fmt.Errorf("ERROR: %d problems, see %s", len(problems), runDir.Path)
}

func main() {
	ctx := kong.Parse(&CLI)
	if err := ctx.Run(); err != nil {
		log.Fatal(err)
	}
}
