package main

import (
	"fmt"
	"log"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-mirror-room/interact"
	roomConfig "github.com/jdginn/go-mirror-room/room/config"
	"github.com/jdginn/go-mirror-room/room/session"
)

var CLI struct {
	Render   RenderCmd   `cmd:"" help:"Trace rays and place reflections, writing the results to a session directory"`
	Validate ValidateCmd `cmd:"" help:"Check a config file without rendering"`
	Interact InteractCmd `cmd:"" help:"Explore the room interactively"`
}

func loadConfig(path string) (*roomConfig.SessionConfig, error) {
	return roomConfig.LoadFromFile(path, roomConfig.LoadOptions{
		ValidateImmediately: false,
		ResolvePaths:        true,
		MergeFiles:          true,
	})
}

func checkConfig(config *roomConfig.SessionConfig) error {
	if errs := config.Validate(); len(errs) > 0 {
		return fmt.Errorf("%s", roomConfig.FormatValidationErrors(errs))
	}
	return nil
}

type RenderCmd struct {
	Config   string `arg:"" name:"config" help:"config file describing the room"`
	Sessions string `name:"sessions" default:"sessions" help:"directory that holds session output"`
}

func (c RenderCmd) Run() error {
	config, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := checkConfig(config); err != nil {
		return err
	}

	dir, err := session.Create(c.Sessions)
	if err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := dir.CopyConfigFile(c.Config); err != nil {
		return fmt.Errorf("copying config file: %w", err)
	}

	sim, err := session.NewSimulation(config)
	if err != nil {
		return err
	}
	defer sim.Close()

	if err := sim.WriteOutputs(dir); err != nil {
		return err
	}
	log.Printf("traced %d rays and placed %d reflections into %s", len(sim.Traces), len(sim.Paths), dir.Path)
	return nil
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"config file to validate"`
}

func (c ValidateCmd) Run() error {
	config, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := checkConfig(config); err != nil {
		return err
	}
	fmt.Printf("%s: ok (%d mirrors)\n", c.Config, len(config.Mirrors.WallIDs()))
	return nil
}

type InteractCmd struct {
	Config string `arg:"" name:"config" help:"config file describing the room"`
	Output string `name:"output" default:"trace.png" help:"image re-rendered after every change"`
}

func (c InteractCmd) Run() error {
	config, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	if err := checkConfig(config); err != nil {
		return err
	}

	sim, err := session.NewSimulation(config)
	if err != nil {
		return err
	}
	defer sim.Close()

	return interact.Interact(sim, c.Output)
}

func main() {
	ctx := kong.Parse(&CLI)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
