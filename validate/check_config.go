package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-mirror-room/room"
	roomConfig "github.com/jdginn/go-mirror-room/room/config"
)

var CLI struct {
	Config string `arg:"" name:"config" help:"config file to validate"`
	Trace  bool   `name:"trace" help:"also trace the configured rays to check the room is closed"`
}

func run() error {
	config, err := roomConfig.LoadFromFile(CLI.Config, roomConfig.LoadOptions{
		ResolvePaths: true,
		MergeFiles:   true,
	})
	if err != nil {
		return err
	}

	if errs := config.Validate(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, roomConfig.FormatValidationErrors(errs))
		return fmt.Errorf("%s is invalid", CLI.Config)
	}

	walls := config.Walls()
	fmt.Printf("room: half extent %v, mirrors %v\n", config.Room.HalfExtent, config.Mirrors.WallIDs())
	mirrors := len(room.Mirrors(walls))
	for level := 1; level <= room.Clamp(config.Simulation.Bounces, 0, room.MaxReflectionLevels); level++ {
		fmt.Printf("  level %d: %d reflections\n", level, room.ExpectedPathCount(mirrors, level))
	}

	if CLI.Trace {
		emitter, err := config.Emitter()
		if err != nil {
			return err
		}
		rays := emitter.GenerateRays(config.Rays.Count, config.Rays.FanCount)
		if _, err := room.TraceAll(rays, walls, config.Simulation.Bounces); err != nil {
			return err
		}
		fmt.Printf("traced %d rays\n", len(rays))
	}
	return nil
}

func main() {
	kong.Parse(&CLI)
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
