package main

import (
	"fmt"
	"os"
	"sort"

	goroom "github.com/jdginn/go-mirror-room/room"
	roomConfig "github.com/jdginn/go-mirror-room/room/config"
)

func run(path string) error {
	config, err := roomConfig.LoadFromFile(path, roomConfig.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeFiles:          true,
	})
	if err != nil {
		return err
	}

	walls := config.Walls()
	source := config.SourcePosition()
	paths := goroom.GeneratePaths(source, config.Simulation.Bounces, walls)
	mirrors := len(goroom.Mirrors(walls))

	counts := goroom.CountByLevel(paths)
	for level := 1; level < len(counts); level++ {
		fmt.Printf("level %d: %d images (expected %d)\n", level, counts[level], goroom.ExpectedPathCount(mirrors, level))
	}
	fmt.Printf("total: %d images (expected %d)\n", len(paths), goroom.ExpectedCumulativePathCount(mirrors, len(counts)-1))
	fmt.Printf("farthest image: %.3f\n", goroom.FarthestImage(source, paths))

	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Position.Sub(source).Length() < paths[j].Position.Sub(source).Length()
	})
	for _, p := range paths {
		fmt.Printf("%-28s %8.3f %v\n", p.ID, p.Position.Sub(source).Length(), p.Position)
	}
	return nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: path_report <config>")
		os.Exit(2)
	}
	err := run(os.Args[1])
	if err != nil {
		panic(err)
	}
}
