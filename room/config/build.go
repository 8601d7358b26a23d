package config

import (
	"sort"

	"github.com/fogleman/pt/pt"
	"github.com/jdginn/go-mirror-room/room"
)

// WallIDs returns the walls marked as mirrors, in room.AllWalls order. Unknown names are skipped.
func (m *Mirrors) WallIDs() []room.WallID {
	var ids []room.WallID
	for name, mirror := range m.Inline {
		if !mirror {
			continue
		}
		if id, err := room.ParseWallID(name); err == nil {
			ids = append(ids, id)
		}
	}
	order := map[room.WallID]int{}
	for i, id := range room.AllWalls {
		order[id] = i
	}
	sort.Slice(ids, func(i, j int) bool { return order[ids[i]] < order[ids[j]] })
	return ids
}

// Walls builds the wall planes of the configured room.
func (c *SessionConfig) Walls() []room.WallPlane {
	return room.BuildWallPlanes(c.Room.HalfExtent, c.Mirrors.WallIDs()...)
}

// SourcePosition returns the source centre as a vector.
func (c *SessionConfig) SourcePosition() pt.Vector {
	p := c.Source.Position
	return room.V(p[0], p[1], p[2])
}

// Emitter builds the ray emitter for the configured source.
func (c *SessionConfig) Emitter() (room.Emitter, error) {
	mode, err := room.ParseColorMode(c.Source.ColorMode)
	if err != nil {
		return room.Emitter{}, err
	}
	e := room.NewEmitter(c.SourcePosition(), room.YawOrientation(c.Source.YawDegrees))
	e.FanAngle = c.Rays.FanAngleDegrees
	e.SurfaceOffset = c.Source.Radius
	e.ColorMode = mode
	return e, nil
}
