package config

// SessionConfig represents the complete configuration for a mirror room session
type SessionConfig struct {
	Metadata   Metadata   `yaml:"metadata"`
	Room       Room       `yaml:"room"`
	Mirrors    Mirrors    `yaml:"mirrors"`
	Source     Source     `yaml:"source"`
	Rays       Rays       `yaml:"rays"`
	Simulation Simulation `yaml:"simulation"`
	Output     Output     `yaml:"output"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

type Room struct {
	HalfExtent float64 `yaml:"half_extent"` // distance from centre to each wall
	Height     float64 `yaml:"height,omitempty"`
}

type Mirrors struct {
	Inline   map[string]bool `yaml:"inline,omitempty"` // wall name -> is mirror
	FromFile string          `yaml:"from_file,omitempty"`
}

type Source struct {
	Name       string     `yaml:"name"`
	Mesh       string     `yaml:"mesh,omitempty"` // optional 3MF file
	Position   [3]float64 `yaml:"position"`
	YawDegrees float64    `yaml:"yaw_degrees"`
	Radius     float64    `yaml:"radius"`
	ColorMode  string     `yaml:"color_mode"`
}

type Rays struct {
	Count           int     `yaml:"count"`
	FanCount        int     `yaml:"fan_count"`
	FanAngleDegrees float64 `yaml:"fan_angle_degrees"`
}

type Simulation struct {
	Bounces int `yaml:"bounces"`
}

type Output struct {
	ImageSize int `yaml:"image_size"`
}

// Default returns the configuration of the stock room: three mirrors, a unit cube in the middle.
func Default() *SessionConfig {
	return &SessionConfig{
		Room: Room{HalfExtent: 10, Height: 3},
		Mirrors: Mirrors{Inline: map[string]bool{
			"north": true, "east": true, "west": true, "south": false,
		}},
		Source: Source{
			Name:      "cube",
			Position:  [3]float64{0, 1, 0},
			Radius:    0.5,
			ColorMode: "exit_face",
		},
		Rays:       Rays{Count: 4, FanCount: 3, FanAngleDegrees: 90},
		Simulation: Simulation{Bounces: 3},
		Output:     Output{ImageSize: 800},
	}
}
