package config

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/jdginn/go-mirror-room/room"
)

// Validation helper functions
func validatePositive(field string, value float64) []ValidationError {
	if value <= 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if value < min || value > max {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

func validateFinite(field string, vec [3]float64) []ValidationError {
	for _, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return []ValidationError{{
				Field:   field,
				Message: "must be finite",
			}}
		}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by their top-level section
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	// Group errors by category
	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		categories[category] = append(categories[category], err)
	}

	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	// Print errors by category
	for _, category := range names {
		categoryErrors := categories[category]
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categoryErrors {
			// Remove category prefix from field for cleaner display
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *SessionConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Room.Validate()...)
	errors = append(errors, c.Mirrors.Validate()...)
	errors = append(errors, c.Source.Validate(c.Room.HalfExtent)...)
	errors = append(errors, c.Rays.Validate()...)
	errors = append(errors, c.Output.Validate()...)
	return errors
}

func (r *Room) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, validatePositive("room.half_extent", r.HalfExtent)...)
	errors = append(errors, validateNonNegative("room.height", r.Height)...)
	return errors
}

func (m *Mirrors) Validate() []ValidationError {
	var errors []ValidationError

	if m.Inline == nil && m.FromFile == "" {
		errors = append(errors, ValidationError{
			Field:   "mirrors",
			Message: "either inline or from_file must be specified",
		})
		return errors
	}

	for name := range m.Inline {
		if _, err := room.ParseWallID(name); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("mirrors.inline.%s", name),
				Message: fmt.Sprintf("unknown wall '%s'", name),
			})
		}
	}

	// A file may still supply mirrors that are merged later
	if m.FromFile == "" && len(m.WallIDs()) == 0 {
		errors = append(errors, ValidationError{
			Field:   "mirrors.inline",
			Message: "at least one wall must be a mirror",
		})
	}

	return errors
}

func (s *Source) Validate(halfExtent float64) []ValidationError {
	var errors []ValidationError

	if s.Name == "" {
		errors = append(errors, ValidationError{
			Field:   "source.name",
			Message: "name is required",
		})
	}

	errors = append(errors, validateFinite("source.position", s.Position)...)
	// Rays start radius away from the centre, so the whole source must fit inside the walls
	margin := math.Max(s.Radius, 0)
	if halfExtent > 0 && (math.Abs(s.Position[0])+margin >= halfExtent || math.Abs(s.Position[2])+margin >= halfExtent) {
		errors = append(errors, ValidationError{
			Field:   "source.position",
			Message: fmt.Sprintf("source of radius %v must lie strictly inside the room (|x|+radius, |z|+radius < %v)", s.Radius, halfExtent),
		})
	}

	errors = append(errors, validatePositive("source.radius", s.Radius)...)

	if _, err := room.ParseColorMode(s.ColorMode); err != nil {
		errors = append(errors, ValidationError{
			Field:   "source.color_mode",
			Message: err.Error(),
		})
	}

	return errors
}

func (r *Rays) Validate() []ValidationError {
	var errors []ValidationError
	if r.FanAngleDegrees <= 0 || r.FanAngleDegrees > 360 {
		errors = append(errors, ValidationError{
			Field:   "rays.fan_angle_degrees",
			Message: "must be in (0, 360]",
		})
	}
	return errors
}

func (o *Output) Validate() []ValidationError {
	return validateInRange("output.image_size", float64(o.ImageSize), 16, 8192)
}

// ClampSliders pulls the interactive values into their supported ranges. Out of range values are
// not errors; they are logged and clamped.
func (c *SessionConfig) ClampSliders() {
	clamp := func(field string, v *int, lo, hi int) {
		clamped := room.Clamp(*v, lo, hi)
		if clamped != *v {
			log.Printf("%s=%d out of range [%d, %d], using %d", field, *v, lo, hi, clamped)
			*v = clamped
		}
	}
	clamp("rays.count", &c.Rays.Count, 0, room.MaxRayCount)
	clamp("rays.fan_count", &c.Rays.FanCount, room.MinFanCount, room.MaxFanCount)
	clamp("simulation.bounces", &c.Simulation.Bounces, 1, room.MaxTraceBounces)
}
