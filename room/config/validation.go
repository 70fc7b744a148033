package config

import (
	"fmt"
	"regexp"
	"strings"
)

const maxScanSamples = 10000

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

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

func validateColor(field, value string) []ValidationError {
	if !hexColor.MatchString(value) {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("%q is not a hex color", value),
		}}
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

// FormatValidationErrors groups errors by their top level section
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	// Group errors by category, keeping the order they were found in
	var order []string
	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		if _, ok := categories[category]; !ok {
			order = append(order, category)
		}
		categories[category] = append(categories[category], err)
	}

	for _, category := range order {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
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
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Input.Validate()...)
	errors = append(errors, c.Simulation.Validate()...)
	errors = append(errors, c.Render.Validate()...)
	errors = append(errors, c.Scan.Validate()...)
	errors = append(errors, c.Server.Validate()...)
	return errors
}

func (i *Input) Validate() []ValidationError {
	var errors []ValidationError

	if i.Room.Path != "" && i.Mesh.Path != "" {
		errors = append(errors, ValidationError{
			Field:   "input",
			Message: "room.path and mesh.path are mutually exclusive",
		})
	}
	if i.Mesh.Path != "" {
		errors = append(errors, validatePositive("input.mesh.scale", i.Mesh.Scale)...)
	}

	return errors
}

func (s *Simulation) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePositive("simulation.max_ray_depth", float64(s.MaxRayDepth))...)
	errors = append(errors, validatePositive("simulation.far_distance", s.FarDistance)...)
	errors = append(errors, validateNonNegative("simulation.min_hit_distance", s.MinHitDistance)...)
	errors = append(errors, validatePositive("simulation.precision", s.Precision)...)
	if s.MinHitDistance >= s.FarDistance && s.FarDistance > 0 {
		errors = append(errors, ValidationError{
			Field:   "simulation.min_hit_distance",
			Message: "must be smaller than far_distance",
		})
	}

	return errors
}

func (r *Render) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePositive("render.width", float64(r.Width))...)
	errors = append(errors, validatePositive("render.height", float64(r.Height))...)
	errors = append(errors, validateNonNegative("render.margin", r.Margin)...)
	if 2*r.Margin >= float64(r.Width) || 2*r.Margin >= float64(r.Height) {
		errors = append(errors, ValidationError{
			Field:   "render.margin",
			Message: "leaves no room to draw",
		})
	}

	errors = append(errors, validateColor("render.colors.background", r.Colors.Background)...)
	errors = append(errors, validateColor("render.colors.wall", r.Colors.Wall)...)
	errors = append(errors, validateColor("render.colors.round_wall", r.Colors.RoundWall)...)
	errors = append(errors, validateColor("render.colors.point", r.Colors.Point)...)
	errors = append(errors, validateColor("render.colors.ray", r.Colors.Ray)...)
	errors = append(errors, validateColor("render.colors.aim", r.Colors.Aim)...)

	errors = append(errors, validatePositive("render.wall_width", r.WallWidth)...)
	errors = append(errors, validatePositive("render.ray_width", r.RayWidth)...)
	errors = append(errors, validateNonNegative("render.point_radius", r.PointRadius)...)

	return errors
}

func (s *Scan) Validate() []ValidationError {
	return validateInRange("scan.samples", float64(s.Samples), 2, maxScanSamples)
}

func (s *Server) Validate() []ValidationError {
	var errors []ValidationError

	if s.Addr == "" {
		errors = append(errors, ValidationError{
			Field:   "server.addr",
			Message: "listen address is required",
		})
	}
	if s.DBPath == "" {
		errors = append(errors, ValidationError{
			Field:   "server.db_path",
			Message: "database path is required",
		})
	}
	errors = append(errors, validatePositive("server.read_timeout", s.ReadTimeout.Seconds())...)
	errors = append(errors, validatePositive("server.write_timeout", s.WriteTimeout.Seconds())...)

	return errors
}
