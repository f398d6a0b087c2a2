package chunk

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Date represents a date in YYYY-MM-DD format for YAML serialization
type Date struct {
	time.Time
}

// MarshalYAML implements the yaml.Marshaler interface
func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format("2006-01-02"), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	// First try the plain YYYY-MM-DD format
	t, err := time.Parse("2006-01-02", value.Value)
	if err == nil {
		d.Time = t
		return nil
	}

	// If that fails, try the RFC3339 timestamp format
	t, err = time.Parse(time.RFC3339, value.Value)
	if err == nil {
		d.Time = t
		return nil
	}

	// If that fails, try RFC3339Nano format (with nanoseconds)
	t, err = time.Parse(time.RFC3339Nano, value.Value)
	if err == nil {
		d.Time = t
		return nil
	}

	return fmt.Errorf("unable to parse date '%s': expected YYYY-MM-DD, RFC3339, or RFC3339Nano format", value.Value)
}

// NewDate creates a new Date from a time.Time
func NewDate(t time.Time) Date {
	return Date{Time: t}
}
