// Package config loads the objects.json document describing extra observer
// cities, comets, and satellites.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// DefaultPath is the configuration filename looked up in the working
// directory when no --config flag is given.
const DefaultPath = "objects.json"

// Coordinate holds a latitude or longitude that may appear in JSON as a
// number (37.2268) or a string ("37:13:36.0"). The raw text is preserved;
// parsing to an angle happens in the sites package.
type Coordinate string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Coordinate(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("coordinate %s is neither number nor string", data)
	}
	*c = Coordinate(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// City is an extra observer site supplementing the built-in table.
type City struct {
	Name      string     `json:"name"`
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
	Elevation float64    `json:"elevation"`
}

// Comet is a configured comet. DBInfo is an XEphem db record.
type Comet struct {
	Display bool   `json:"display"`
	DBInfo  string `json:"db_info"`
}

// Satellite is a configured Earth satellite with two-line elements.
type Satellite struct {
	Display  bool   `json:"display"`
	Name     string `json:"name"`
	TLELine1 string `json:"tle_line1"`
	TLELine2 string `json:"tle_line2"`
}

// Config is the parsed objects.json document. Every key is optional;
// an absent key simply leaves the feature unconfigured.
type Config struct {
	DefaultCity string      `json:"default_city"`
	Cities      []City      `json:"cities"`
	Comets      []Comet     `json:"comets"`
	Satellites  []Satellite `json:"satellites"`
}

// Load reads and parses the configuration file at path. A missing or
// malformed file is an error; callers treat it as fatal.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
