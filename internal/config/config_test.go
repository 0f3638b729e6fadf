package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "objects.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeTemp(t, `{
		"default_city": "Los Gatos",
		"cities": [
			{"name": "Los Gatos", "latitude": "37:13:36.0", "longitude": -121.984, "elevation": 120}
		],
		"comets": [
			{"display": true, "db_info": "C/Test,h,11/28.7747/2013,62.3990,295.6529,345.5644,1.000002,0.012444,2000,7.5,3.2"},
			{"display": false, "db_info": "garbage"}
		],
		"satellites": [
			{"display": true, "name": "ISS (ZARYA)",
			 "tle_line1": "1 25544U 98067A   25138.37048074  .00007749  00000+0  14567-3 0  9994",
			 "tle_line2": "2 25544  51.6369  94.7823 0002558 120.7586  15.7840 15.49587957510533"}
		]
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DefaultCity != "Los Gatos" {
		t.Errorf("DefaultCity = %q, want Los Gatos", cfg.DefaultCity)
	}
	if len(cfg.Cities) != 1 {
		t.Fatalf("len(Cities) = %d, want 1", len(cfg.Cities))
	}
	city := cfg.Cities[0]
	if city.Latitude != "37:13:36.0" {
		t.Errorf("Latitude = %q, want sexagesimal string preserved", city.Latitude)
	}
	if city.Longitude != "-121.984" {
		t.Errorf("Longitude = %q, want numeric coerced to string", city.Longitude)
	}
	if city.Elevation != 120 {
		t.Errorf("Elevation = %v, want 120", city.Elevation)
	}
	if len(cfg.Comets) != 2 || cfg.Comets[1].Display {
		t.Errorf("comet list not preserved: %+v", cfg.Comets)
	}
	if len(cfg.Satellites) != 1 || cfg.Satellites[0].Name != "ISS (ZARYA)" {
		t.Errorf("satellite list not preserved: %+v", cfg.Satellites)
	}
}

func TestLoad_MissingKeysAreNotErrors(t *testing.T) {
	cfg, err := Load(writeTemp(t, `{}`))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DefaultCity != "" || cfg.Cities != nil || cfg.Comets != nil || cfg.Satellites != nil {
		t.Errorf("empty document should leave all features unconfigured: %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load() on a missing file should fail")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(writeTemp(t, `{"cities": [`))
	if err == nil {
		t.Fatal("Load() on malformed JSON should fail")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("error should name the parse failure, got %v", err)
	}
}

func TestCoordinate_BadType(t *testing.T) {
	_, err := Load(writeTemp(t, `{"cities": [{"name": "X", "latitude": [1], "longitude": 0, "elevation": 0}]}`))
	if err == nil {
		t.Error("Load() with an array coordinate should fail")
	}
}
