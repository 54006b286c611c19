// Package seed loads the activities a session starts with.
package seed

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/tkrajina/gpxgo/gpx"
	"gopkg.in/yaml.v3"

	"github.com/ramanasai/fitlog/internal/activity"
)

type file struct {
	Activities []entry `yaml:"activities"`
}

type entry struct {
	Name     string `yaml:"name"`
	Duration string `yaml:"duration"`
}

// ReadYAML parses a seed document of the form
//
//	activities:
//	  - name: "🏃 Evening Running"
//	    duration: "30 mins"
//
// Entries are listed newest first. Entries with a blank name or duration are
// skipped, matching what the entry form accepts.
func ReadYAML(r io.Reader) ([]activity.Record, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	records := make([]activity.Record, 0, len(f.Activities))
	for _, e := range f.Activities {
		name, duration := strings.TrimSpace(e.Name), strings.TrimSpace(e.Duration)
		if name == "" || duration == "" {
			continue
		}
		records = append(records, activity.Record{Name: name, DurationText: duration})
	}
	return records, nil
}

// LoadYAML reads a seed file from disk.
func LoadYAML(path string) ([]activity.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return ReadYAML(f)
}

// ParseGPX turns a GPX track into a record. The duration is the moving time,
// falling back to the total elapsed time when the track has no movement data.
func ParseGPX(b []byte) (activity.Record, error) {
	g, err := gpx.ParseBytes(b)
	if err != nil {
		return activity.Record{}, fmt.Errorf("parse gpx: %w", err)
	}

	seconds := g.MovingData().MovingTime
	if seconds <= 0 {
		seconds = g.Duration()
	}
	minutes := int(math.Round(seconds / 60))

	name := strings.TrimSpace(g.Name)
	if name == "" && len(g.Tracks) > 0 {
		name = strings.TrimSpace(g.Tracks[0].Name)
	}
	if name == "" {
		name = defaultRunName(startTime(g))
	}

	return activity.Record{Name: name, DurationText: fmt.Sprintf("%d mins", minutes)}, nil
}

// LoadGPX reads and parses a GPX file.
func LoadGPX(path string) (activity.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return activity.Record{}, fmt.Errorf("error reading gpx file: %w", err)
	}
	if info.IsDir() {
		return activity.Record{}, fmt.Errorf("gpx file %s is a directory", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return activity.Record{}, err
	}
	return ParseGPX(bytes.TrimSpace(b))
}

func startTime(g *gpx.GPX) time.Time {
	if g.Time != nil {
		return *g.Time
	}
	return g.TimeBounds().StartTime
}

// defaultRunName names an untitled track by the hour it started. The last
// word is "Running" so the name resolves to a table key.
func defaultRunName(t time.Time) string {
	switch {
	case t.IsZero():
		return "Running"
	case t.Hour() >= 18:
		return "Night Running"
	case t.Hour() >= 12:
		return "Afternoon Running"
	default:
		return "Morning Running"
	}
}

// Load collects records from an optional YAML file and any GPX files. GPX
// tracks come first since they are the most recent additions.
func Load(yamlPath string, gpxPaths []string) ([]activity.Record, error) {
	var records []activity.Record
	for _, p := range gpxPaths {
		r, err := LoadGPX(p)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if yamlPath != "" {
		rs, err := LoadYAML(yamlPath)
		if err != nil {
			return nil, err
		}
		records = append(records, rs...)
	}
	return records, nil
}
