package touchtone

/*------------------------------------------------------------------
 *
 * Purpose:   	Read decoder settings from a file.
 *
 * Description:	The command line covers the usual cases.  A profile
 *		file is handy when the same tuning is used for a
 *		particular source of recordings, e.g.
 *
 *			window_ms: 40
 *			threshold: 500
 *			min_windows: 1
 *			workers: 4
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile is the file form of the decoder Options.
type Profile struct {
	WindowMS   int     `yaml:"window_ms"`
	Threshold  float64 `yaml:"threshold"`
	MinWindows int     `yaml:"min_windows"`
	Workers    int     `yaml:"workers"` // 0 = sequential decoder.
}

// DefaultProfile matches DefaultOptions.
func DefaultProfile() Profile {
	var o = DefaultOptions()
	return Profile{
		WindowMS:   o.WindowMS,
		Threshold:  o.Threshold,
		MinWindows: o.MinWindows,
	}
}

// Options converts the profile for Decode.
func (p Profile) Options() Options {
	return Options{
		WindowMS:   p.WindowMS,
		Threshold:  p.Threshold,
		MinWindows: p.MinWindows,
	}
}

// Validate checks everything that doesn't depend on the sample rate.
func (p Profile) Validate() error {
	if p.WindowMS <= 0 {
		return &ConfigError{Field: "window_ms", Value: float64(p.WindowMS), Reason: "must be positive"}
	}
	if !validThreshold(p.Threshold) {
		return &ConfigError{Field: "threshold", Value: p.Threshold, Reason: "must be a positive number"}
	}
	if p.MinWindows < 0 {
		return &ConfigError{Field: "min_windows", Value: float64(p.MinWindows), Reason: "must not be negative"}
	}
	if p.Workers < 0 {
		return &ConfigError{Field: "workers", Value: float64(p.Workers), Reason: "must not be negative"}
	}
	return nil
}

// ParseProfile reads YAML on top of the defaults.  Unknown keys are an error
// so a misspelled setting doesn't go unnoticed.
func ParseProfile(r io.Reader) (Profile, error) {
	var p = DefaultProfile()

	var dec = yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("decoder profile: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("decoder profile: %w", err)
	}

	return p, nil
}

// LoadProfile reads a profile file.
func LoadProfile(path string) (Profile, error) {
	var f, err = os.Open(path) //nolint:gosec
	if err != nil {
		return Profile{}, fmt.Errorf("decoder profile: %w", err)
	}
	defer f.Close()

	var p, perr = ParseProfile(f)
	if perr != nil {
		return Profile{}, fmt.Errorf("%s: %w", path, perr)
	}

	return p, nil
}

// Searched in order when no profile is named on the command line.
var profileLocations = []string{
	"touchtone.yaml", // Current working directory
	"/usr/local/share/touchtone/touchtone.yaml",
	"/usr/share/touchtone/touchtone.yaml",
}

// FindProfile returns the first profile location that exists, or "".
func FindProfile() string {
	var locations = []string{profileLocations[0]}

	if dir, err := os.UserConfigDir(); err == nil {
		locations = append(locations, filepath.Join(dir, "touchtone", "touchtone.yaml"))
	}
	locations = append(locations, profileLocations[1:]...)

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}
