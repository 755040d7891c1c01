package logging

import (
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StartupLogger collects binary identity, external tool availability,
// feature flags and effective configuration, then emits a single structured
// zerolog event summarising the startup state. One event instead of a
// scatter of init-time lines makes it easy to see exactly how a run was
// configured when reading logs after the fact.
type StartupLogger struct {
	name         string
	commitHash   string
	buildTime    string
	initDuration time.Duration

	tools    map[string]string
	features map[string]bool
	config   map[string]string
}

// NewStartupLogger creates a StartupLogger for the given binary name
// (e.g. "scenekit-cli").
func NewStartupLogger(name string) *StartupLogger {
	return &StartupLogger{
		name:     name,
		tools:    make(map[string]string),
		features: make(map[string]bool),
		config:   make(map[string]string),
	}
}

// CommitHash sets the git commit hash baked into the binary at build time.
func (s *StartupLogger) CommitHash(hash string) *StartupLogger {
	s.commitHash = hash
	return s
}

// BuildTime sets the UTC build timestamp baked into the binary at build time.
func (s *StartupLogger) BuildTime(t string) *StartupLogger {
	s.buildTime = t
	return s
}

// Tool registers an external tool this binary depends on and the resolved
// path it was found at. An empty path records the tool as missing.
func (s *StartupLogger) Tool(label, path string) *StartupLogger {
	s.tools[label] = path
	return s
}

// Feature registers a boolean feature flag (e.g. "saveFrames", "exportZip").
func (s *StartupLogger) Feature(name string, enabled bool) *StartupLogger {
	s.features[name] = enabled
	return s
}

// Config registers a non-sensitive configuration key-value pair.
func (s *StartupLogger) Config(key, value string) *StartupLogger {
	s.config[key] = value
	return s
}

// InitDuration records how long startup wiring took to complete.
func (s *StartupLogger) InitDuration(d time.Duration) *StartupLogger {
	s.initDuration = d
	return s
}

// EnvOrDefault returns the value of the named environment variable, or
// defaultVal if the variable is empty or unset.
func EnvOrDefault(envVar, defaultVal string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return defaultVal
}

// Log emits a single structured INFO log event with all collected information.
func (s *StartupLogger) Log() {
	evt := log.Info()

	binaryDict := zerolog.Dict().
		Str("name", s.name).
		Str("goVersion", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Str("logLevel", os.Getenv("SCENEKIT_LOG_LEVEL"))

	if s.commitHash != "" {
		binaryDict = binaryDict.Str("commitHash", s.commitHash)
	}
	if s.buildTime != "" {
		binaryDict = binaryDict.Str("buildTime", s.buildTime)
	}

	evt = evt.Dict("binary", binaryDict)

	if len(s.tools) > 0 {
		evt = evt.Dict("tools", dictFromMap(s.tools))
	}

	if len(s.features) > 0 {
		d := zerolog.Dict()
		for k, v := range s.features {
			d = d.Bool(k, v)
		}
		evt = evt.Dict("features", d)
	}

	if len(s.config) > 0 {
		evt = evt.Dict("config", dictFromMap(s.config))
	}

	if s.initDuration > 0 {
		evt = evt.Dur("initDuration", s.initDuration)
	}

	evt.Msg("Startup complete")
}

// dictFromMap converts a map[string]string into a zerolog.Event (Dict).
func dictFromMap(m map[string]string) *zerolog.Event {
	d := zerolog.Dict()
	for k, v := range m {
		d = d.Str(k, v)
	}
	return d
}
