package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/cascade-menu/internal/app"
	"github.com/atomicstack/cascade-menu/internal/config"
	"github.com/atomicstack/cascade-menu/internal/logging"
	"github.com/atomicstack/cascade-menu/internal/logging/events"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(exitUsage)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	output, err := app.Run(runtimeCfg.App)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	} else if output != "" {
		fmt.Println(output)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a run error onto the process status. A menu file that does
// not load is a usage problem, like a bad flag.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, app.ErrMenu):
		return exitUsage
	default:
		return exitFailure
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	source := cfg.App.Menu
	if source == "" {
		source = "demo"
	}
	tty := collectTTYDetails()
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"menu":     source,
		"tty":      tty,
		"viewport": resolveViewport(cfg.App, tty),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

type ttyDetails struct {
	Detected *ttySize         `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttySize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// viewport is the screen size the menu will lay itself out in: a fixed
// -width/-height wins over the detected terminal.
type viewport struct {
	Width       int  `json:"width"`
	Height      int  `json:"height"`
	FixedWidth  bool `json:"fixed_width"`
	FixedHeight bool `json:"fixed_height"`
}

func resolveViewport(cfg app.Config, tty ttyDetails) viewport {
	vp := viewport{Width: cfg.Width, Height: cfg.Height}
	vp.FixedWidth = cfg.Width > 0
	vp.FixedHeight = cfg.Height > 0
	if tty.Detected != nil {
		if !vp.FixedWidth {
			vp.Width = tty.Detected.Width
		}
		if !vp.FixedHeight {
			vp.Height = tty.Detected.Height
		}
	}
	return vp
}

// collectTTYDetails probes the standard descriptors. Mouse reporting needs a
// terminal on stdin and the overlay needs one on stdout, so both are logged.
func collectTTYDetails() ttyDetails {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(files))}
	for i, f := range files {
		probe := probeTTY(names[i], int(f.Fd()))
		if details.Detected == nil && probe.IsTerminal && probe.Error == "" {
			details.Detected = &ttySize{Source: probe.Name, Width: probe.Width, Height: probe.Height}
		}
		details.Probes = append(details.Probes, probe)
	}
	return details
}

func probeTTY(name string, fd int) ttyProbeResult {
	result := ttyProbeResult{Name: name}
	if fd < 0 || !term.IsTerminal(fd) {
		return result
	}
	result.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Width, result.Height = width, height
	return result
}
