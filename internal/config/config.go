package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/cascade-menu/internal/app"
	"github.com/atomicstack/cascade-menu/internal/cascade"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envMenu        = "CASCADE_MENU_FILE"
	envWatch       = "CASCADE_MENU_WATCH"
	envDelay       = "CASCADE_MENU_DELAY"
	envVariant     = "CASCADE_MENU_VARIANT"
	envRTL         = "CASCADE_MENU_RTL"
	envOpen        = "CASCADE_MENU_OPEN"
	envNoAutoFocus = "CASCADE_MENU_NO_AUTOFOCUS"
	envNoFocusItem = "CASCADE_MENU_NO_AUTOFOCUS_ITEM"
	envAnchor      = "CASCADE_MENU_ANCHOR"
	envSocketPath  = "CASCADE_MENU_SOCKET"
	envWidth       = "CASCADE_MENU_WIDTH"
	envHeight      = "CASCADE_MENU_HEIGHT"
	envShowFooter  = "CASCADE_MENU_FOOTER"
	envVerbose     = "CASCADE_MENU_VERBOSE"
	envTrace       = "CASCADE_MENU_TRACE"
	envLogFile     = "CASCADE_MENU_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("cascade-menu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuFile := fs.String("menu", envOrDefault(env, envMenu, ""), "path to a TOML menu definition (demo menu when empty)")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload the menu definition when it changes")
	delay := fs.Duration("delay", envOrDuration(env, envDelay, cascade.DefaultTransitionDelay), "delay before a hovered submenu opens or closes")
	variant := fs.String("variant", envOrDefault(env, envVariant, cascade.VariantSelectedMenu.String()), "initial focus variant: menu or selectedMenu")
	rtl := fs.Bool("rtl", envOrBool(env, envRTL, false), "open submenus to the left and mirror arrow keys")
	open := fs.Bool("open", envOrBool(env, envOpen, false), "start with the menu open")
	noAutoFocus := fs.Bool("no-autofocus", envOrBool(env, envNoAutoFocus, false), "keep focus on the anchor when the menu opens")
	noFocusItem := fs.Bool("no-autofocus-item", envOrBool(env, envNoFocusItem, false), "focus the list rather than an item when the menu opens")
	anchor := fs.String("anchor", envOrDefault(env, envAnchor, ""), "label of the menu button (defaults to the definition title)")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "tmux socket used by tmux actions")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show status messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			Menu:          *menuFile,
			Watch:         *watch,
			Delay:         *delay,
			Variant:       *variant,
			RTL:           *rtl,
			StartOpen:     *open,
			AutoFocus:     !*noAutoFocus,
			AutoFocusItem: !*noFocusItem,
			Title:         *anchor,
			SocketPath:    *socket,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Verbose:       *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"menu":            *menuFile,
			"watch":           strconv.FormatBool(*watch),
			"delay":           delay.String(),
			"variant":         *variant,
			"rtl":             strconv.FormatBool(*rtl),
			"open":            strconv.FormatBool(*open),
			"noAutoFocus":     strconv.FormatBool(*noAutoFocus),
			"noAutoFocusItem": strconv.FormatBool(*noFocusItem),
			"anchor":          *anchor,
			"socket":          *socket,
			"width":           strconv.Itoa(*width),
			"height":          strconv.Itoa(*height),
			"footer":          strconv.FormatBool(*footer),
			"trace":           strconv.FormatBool(*trace),
			"verbose":         strconv.FormatBool(*verbose),
			"logFile":         *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// envOrDuration accepts Go durations ("150ms") or a bare number of
// milliseconds.
func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects option combinations the application cannot run with.
func Validate(cfg Config) error {
	if _, err := cascade.ParseVariant(cfg.App.Variant); err != nil {
		return err
	}
	if cfg.App.Delay < 0 {
		return fmt.Errorf("delay must be >= 0 (got %s)", cfg.App.Delay)
	}
	if cfg.App.Watch && strings.TrimSpace(cfg.App.Menu) == "" {
		return errors.New("-watch needs a -menu file")
	}
	return nil
}
