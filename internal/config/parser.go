package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/frameforge/frameforge-setup/internal/platform"
)

// Parser represents a Lua config parser with platform detection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new config parser with the given platform detector.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// Load reads the config file at path. A missing file yields Default().
func (p *Parser) Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return p.ParseString(ctx, string(data))
}

// ParseString parses a Lua config from a string, starting from Default().
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()

	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// extractConfig extracts the config from a Lua state.
// It expects a global "setup" table; its absence means all defaults.
func extractConfig(L *lua.LState) (*Config, error) {
	cfg := Default()

	setupVal := L.GetGlobal(luaGlobalSetup)
	switch setupVal.Type() {
	case lua.LTNil:
		return cfg, nil
	case lua.LTTable:
	default:
		return nil, &ParseError{
			Message: "invalid 'setup' table",
			Detail:  fmt.Sprintf("expected table, got %s", setupVal.Type()),
		}
	}
	table := setupVal.(*lua.LTable)

	var errs []error

	if rt, err := subTable(table, luaFieldRuntime); err != nil {
		errs = append(errs, err)
	} else if rt != nil {
		errs = append(errs,
			stringField(rt, luaFieldRuntime, luaFieldName, &cfg.Runtime.Name),
			stringField(rt, luaFieldRuntime, luaFieldLabel, &cfg.Runtime.Label),
			stringField(rt, luaFieldRuntime, luaFieldPackageTool, &cfg.Runtime.PackageTool),
			intField(rt, luaFieldRuntime, luaFieldMinMajor, &cfg.Runtime.MinMajor),
			stringField(rt, luaFieldRuntime, luaFieldRelease, &cfg.Runtime.Release),
			stringField(rt, luaFieldRuntime, luaFieldDist, &cfg.Runtime.Dist),
		)
	}

	if deps, err := subTable(table, luaFieldDeps); err != nil {
		errs = append(errs, err)
	} else if deps != nil {
		errs = append(errs, stringField(deps, luaFieldDeps, luaFieldMarker, &cfg.Deps.Marker))
	}

	if scripts, err := subTable(table, luaFieldScripts); err != nil {
		errs = append(errs, err)
	} else if scripts != nil {
		errs = append(errs,
			stringField(scripts, luaFieldScripts, luaFieldDev, &cfg.Scripts.Dev),
			stringField(scripts, luaFieldScripts, luaFieldBuild, &cfg.Scripts.Build),
			stringField(scripts, luaFieldScripts, luaFieldOutput, &cfg.Scripts.Output),
		)
	}

	var verify string
	errs = append(errs,
		stringField(table, luaGlobalSetup, luaFieldVerify, &verify),
		stringField(table, luaGlobalSetup, luaFieldKeyring, &cfg.Keyring),
	)
	if verify != "" {
		cfg.Verify = VerifyMode(strings.ToLower(verify))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, &ParseError{
			Message: "invalid field type",
			Detail:  err.Error(),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return cfg, nil
}

// subTable returns table[key] if it is a table, nil if it is absent.
func subTable(table *lua.LTable, key string) (*lua.LTable, error) {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return nil, nil
	case lua.LTTable:
		return v.(*lua.LTable), nil
	default:
		return nil, fmt.Errorf("%s must be a table, got %s", key, v.Type())
	}
}

// stringField copies table[key] into dst when it is a string. Absent keys
// (including nil from platform.when) leave dst unchanged.
func stringField(table *lua.LTable, section, key string, dst *string) error {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTString:
		*dst = v.String()
		return nil
	default:
		return fmt.Errorf("%s.%s must be a string, got %s", section, key, v.Type())
	}
}

// intField copies table[key] into dst when it is an integral number.
func intField(table *lua.LTable, section, key string, dst *int) error {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTNumber:
		n := float64(lua.LVAsNumber(v))
		if n != float64(int(n)) {
			return fmt.Errorf("%s.%s must be an integer, got %v", section, key, n)
		}
		*dst = int(n)
		return nil
	default:
		return fmt.Errorf("%s.%s must be a number, got %s", section, key, v.Type())
	}
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}
