package config

// Lua schema field names and globals
const (
	luaGlobalSetup      = "setup"
	luaFieldRuntime     = "runtime"
	luaFieldName        = "name"
	luaFieldLabel       = "label"
	luaFieldPackageTool = "package_tool"
	luaFieldMinMajor    = "min_major"
	luaFieldRelease     = "release"
	luaFieldDist        = "dist"
	luaFieldDeps        = "deps"
	luaFieldMarker      = "marker"
	luaFieldScripts     = "scripts"
	luaFieldDev         = "dev"
	luaFieldBuild       = "build"
	luaFieldOutput      = "output"
	luaFieldVerify      = "verify"
	luaFieldKeyring     = "keyring"
)
