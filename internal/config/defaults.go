package config

const (
	defaultGridDir    = "~/.local/share/specgrid/grids"
	defaultAbsGridDir = "~/.local/share/specgrid/grids_abs"
	defaultOutputDir  = "."
	defaultLogDir     = "~/.local/share/specgrid/logs"
	defaultDataDir    = "~/.local/share/specgrid"

	defaultMode            = "default"
	defaultOrder           = 4
	defaultStep            = 0.01
	defaultPadding         = 20.0
	defaultWavelengthScale = "vacuum"
	defaultClampPolicy     = "clamp"
	defaultVRotThreshold   = 0.01
	defaultLimbDarkening   = 0.6
	defaultAirCoefficients = "edlen1953"

	defaultCacheMaxMebibytes = 0
	defaultLoadConcurrency   = 4

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults. Synthesis
// defaults match the reference pipeline: order-4 interpolation, 0.01 A
// output step, 20 A padding.
func Default() Config {
	return Config{
		Paths: Paths{
			GridDir:    defaultGridDir,
			AbsGridDir: defaultAbsGridDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
			DataDir:    defaultDataDir,
		},
		Synthesis: Synthesis{
			Mode:            defaultMode,
			Order:           defaultOrder,
			Step:            defaultStep,
			Padding:         defaultPadding,
			WavelengthScale: defaultWavelengthScale,
			ClampPolicy:     defaultClampPolicy,
			VRotThreshold:   defaultVRotThreshold,
			LimbDarkening:   defaultLimbDarkening,
			AirCoefficients: defaultAirCoefficients,
		},
		Cache: Cache{
			MaxMebibytes:    defaultCacheMaxMebibytes,
			LoadConcurrency: defaultLoadConcurrency,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
