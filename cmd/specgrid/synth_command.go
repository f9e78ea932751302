package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"specgrid/internal/store"
	"specgrid/internal/synth"
)

func newSynthCommand(ctx *commandContext) *cobra.Command {
	var (
		teff, logg, z   float64
		low, high       float64
		step, padding   float64
		order           int
		vrot, epsilon   float64
		mode            string
		absolute        bool
		scale           string
		airCoefficients string
		clampPolicy     string
		outputPath      string
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize a spectrum at a parameter point",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			synthesizer, err := ctx.ensureSynthesizer()
			if err != nil {
				return err
			}

			req := synth.RequestFromConfig(cfg)
			req.Point = []float64{teff, logg, z}
			req.Low = low
			req.High = high
			flags := cmd.Flags()
			if flags.Changed("mode") {
				req.Mode = mode
			}
			req.Absolute = absolute
			if flags.Changed("step") {
				req.Step = step
			}
			if flags.Changed("padding") {
				req.Padding = padding
			}
			if flags.Changed("order") {
				req.Order = order
			}
			req.VRot = vrot
			if flags.Changed("epsilon") {
				req.LimbDarkening = epsilon
			}
			if flags.Changed("scale") {
				req.WavelengthScale = scale
			}
			if flags.Changed("air-coefficients") {
				req.AirCoefficients = airCoefficients
			}
			if flags.Changed("clamp") {
				req.ClampPolicy = clampPolicy
			}

			out := cmd.OutOrStdout()
			history := openHistory(ctx, cmd)
			if history != nil {
				defer history.Close()
				if prior, err := history.FindByFingerprint(cmd.Context(), req.Fingerprint()); err == nil {
					fmt.Fprintf(out, "Note: identical request completed %s (record %d, %s)\n",
						prior.CreatedAt.Format("2006-01-02 15:04:05"), prior.ID, prior.OutputPath)
				}
			}

			result, err := synthesizer.Synthesize(cmd.Context(), req)
			if err != nil {
				if history != nil {
					if _, recordErr := history.RecordFailure(cmd.Context(), req, err.Error()); recordErr != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "Warning: record failure in history: %v\n", recordErr)
					}
				}
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = filepath.Join(cfg.Paths.OutputDir, defaultOutputName(req))
			}
			if err := writeSpectrum(target, result); err != nil {
				return err
			}

			if history != nil {
				if _, err := history.RecordSuccess(cmd.Context(), req, result.Meta, len(result.Wave), target); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: record success in history: %v\n", err)
				}
			}

			printer := message.NewPrinter(language.English)
			printer.Fprintf(out, "Synthesized %d points over [%g, %g] A (%s scale)\n",
				len(result.Wave), req.Low, req.High, result.Meta.WavelengthScale)
			if result.Meta.Clamped() {
				fmt.Fprintf(out, "Warning: parameters clamped to grid boundary on: %s\n",
					strings.Join(result.Meta.ClampedAxes, ", "))
			}
			fmt.Fprintf(out, "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().Float64Var(&teff, "teff", 0, "Effective temperature in K")
	cmd.Flags().Float64Var(&logg, "logg", 0, "Surface gravity log g (cgs)")
	cmd.Flags().Float64Var(&z, "z", 1.0, "Metallicity relative to solar")
	cmd.Flags().Float64Var(&low, "low", 0, "Window lower bound in Angstrom")
	cmd.Flags().Float64Var(&high, "high", 0, "Window upper bound in Angstrom")
	cmd.Flags().Float64Var(&step, "step", 0, "Output wavelength step in Angstrom")
	cmd.Flags().Float64Var(&padding, "padding", 0, "Processing margin in Angstrom")
	cmd.Flags().IntVar(&order, "order", 0, "Interpolation order per axis")
	cmd.Flags().Float64Var(&vrot, "vrot", 0, "Projected rotational velocity in km/s")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0, "Linear limb-darkening coefficient")
	cmd.Flags().StringVar(&mode, "mode", "", "Grid mode")
	cmd.Flags().BoolVar(&absolute, "absolute", false, "Use absolute-flux grids")
	cmd.Flags().StringVar(&scale, "scale", "", "Output wavelength scale (vacuum or air)")
	cmd.Flags().StringVar(&airCoefficients, "air-coefficients", "", "Air dispersion formula (edlen1953 or edlen1966)")
	cmd.Flags().StringVar(&clampPolicy, "clamp", "", "Out-of-range policy (clamp or error)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")

	for _, name := range []string{"teff", "logg", "low", "high"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// openHistory returns the history store, or nil when history is disabled
// or unavailable. Synthesis proceeds either way.
func openHistory(ctx *commandContext, cmd *cobra.Command) *store.Store {
	cfg, err := ctx.ensureConfig()
	if err != nil || !cfg.History.Enabled {
		return nil
	}
	history, err := store.Open(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: history unavailable: %v\n", err)
		return nil
	}
	return history
}

func defaultOutputName(req synth.Request) string {
	mode := req.Mode
	if req.Absolute {
		mode += "_abs"
	}
	return fmt.Sprintf("%s_t%g_g%g_z%g_%g-%g.dat", mode,
		req.Point[0], req.Point[1], req.Point[2], req.Low, req.High)
}
