package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/propagator-go/application"
	"github.com/felixgeelhaar/propagator-go/domain/geometry"
	"github.com/felixgeelhaar/propagator-go/domain/propagation"
	"github.com/felixgeelhaar/propagator-go/infrastructure/config"
	"github.com/felixgeelhaar/propagator-go/infrastructure/logging"
	"github.com/felixgeelhaar/propagator-go/infrastructure/stepper/helix"
	"github.com/felixgeelhaar/propagator-go/infrastructure/stepper/line"
)

// runOptions holds options for the run command.
type runOptions struct {
	configPath string
	maxSteps   uint
	verbose    bool
	jsonOutput bool
}

// runReport is the printable outcome of one propagation run.
type runReport struct {
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	Termination string      `json:"termination"`
	Steps       uint        `json:"steps"`
	PathLength  float64     `json:"path_length"`
	Position    *[3]float64 `json:"position,omitempty"`
	Direction   *[3]float64 `json:"direction,omitempty"`
	Samples     int         `json:"samples,omitempty"`
}

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Propagate a start state according to a configuration file",
		Long: `Run a propagation using the provided configuration file.

The start state is advanced through the configured field, step by step,
until the target surface is reached or the step/path-length budget is
exhausted.

Examples:
  # Propagate to the configured target
  proptool run -c run.yaml

  # Override the step budget
  proptool run -c run.yaml --max-steps 50000

  # Machine-readable output
  proptool run -c run.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPropagation(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (required)")
	cmd.Flags().UintVar(&opts.maxSteps, "max-steps", 0, "Maximum propagation steps (overrides config)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runPropagation executes the propagation with the given options.
func (a *App) runPropagation(ctx context.Context, opts *runOptions) error {
	loader := config.NewLoader()
	cfg, err := loader.LoadFile(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if opts.maxSteps > 0 {
		cfg.Propagation.MaxSteps = opts.maxSteps
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" {
		logging.Init(logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
	}

	if opts.verbose {
		fmt.Fprintf(a.stdout, "Configuration loaded: %s\n", cfg.Name)
		fmt.Fprintf(a.stdout, "Stepper: %s\n", cfg.Stepper.Type)
		fmt.Fprintf(a.stdout, "Direction: %s\n", cfg.Propagation.DirectionValue())
		fmt.Fprintf(a.stdout, "\n")
	}

	var report *runReport
	switch cfg.Stepper.Type {
	case "line":
		report, err = runLine(ctx, cfg)
	case "helix":
		report, err = runHelix(ctx, cfg)
	default:
		return fmt.Errorf("unknown stepper type: %s", cfg.Stepper.Type)
	}
	if err != nil {
		return err
	}
	report.Name = cfg.Name

	return a.printReport(report, opts.jsonOutput)
}

// runLine propagates with the straight-line stepper.
func runLine(ctx context.Context, cfg *config.RunConfig) (*runReport, error) {
	propagator, err := application.New[line.Parameters, *line.Cache](line.New())
	if err != nil {
		return nil, err
	}

	options := config.BuildOptions[line.Parameters, *line.Cache](cfg.Propagation)
	if err := attachRecorder(&options); err != nil {
		return nil, err
	}

	start := line.Parameters{
		Position:  cfg.StartPosition(),
		Direction: cfg.StartDirection(),
		Momentum:  cfg.Start.Momentum,
	}

	var result propagation.Result[line.Parameters]
	if target, ok := cfg.Surface(); ok {
		result, err = propagator.PropagateTo(ctx, start, target, options)
	} else {
		result, err = propagator.Propagate(ctx, start, options)
	}
	if err != nil {
		return nil, err
	}

	report := newReport(&result)
	if result.EndParameters != nil {
		report.Position = vecPtr(result.EndParameters.Position)
		report.Direction = vecPtr(result.EndParameters.Direction)
	}
	return report, nil
}

// runHelix propagates with the helix stepper.
func runHelix(ctx context.Context, cfg *config.RunConfig) (*runReport, error) {
	propagator, err := application.New[helix.Parameters, *helix.Cache](helix.New(cfg.FieldVector()))
	if err != nil {
		return nil, err
	}

	options := config.BuildOptions[helix.Parameters, *helix.Cache](cfg.Propagation)
	if err := attachRecorder(&options); err != nil {
		return nil, err
	}

	start := helix.Parameters{
		Position:  cfg.StartPosition(),
		Direction: cfg.StartDirection(),
		Momentum:  cfg.Start.Momentum,
		Charge:    cfg.Start.Charge,
	}

	var result propagation.Result[helix.Parameters]
	if target, ok := cfg.Surface(); ok {
		result, err = propagator.PropagateTo(ctx, start, target, options)
	} else {
		result, err = propagator.Propagate(ctx, start, options)
	}
	if err != nil {
		return nil, err
	}

	report := newReport(&result)
	if result.EndParameters != nil {
		report.Position = vecPtr(result.EndParameters.Position)
		report.Direction = vecPtr(result.EndParameters.Direction)
	}
	return report, nil
}

// attachRecorder adds a trajectory recorder to the options.
func attachRecorder[P any, C propagation.Cache](options *propagation.Options[P, C]) error {
	actions, err := propagation.NewActionList[P, C](application.NewPathRecorder[P, C]())
	if err != nil {
		return err
	}
	options.Actions = actions
	return nil
}

// newReport fills the stepper-independent report fields.
func newReport[P any](result *propagation.Result[P]) *runReport {
	report := &runReport{
		Status:      result.Status.String(),
		Termination: result.Termination.String(),
		Steps:       result.Steps,
		PathLength:  result.PathLength,
	}
	if samples, err := propagation.PayloadAs[[]application.PathSample](result, application.PathRecorderKey); err == nil {
		report.Samples = len(samples)
	}
	return report
}

// printReport writes the report as text or JSON.
func (a *App) printReport(report *runReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(a.stdout, "Run: %s\n", report.Name)
	fmt.Fprintf(a.stdout, "  Status:      %s\n", report.Status)
	fmt.Fprintf(a.stdout, "  Termination: %s\n", report.Termination)
	fmt.Fprintf(a.stdout, "  Steps:       %d\n", report.Steps)
	fmt.Fprintf(a.stdout, "  Path length: %g\n", report.PathLength)
	if report.Position != nil {
		fmt.Fprintf(a.stdout, "  Position:    (%g, %g, %g)\n", report.Position[0], report.Position[1], report.Position[2])
	}
	if report.Samples > 0 {
		fmt.Fprintf(a.stdout, "  Samples:     %d\n", report.Samples)
	}
	return nil
}

func vecPtr(v geometry.Vec3) *[3]float64 {
	return &[3]float64{v.X, v.Y, v.Z}
}
