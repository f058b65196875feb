package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/projectile/internal/ballistics"
	"github.com/san-kum/projectile/internal/config"
	"github.com/san-kum/projectile/internal/render"
	"github.com/san-kum/projectile/internal/storage"
	"github.com/san-kum/projectile/internal/tui"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string

	initialY     float64
	speed        float64
	angle        float64
	mass         float64
	acceleration float64
	start        float64
	end          float64
	samples      int
	perSecond    int
	stop         bool
	stopY        float64
	stopAtApex   bool
	strictRange  bool

	pngOut     bool
	svgOut     string
	saveRun    bool
	plotWidth  float64
	plotHeight float64
	plotDir    string
	title      string

	target  float64
	outFile string
)

var (
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466")).Padding(0, 2)
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff"))
)

// main registers the projectile commands and exits with status 1 when a command fails.
func main() {
	setupLogging("info")

	rootCmd := &cobra.Command{
		Use:           "projectile",
		Short:         "closed-form projectile trajectory lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".projectile", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "sample a trajectory, render it and save the run",
		Args:  cobra.NoArgs,
		RunE:  runTrajectory,
	}
	addModelFlags(runCmd)
	addPathFlags(runCmd)
	runCmd.Flags().BoolVar(&pngOut, "png", true, "render a png plot")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "also write an svg plot to this path")
	runCmd.Flags().BoolVar(&saveRun, "save", true, "save the run to the data directory")
	runCmd.Flags().Float64Var(&plotWidth, "width", config.DefaultPlotWidth, "plot width (inches)")
	runCmd.Flags().Float64Var(&plotHeight, "height", config.DefaultPlotHeight, "plot height (inches)")
	runCmd.Flags().StringVar(&plotDir, "out-dir", config.DefaultPlotDir, "plot output directory prefix")
	runCmd.Flags().StringVar(&title, "title", config.DefaultTitle, "plot title and file name")

	apexCmd := &cobra.Command{
		Use:   "apex",
		Short: "print the apex of the trajectory",
		Args:  cobra.NoArgs,
		RunE:  printApex,
	}
	addModelFlags(apexCmd)

	touchdownCmd := &cobra.Command{
		Use:   "touchdown",
		Short: "print when the projectile reaches a target height",
		Args:  cobra.NoArgs,
		RunE:  printTouchdown,
	}
	addModelFlags(touchdownCmd)
	touchdownCmd.Flags().Float64Var(&target, "target", 0, "target height (m)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "replay the trajectory in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	addPathFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [body]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bodies := config.ListBodies()
			if len(args) > 0 {
				bodies = args
			}
			for _, body := range bodies {
				presets := config.ListPresets(body)
				if len(presets) == 0 {
					fmt.Printf("no presets for body: %s\n", body)
					continue
				}
				fmt.Printf("presets for %s:\n", body)
				for _, p := range presets {
					fmt.Printf("  %s/%s\n", body, p)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, apexCmd, touchdownCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "preset as body/name (see presets)")
	f.Float64Var(&initialY, "y0", 0, "initial height (m)")
	f.Float64Var(&speed, "speed", config.DefaultSpeed, "launch speed (m/s)")
	f.Float64Var(&angle, "angle", config.DefaultAngle, "launch angle (deg)")
	f.Float64Var(&mass, "mass", config.DefaultMass, "mass (kg)")
	f.Float64VarP(&acceleration, "accel", "a", config.DefaultAcceleration, "vertical acceleration (m/s^2, negative is down)")
}

func addPathFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&start, "start", 0, "start time (s)")
	f.Float64Var(&end, "end", config.DefaultEnd, "end time (s)")
	f.IntVar(&samples, "samples", 0, "sample count (0 derives it from the interval)")
	f.IntVar(&perSecond, "per-second", ballistics.DefaultSamplesPerSecond, "samples per second when deriving the count")
	f.BoolVar(&stop, "stop", true, "stop sampling at the stop height")
	f.Float64Var(&stopY, "stop-y", 0, "stop height (m)")
	f.BoolVar(&stopAtApex, "stop-at-apex", false, "use the max height as stop height")
	f.BoolVar(&strictRange, "strict", false, "reject end < start")
}

// loadConfig layers defaults, a preset or config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if configFile != "" && preset != "" {
		return nil, errors.New("--config and --preset are mutually exclusive")
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		body, name, ok := strings.Cut(preset, "/")
		if !ok {
			body, name = "earth", preset
		}
		p := config.GetPreset(body, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available for %s: %v)", preset, body, config.ListPresets(body))
		}
		cfg = p
		cfg.Render.Title = body + "_" + name
	}

	f := cmd.Flags()
	set := func(name string, apply func()) {
		if f.Lookup(name) != nil && f.Changed(name) {
			apply()
		}
	}
	set("y0", func() { cfg.Projectile.InitialY = initialY })
	set("speed", func() { cfg.Projectile.Speed = speed })
	set("angle", func() { cfg.Projectile.Angle = angle })
	set("mass", func() { cfg.Projectile.Mass = mass })
	set("accel", func() { cfg.Acceleration = acceleration })
	set("start", func() { cfg.Start = start })
	set("end", func() { cfg.End = end })
	set("samples", func() { cfg.Samples = samples })
	set("per-second", func() { cfg.SamplesPerSecond = perSecond })
	set("stop", func() { cfg.Stop.Enabled = stop })
	set("stop-y", func() { cfg.Stop.Y = stopY })
	set("stop-at-apex", func() { cfg.Stop.AtApex = stopAtApex })
	set("strict", func() { cfg.StrictRange = strictRange })
	set("width", func() { cfg.Render.Width = plotWidth })
	set("height", func() { cfg.Render.Height = plotHeight })
	set("out-dir", func() { cfg.Render.Dir = plotDir })
	set("title", func() { cfg.Render.Title = title })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simulate(cfg *config.Config) (ballistics.Projectile, *ballistics.Path, ballistics.PathConfig, error) {
	p := cfg.Build()
	pc, err := cfg.PathConfig()
	if err != nil {
		return p, nil, pc, err
	}
	logger.Debug().
		Float64("y0", p.InitialY).Float64("speed", p.Speed).Float64("angle", p.AngleDeg).
		Float64("a", cfg.Acceleration).Float64("start", cfg.Start).Float64("end", cfg.End).
		Int("samples", pc.Samples).Bool("stop", pc.ConditionalStop).Float64("stop_y", pc.StopY).
		Msg("sampling trajectory")

	path, err := p.GeneratePath(cfg.Acceleration, cfg.Start, cfg.End, pc)
	if err != nil {
		return p, nil, pc, err
	}
	logger.Debug().Int("samples", path.Len()).Bool("truncated", path.Truncated).Msg("sampled trajectory")
	return p, path, pc, nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, path, pc, err := simulate(cfg)
	if err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Name:         cfg.Render.Title,
		InitialY:     p.InitialY,
		Speed:        p.Speed,
		Angle:        p.AngleDeg,
		Mass:         p.Mass,
		Acceleration: cfg.Acceleration,
		Start:        cfg.Start,
		End:          cfg.End,
	}
	if h, err := p.MaxHeight(cfg.Acceleration); err == nil {
		meta.MaxHeight = h
	}
	if pc.ConditionalStop {
		meta.StopY = &pc.StopY
		meta.TouchdownTime = &path.TouchdownTime
	}

	fmt.Println(summary(p, cfg.Acceleration, path, pc))

	if pngOut {
		out, err := render.PNG(path.X, path.Y, cfg.Render.XLabel, cfg.Render.YLabel, cfg.Render.Title,
			render.WithSize(cfg.Render.Width, cfg.Render.Height),
			render.WithOutputDir(cfg.Render.Dir),
		)
		if err != nil {
			return fmt.Errorf("render png: %w", err)
		}
		logger.Info().Str("path", out).Msg("wrote plot")
	}

	if svgOut != "" {
		svg := render.SVG(path.X, path.Y, 800, 400, "#00ff88")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		logger.Info().Str("path", svgOut).Msg("wrote svg")
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, storage.NewRun(p, cfg.Acceleration, path))
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info().Str("run", runID).Str("dir", dataDir).Msg("saved run")
	}
	return nil
}

func summary(p ballistics.Projectile, a float64, path *ballistics.Path, pc ballistics.PathConfig) string {
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	vx, vy := p.Velocity()
	rows := []string{
		headStyle.Render("trajectory"),
		row("launch", fmt.Sprintf("%.2f m/s @ %.1f° from %.2f m", p.Speed, p.AngleDeg, p.InitialY)),
		row("velocity", fmt.Sprintf("vx=%.3f vy=%.3f m/s", vx, vy)),
		row("acceleration", fmt.Sprintf("%.3f m/s²", a)),
	}
	if apex, err := p.Apex(a); err == nil {
		rows = append(rows, row("apex", fmt.Sprintf("%.3f m at t=%.3f s, x=%.3f m", apex.Y, apex.T, apex.X)))
	}
	if pc.ConditionalStop {
		rows = append(rows, row("touchdown", fmt.Sprintf("%.3f s at y=%.3f m", path.TouchdownTime, pc.StopY)))
	}
	last := path.At(path.Len() - 1)
	rows = append(rows,
		row("samples", fmt.Sprintf("%d (truncated: %v)", path.Len(), path.Truncated)),
		row("final", fmt.Sprintf("t=%.3f s x=%.3f m y=%.3f m", last.T, last.X, last.Y)),
		row("energy at end", fmt.Sprintf("KE=%.3f PE=%.3f", p.KineticEnergy(last.T, a), p.PotentialEnergy(last.T, a))),
	)
	return boxStyle.Render(strings.Join(rows, "\n"))
}

func printApex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cache := ballistics.NewCache(cfg.Build())
	h, err := cache.MaxHeight(cfg.Acceleration)
	if err != nil {
		return err
	}
	apex, err := cache.Projectile().Apex(cfg.Acceleration)
	if err != nil {
		return err
	}
	fmt.Printf("max height: %.4f m above launch (%.4f m absolute)\n", h, apex.Y)
	fmt.Printf("apex time:  %.4f s\n", apex.T)
	fmt.Printf("apex x:     %.4f m\n", apex.X)
	return nil
}

func printTouchdown(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Build()
	t, err := p.TouchdownTime(target, cfg.Acceleration)
	if err != nil {
		return err
	}
	fmt.Printf("touchdown at y=%.4f m: t=%.4f s, x=%.4f m\n", target, t, p.PositionX(t))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, path, _, err := simulate(cfg)
	if err != nil {
		return err
	}
	return tui.Run(p, cfg.Acceleration, path)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSPEED\tANGLE\tACCEL\tSAMPLES\tMAX HEIGHT\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%.2f\t%.1f\t%.2f\t%d\t%.3f\t%s\n",
			r.ID, r.Speed, r.Angle, r.Acceleration, r.Samples, r.MaxHeight, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	run, err := st.LoadRun(runID)
	if err != nil {
		return err
	}
	if run.Path.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", run.Path.Len())

	canvas := render.NewCanvas(60, 15)
	canvas.PlotXY(run.Path.X, run.Path.Y, nil)
	fmt.Println(boxStyle.Render(canvas.String()))
	fmt.Println(render.ASCII(run.Path.Y, "height vs sample", 60, 10))
	fmt.Println()
	fmt.Println(render.ASCII(run.Kinetic, "kinetic energy vs sample", 60, 6))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	run, err := st.LoadRun(runID)
	if err != nil {
		return err
	}

	if outFile == "" {
		return storage.ExportJSON(os.Stdout, *meta, run)
	}
	file, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(file, *meta, run); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	logger.Info().Str("path", outFile).Msg("exported run")
	return nil
}

// reportError logs a failed command with the parameters that caused it.
func reportError(err error) {
	var pe *ballistics.ParamError
	if errors.As(err, &pe) {
		logger.Error().Err(pe.Err).
			Str("op", pe.Op).
			Float64("acceleration", pe.Acceleration).
			Float64("target", pe.Target).
			Float64("start", pe.Start).
			Float64("end", pe.End).
			Msg("trajectory computation failed")
		return
	}
	logger.Error().Err(err).Msg("command failed")
}
