package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/filmgrade/internal/colorspace"
	"github.com/ironsheep/filmgrade/internal/imaging"
	"github.com/ironsheep/filmgrade/internal/pipeline"
	"github.com/ironsheep/filmgrade/internal/recipe"
	"github.com/ironsheep/filmgrade/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "filmgrade",
		Short: "filmgrade - photographic color grading",
		Long: `filmgrade - photographic color grading

Grades images through a pipeline of film-style stages in a linear ACEScg
working space, from the command line or as an MCP tool server.

Environment variables:
  FILMGRADE_LOG_LEVEL=debug    Enable debug logging`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRun:  setupLogging,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	root.SetVersionTemplate(versionText())

	root.AddCommand(newVersionCmd(), newGradeCmd(), newServeCmd(), newPresetsCmd())
	return root
}

func versionText() string {
	return fmt.Sprintf("filmgrade %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit)
}

// setupLogging sends logs to stderr; stdout carries MCP traffic in serve mode.
func setupLogging(cmd *cobra.Command, args []string) {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("FILMGRADE_LOG_LEVEL") == "debug" {
		log.Printf("filmgrade v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		pipeline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), versionText())
		},
	}
}

type gradeFlags struct {
	in, out     string
	recipePath  string
	preset      string
	inputSpace  string
	outputSpace string
	format      string
	maxSize     int
	quality     int
	workers     int
}

func newGradeCmd() *cobra.Command {
	var g gradeFlags
	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Grade an image file",
		Example: `  filmgrade grade -i photo.png -o graded.jpg
  filmgrade grade -i photo.png -o graded.jpg --preset teal-orange --max-size 2048
  filmgrade grade -i photo.png -o - --format png > graded.png`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return g.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(cmd, &g)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&g.in, "in", "i", "", "input image path")
	f.StringVarP(&g.out, "out", "o", "", "output image path, or - for stdout; the extension selects the format")
	f.StringVarP(&g.recipePath, "recipe", "r", "", "JSON recipe file")
	f.StringVarP(&g.preset, "preset", "p", "", "built-in recipe name (default film)")
	f.StringVar(&g.inputSpace, "input-space", "", "color space of the input samples (default from recipe, else srgb)")
	f.StringVar(&g.outputSpace, "output-space", "", "color space of the output samples (default from recipe, else srgb)")
	f.StringVar(&g.format, "format", "png", "output format when writing to stdout")
	f.IntVar(&g.maxSize, "max-size", 0, "downscale so neither side exceeds N pixels (0 keeps full size)")
	f.IntVarP(&g.quality, "quality", "q", imaging.DefaultQuality, "JPEG quality 1-100")
	f.IntVarP(&g.workers, "workers", "w", 0, "worker goroutines per stage (0 uses one per CPU)")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")
	cmd.MarkFlagsMutuallyExclusive("recipe", "preset")
	return cmd
}

func (g *gradeFlags) validate() error {
	if g.workers < 0 {
		return fmt.Errorf("--workers must be >= 0, got %d", g.workers)
	}
	if g.maxSize < 0 {
		return fmt.Errorf("--max-size must be >= 0, got %d", g.maxSize)
	}
	return nil
}

// loadRecipe returns the recipe the flags select.
func (g *gradeFlags) loadRecipe() (*recipe.Recipe, error) {
	switch {
	case g.recipePath != "":
		return recipe.Load(g.recipePath)
	case g.preset != "":
		return recipe.Preset(g.preset)
	default:
		return recipe.Preset("film")
	}
}

// spaces resolves the input and output spaces, flags overriding the recipe.
func (g *gradeFlags) spaces(r *recipe.Recipe) (in, out colorspace.Space, err error) {
	if in, out, err = r.Spaces(); err != nil {
		return 0, 0, err
	}
	if g.inputSpace != "" {
		if in, err = colorspace.ParseSpace(g.inputSpace); err != nil {
			return 0, 0, fmt.Errorf("--input-space: %w", err)
		}
	}
	if g.outputSpace != "" {
		if out, err = colorspace.ParseSpace(g.outputSpace); err != nil {
			return 0, 0, fmt.Errorf("--output-space: %w", err)
		}
	}
	return in, out, nil
}

func runGrade(cmd *cobra.Command, g *gradeFlags) error {
	r, err := g.loadRecipe()
	if err != nil {
		return err
	}
	p, err := r.Pipeline()
	if err != nil {
		return err
	}
	in, out, err := g.spaces(r)
	if err != nil {
		return err
	}

	opt := imaging.GradeOptions{
		InputSpace:  in,
		OutputSpace: out,
		MaxSize:     g.maxSize,
		Quality:     g.quality,
		Workers:     g.workers,
	}
	summary := cmd.OutOrStdout()
	if g.out == "-" {
		opt.Writer = cmd.OutOrStdout()
		opt.Format = g.format
		summary = cmd.ErrOrStderr()
	}

	res, err := imaging.GradeFile(cmd.Context(), nil, p, g.in, g.out, opt)
	if err != nil {
		return err
	}

	fmt.Fprintf(summary, "%s -> %s (%dx%d, %s, %d stages, %d ms)\n",
		res.Input, res.Output, res.Width, res.Height, res.OutputSpace, len(res.Stages), res.ElapsedMs)
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP tool server on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server.Version = Version
			return server.New().Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(cmd.OutOrStdout())
		},
	}
}

func runPresets(w io.Writer) error {
	for _, name := range recipe.Presets() {
		r, err := recipe.Preset(name)
		if err != nil {
			return err
		}
		types := make([]string, len(r.Stages))
		for i, s := range r.Stages {
			types[i] = s.Type
		}
		fmt.Fprintf(w, "%-12s %s\n", name, r.Description)
		fmt.Fprintf(w, "%-12s stages: %s\n", "", strings.Join(types, ", "))
	}
	return nil
}
