package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/youruser/moodboard/internal/board"
	"github.com/youruser/moodboard/internal/config"
	"github.com/youruser/moodboard/internal/export"
	imagepkg "github.com/youruser/moodboard/internal/image"
	"github.com/youruser/moodboard/internal/intake"
	"github.com/youruser/moodboard/internal/session"
)

// watchDebounce is how long inputs must stay quiet before a rebuild.
const watchDebounce = 500 * time.Millisecond

type renderOptions struct {
	manifest string
	preset   string

	layout       string
	cols         int
	background   string
	color        string
	gradient     []string
	direction    string
	texture      string
	textureColor string
	filter       string
	labels       bool
	resolution   int

	seed  int64
	out   string
	watch bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Render images into a moodboard PNG",
		Long: "Render the given images, plus any listed in --manifest, into\n" +
			"moodboard-<layout>-<resolution>x-<timestamp>.png in the output\n" +
			"directory. Settings start from the preset and are overridden by\n" +
			"the flags that are set. Files that are not JPEG, PNG, GIF or WebP,\n" +
			"or larger than 10 MiB, are reported and skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.manifest, "manifest", "", "CSV file with path and label columns")
	f.StringVar(&opts.preset, "preset", "", "YAML preset to start from (default $MOODBOARD_PRESET or moodboard.yaml)")
	f.StringVar(&opts.layout, "layout", string(board.LayoutGrid), "layout: grid, collage or smart")
	f.IntVar(&opts.cols, "cols", 3, "grid columns")
	f.StringVar(&opts.background, "background", string(board.BackgroundSolid), "background: solid, gradient or texture")
	f.StringVar(&opts.color, "color", "#ffffff", "solid background colour")
	f.StringSliceVar(&opts.gradient, "gradient", []string{"#ffffff", "#f0f0f0"}, "gradient start and end colours")
	f.StringVar(&opts.direction, "direction", string(board.GradientVertical), "gradient direction: vertical, horizontal, diagonal or radial")
	f.StringVar(&opts.texture, "texture", string(board.TexturePaper), "texture: paper, canvas or fabric")
	f.StringVar(&opts.textureColor, "texture-color", "#f8f8f8", "texture base colour")
	f.StringVar(&opts.filter, "filter", board.FilterNone.String(), "filter: none, vintage, bright, contrast, warm or cool")
	f.BoolVar(&opts.labels, "labels", false, "draw a caption band under each image")
	f.IntVar(&opts.resolution, "resolution", 1, "export resolution multiplier")
	f.Int64Var(&opts.seed, "seed", 0, "random seed for collage placement and paper grain (0 = clock)")
	f.StringVarP(&opts.out, "out", "o", "", "output directory (default $MOODBOARD_OUTPUT_DIR or exports)")
	f.BoolVarP(&opts.watch, "watch", "w", false, "re-render when an input file changes")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, args []string) error {
	if len(args) == 0 && opts.manifest == "" {
		return fmt.Errorf("no input files: pass image paths or --manifest")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)
	imagepkg.SetLogger(logger)
	if cmd.Flags().Changed("seed") {
		cfg.Seed = opts.seed
	}
	if opts.out == "" {
		opts.out = cfg.OutputDir
	}
	if opts.preset == "" {
		opts.preset = cfg.PresetPath
	}

	base, err := config.LoadPreset(opts.preset)
	if err != nil {
		return err
	}
	settings, err := opts.apply(cmd.Flags().Changed, base)
	if err != nil {
		return err
	}

	build := func() error {
		p, err := renderOnce(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, settings, opts.manifest, args, opts.out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
		return nil
	}

	if !opts.watch {
		return build()
	}
	if err := build(); err != nil {
		slog.Error("render failed", "err", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	inputs := func() ([]string, error) { return watchPaths(args, opts.manifest) }
	fmt.Fprintln(cmd.ErrOrStderr(), "watching for changes, press Ctrl+C to stop")
	return watchFiles(ctx, inputs, watchDebounce, func() {
		slog.Info("inputs changed, rendering")
		if err := build(); err != nil {
			slog.Error("render failed", "err", err)
		}
	})
}

// apply overrides s with every flag the user set.
func (o *renderOptions) apply(changed func(string) bool, s board.Settings) (board.Settings, error) {
	colour := func(flag, v string, dst *board.Color) error {
		c, err := board.ParseColor(v)
		if err != nil {
			return fmt.Errorf("--%s: %w", flag, err)
		}
		*dst = c
		return nil
	}

	if changed("layout") {
		s.Layout = board.LayoutMode(o.layout)
	}
	if changed("cols") {
		s.GridColumns = o.cols
	}
	if changed("background") {
		s.Background = board.BackgroundMode(o.background)
	}
	if changed("color") {
		if err := colour("color", o.color, &s.BackgroundColor); err != nil {
			return s, err
		}
	}
	if changed("gradient") {
		if len(o.gradient) != 2 {
			return s, fmt.Errorf("--gradient takes two colours, got %q", strings.Join(o.gradient, ","))
		}
		if err := colour("gradient", o.gradient[0], &s.GradientColor1); err != nil {
			return s, err
		}
		if err := colour("gradient", o.gradient[1], &s.GradientColor2); err != nil {
			return s, err
		}
	}
	if changed("direction") {
		s.GradientDirection = board.GradientDirection(o.direction)
	}
	if changed("texture") {
		s.TextureType = board.TextureType(o.texture)
	}
	if changed("texture-color") {
		if err := colour("texture-color", o.textureColor, &s.TextureColor); err != nil {
			return s, err
		}
	}
	if changed("filter") {
		f, ok := board.ParseFilter(o.filter)
		if !ok {
			return s, fmt.Errorf("--filter: unknown filter %q", o.filter)
		}
		s.Filter = f
	}
	if changed("labels") {
		s.Labels = o.labels
	}
	if changed("resolution") {
		s.ExportResolution = o.resolution
	}
	return s, s.Validate()
}

// renderOnce reads the inputs, reports rejected files to errOut and saves
// the export into outDir.
func renderOnce(out, errOut io.Writer, cfg *config.Config, settings board.Settings, manifest string, paths []string, outDir string) (string, error) {
	files, err := collect(errOut, manifest, paths)
	if err != nil {
		return "", err
	}
	assets, rejected := intake.Batch(files)
	for _, r := range rejected {
		fmt.Fprintln(errOut, r.Message())
	}
	if len(assets) == 0 {
		return "", fmt.Errorf("no usable images: %w", session.ErrEmptyBoard)
	}

	rnd := cfg.Rand()
	sess := session.New(settings, imagepkg.NewRenderer(rnd), rnd)
	sess.Add(assets...)
	img, used, err := sess.Export()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(out, "rendered %d images at %dx%d\n", len(assets), img.Bounds().Dx(), img.Bounds().Dy())
	return export.Save(outDir, export.Filename(used, time.Now()), img)
}

// watchPaths lists every input of a render: the positional paths, the
// manifest and the images it names.
func watchPaths(args []string, manifest string) ([]string, error) {
	paths := append([]string{}, args...)
	if manifest == "" {
		return paths, nil
	}
	entries, err := intake.ReadManifest(manifest)
	if err != nil {
		return nil, err
	}
	paths = append(paths, manifest)
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return paths, nil
}

// collect loads positional paths then manifest entries, in that order.
// Unreadable files are reported and skipped.
func collect(errOut io.Writer, manifest string, paths []string) ([]intake.File, error) {
	entries := make([]intake.Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, intake.Entry{Path: p})
	}
	if manifest != "" {
		listed, err := intake.ReadManifest(manifest)
		if err != nil {
			return nil, err
		}
		entries = append(entries, listed...)
	}

	files := make([]intake.File, 0, len(entries))
	for _, e := range entries {
		f, err := intake.ReadFile(e.Path)
		if err != nil {
			fmt.Fprintf(errOut, "skipping %s: %v\n", e.Path, err)
			continue
		}
		f.Label = e.Label
		files = append(files, f)
	}
	return files, nil
}
