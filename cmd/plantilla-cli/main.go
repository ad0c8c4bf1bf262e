// Command plantilla-cli renders a plantilla file as HTML or fills it in from
// the terminal and prints the collected values.
//
//	plantilla-cli [flags] <plantilla.(json|yaml)>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-plantillas/internal/config"
	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/form"
	"github.com/goliatone/go-plantillas/pkg/orchestrator"
	"github.com/goliatone/go-plantillas/pkg/plantilla"
	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/renderers/tui"
	"github.com/goliatone/go-plantillas/pkg/renderers/vanilla"
)

const (
	modeRender = "render"
	modeFill   = "fill"
)

type options struct {
	mode          string
	output        string
	catalogs      string
	values        string
	readOnly      bool
	hideLabels    bool
	themeManifest string
	theme         string
	variant       string
	logLevel      string
	file          string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("plantilla-cli", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.mode, "mode", "m", modeRender, "render (HTML) or fill (interactive)")
	fs.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	fs.StringVar(&opts.catalogs, "catalogs", "", "YAML catalogs file (bundled samples if empty)")
	fs.StringVar(&opts.values, "values", "", "JSON file with initial values")
	fs.BoolVar(&opts.readOnly, "readonly", false, "render every control disabled")
	fs.BoolVar(&opts.hideLabels, "hide-labels", false, "hide type badges and required markers")
	fs.StringVar(&opts.themeManifest, "theme-manifest", "", "YAML theme manifest")
	fs.StringVar(&opts.theme, "theme", "", "theme name")
	fs.StringVar(&opts.variant, "variant", "", "theme variant")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 {
		return options{}, fmt.Errorf("plantilla-cli: expected one plantilla file, got %d", fs.NArg())
	}
	opts.file = fs.Arg(0)
	if opts.mode != modeRender && opts.mode != modeFill {
		return options{}, fmt.Errorf("plantilla-cli: unknown mode %q", opts.mode)
	}
	return opts, nil
}

// run executes the command. A nil driver prompts through survey.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver tui.PromptDriver) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(config.LogConfig{Level: opts.logLevel, Format: "text"}, stderr)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("plantilla-cli: read plantilla: %w", err)
	}
	p, err := plantilla.Decode(data, opts.file)
	if err != nil {
		return err
	}

	fetcher, err := loadCatalogs(opts.catalogs)
	if err != nil {
		return err
	}
	values, err := loadValues(opts.values)
	if err != nil {
		return err
	}

	orchestratorOpts := []orchestrator.Option{
		orchestrator.WithResolver(catalog.NewSyncResolver(fetcher, catalog.WithLogger(logger))),
		orchestrator.WithLogger(logger),
	}
	if opts.themeManifest != "" {
		manifest, err := config.LoadThemeManifest(opts.themeManifest)
		if err != nil {
			return err
		}
		orchestratorOpts = append(orchestratorOpts, orchestrator.WithThemeManifests(opts.theme, opts.variant, manifest))
	}

	out := stdout
	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("plantilla-cli: create output: %w", err)
		}
		defer file.Close()
		out = file
	}

	renderOpts := render.RenderOptions{
		ReadOnly:        opts.readOnly,
		HideFieldLabels: opts.hideLabels,
		ShowButtons:     true,
		Values:          values,
		Hidden:          render.MergeHiddenFields(nil, render.PlantillaRef(p.ID, p.EmpresaID)...),
	}
	req := orchestrator.Request{
		Structure:     &p.Estructura,
		RenderOptions: renderOpts,
		ThemeName:     opts.theme,
		ThemeVariant:  opts.variant,
	}

	if opts.mode == modeRender {
		html, err := vanilla.New(vanilla.WithLogger(logger))
		if err != nil {
			return err
		}
		orchestratorOpts = append(orchestratorOpts, orchestrator.WithRegistry(render.NewRegistry(html)))
		output, err := orchestrator.New(orchestratorOpts...).Generate(ctx, req)
		if err != nil {
			return err
		}
		_, err = out.Write(output)
		return err
	}

	if driver == nil {
		driver = tui.NewSurveyDriver(stderr)
	}
	terminal, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	orchestratorOpts = append(orchestratorOpts, orchestrator.WithRegistry(render.NewRegistry(terminal)))
	return fill(ctx, orchestrator.New(orchestratorOpts...), terminal, req, out, stderr, logger)
}

// fill prompts until the submission validates, then writes the values.
func fill(ctx context.Context, gen *orchestrator.Orchestrator, terminal *tui.Renderer, req orchestrator.Request, out, stderr io.Writer, logger logrus.FieldLogger) error {
	var saved map[string]any
	session := form.NewSession(*req.Structure, req.RenderOptions.Values,
		form.WithNotifier(form.WriterNotifier{W: stderr}),
		form.WithLogger(logger),
		form.WithOnSave(func(_ context.Context, values map[string]any) error {
			saved = values
			return nil
		}),
	)

	var fieldErrors map[string][]string
	for {
		req.RenderOptions.Values = session.Values()
		req.RenderOptions.Errors = fieldErrors
		_, planned, err := gen.Plan(ctx, req)
		if err != nil {
			return err
		}
		if err := terminal.Fill(ctx, planned, session); err != nil {
			return err
		}
		if req.RenderOptions.ReadOnly {
			return writeValues(out, session.Values())
		}

		err = session.Submit(ctx)
		var invalid *form.ValidationError
		if errors.As(err, &invalid) {
			fieldErrors = invalid.FieldErrors()
			continue
		}
		if err != nil {
			return err
		}
		return writeValues(out, saved)
	}
}

func writeValues(out io.Writer, values map[string]any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(values)
}

func loadCatalogs(path string) (catalog.Fetcher, error) {
	var (
		fetcher catalog.StaticFetcher
		err     error
	)
	if path == "" {
		fetcher, err = catalog.Samples()
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("plantilla-cli: read catalogs: %w", err)
		}
		fetcher, err = catalog.DecodeYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return fetcher, nil
}

func loadValues(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plantilla-cli: read values: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("plantilla-cli: decode values: %w", err)
	}
	return values, nil
}
