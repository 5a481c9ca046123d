// Package main provides the scaffold CLI. It reads a
// JSON or YAML config naming a template and variables,
// expands the template tree into the output directory,
// and optionally prints a JSON report of what changed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/scaffolder/config"
	"github.com/byte4ever/scaffolder/render"
	"github.com/byte4ever/scaffolder/scaffold"
	"github.com/byte4ever/scaffolder/stamper"
	"github.com/byte4ever/scaffolder/templates"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return strings.Join(*af, ",")
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func run(ctx context.Context) error {
	const errCtx = "scaffold"

	var (
		stampInfoFiles arrayFlags
		variables      arrayFlags
		dryRun         bool
		report         bool
		list           bool
		trimSuffix     string
	)

	flag.Var(
		&stampInfoFiles,
		"stamp_info_file",
		"stamp file of KEY VALUE lines (repeatable)",
	)

	flag.Var(
		&variables,
		"variable",
		"variable override in NAME=VALUE format (repeatable)",
	)

	flag.BoolVar(
		&dryRun, "dry_run", false,
		"report what would be generated without writing",
	)

	flag.BoolVar(
		&report, "report", false,
		"print a JSON report of the run to stdout",
	)

	flag.BoolVar(
		&list, "list", false,
		"list built-in templates and helpers and exit",
	)

	flag.StringVar(
		&trimSuffix, "trim_suffix", "",
		"suffix removed from generated file names",
	)

	flag.Usage = func() {
		fmt.Fprintf(
			flag.CommandLine.Output(),
			"usage: %s [flags] [config file (default %s)]\n",
			os.Args[0], config.DefaultFile,
		)
		flag.PrintDefaults()
	}

	flag.Parse()

	if list {
		var en render.Engine

		fmt.Println("templates:", strings.Join(templates.Names(), ", "))
		fmt.Println("helpers:", strings.Join(en.HelperNames(), ", "))

		return nil
	}

	cfgPath := config.DefaultFile
	if flag.NArg() > 0 {
		cfgPath = flag.Arg(0)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info("base_path", "path", cfg.BaseDir)
	slog.Info("output_path", "path", cfg.OutputPath)
	slog.Info("templates_path", "path", cfg.TemplatesPath)

	src, suffix, err := cfg.Source(trimSuffix)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	stamps, err := stamper.LoadStamps(stampInfoFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	vars, err := stamper.MergeVariables(stamps, cfg.Variables, variables)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	gn := scaffold.Generator{
		Variables:  vars,
		TrimSuffix: suffix,
		DryRun:     dryRun,
	}

	out, err := cfg.OutputRoot(&gn.Engine, vars)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	res, err := gn.Generate(ctx, src, out)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if !report {
		return nil
	}

	buf, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: encoding report: %w", errCtx, err)
	}

	if _, err := fmt.Fprintln(os.Stdout, string(buf)); err != nil {
		return fmt.Errorf("%s: writing report: %w", errCtx, err)
	}

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}
