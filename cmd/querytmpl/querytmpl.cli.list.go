package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	querytmpl "github.com/itsatony/go-querytmpl"
)

// listConfig holds parsed configuration for the types and blueprints commands
type listConfig struct {
	format        string
	formTypesPath string
	filePath      string
}

// typeOutput represents one registered type in JSON output
type typeOutput struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Options     []string `json:"options,omitempty"`
}

func runTypes(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseListFlags(CmdNameTypes, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidUsage, err)
		return ExitCodeUsageError
	}

	engine, err := newEngine(cfg.formTypesPath, newLogger(false, stderr))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgFormTypesFailed, err)
		return ExitCodeInputError
	}

	registry := engine.Registry()
	names := registry.TypeNames()
	types := make([]typeOutput, 0, len(names))
	for _, name := range names {
		out := typeOutput{Name: name, DisplayName: name}
		if d, ok := registry.Get(name); ok {
			out.DisplayName = d.DisplayName()
		}
		out.Options = registry.Options(name)
		types = append(types, out)
	}

	if cfg.format == OutputFormatJSON {
		if err := writeJSON(stdout, types); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
		return ExitCodeSuccess
	}

	for _, t := range types {
		options := ""
		if len(t.Options) > 0 {
			options = fmt.Sprintf(TypesTextOptions, len(t.Options))
		}
		fmt.Fprintf(stdout, TypesTextFormat+FmtNewline, t.Name, t.DisplayName, options)
	}
	return ExitCodeSuccess
}

func runBlueprints(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseListFlags(CmdNameBlueprints, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidUsage, err)
		return ExitCodeUsageError
	}

	blueprints := querytmpl.DefaultBlueprints()
	if cfg.filePath != "" {
		data, err := os.ReadFile(cfg.filePath)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
			return ExitCodeInputError
		}
		if blueprints, err = querytmpl.ParseBlueprintsYAML(data); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgBlueprintsFailed, err)
			return ExitCodeInputError
		}
	}

	if cfg.format == OutputFormatJSON {
		if err := writeJSON(stdout, blueprints); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
		return ExitCodeSuccess
	}

	for _, bp := range blueprints {
		fmt.Fprintf(stdout, BlueprintsTextFormat+FmtNewline, bp.ID, bp.Name)
		fmt.Fprintf(stdout, BlueprintsTextQuery+FmtNewline, bp.Query)
	}
	return ExitCodeSuccess
}

func parseListFlags(name string, args []string) (*listConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &listConfig{}

	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	if name == CmdNameTypes {
		fs.StringVar(&cfg.formTypesPath, FlagFormTypes, "", "")
	} else {
		fs.StringVar(&cfg.filePath, FlagBlueprints, "", "")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if !validFormat(cfg.format) {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}
