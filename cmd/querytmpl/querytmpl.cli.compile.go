package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	querytmpl "github.com/itsatony/go-querytmpl"
)

// compileConfig holds parsed compile command configuration
type compileConfig struct {
	templatePath   string
	valuesJSON     string
	valuesFilePath string
	interactive    bool
	outputPath     string
	format         string
	formTypesPath  string
	verbose        bool
}

func runCompile(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseCompileFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidUsage, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}
	template := string(templateSource)

	values, err := loadValues(cfg.valuesJSON, cfg.valuesFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidValues, err)
		return ExitCodeInputError
	}

	engine, err := newEngine(cfg.formTypesPath, newLogger(cfg.verbose, stderr))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgFormTypesFailed, err)
		return ExitCodeInputError
	}

	compileValues := []querytmpl.Value(values)
	if cfg.interactive {
		parsed := engine.Parse(template)
		if parsed.IsValid {
			seeded := querytmpl.SyncValues(parsed, values, engine.DefaultValues(parsed))
			compileValues, err = promptValues(context.Background(), newPromptDriver(), engine, parsed, seeded)
			if err != nil {
				fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgPromptFailed, err)
				return ExitCodeInputError
			}
		}
	}

	result := engine.Compile(template, compileValues)

	if cfg.format == OutputFormatJSON {
		if err := writeJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
	} else {
		if !result.Success {
			fmt.Fprintln(stderr, CompileTextErrorHeader)
			for _, msg := range result.Errors {
				fmt.Fprintf(stderr, CompileTextErrorFormat+FmtNewline, msg)
			}
			return ExitCodeValidationError
		}
		if err := writeOutput(cfg.outputPath, []byte(result.CompiledText), stdout); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
	}

	if !result.Success {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

func parseCompileFlags(args []string) (*compileConfig, error) {
	fs := flag.NewFlagSet(CmdNameCompile, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &compileConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.valuesJSON, FlagValues, "", "")
	fs.StringVar(&cfg.valuesJSON, FlagValuesShort, "", "")
	fs.StringVar(&cfg.valuesFilePath, FlagValuesFile, "", "")
	fs.StringVar(&cfg.valuesFilePath, FlagValuesFileShort, "", "")
	fs.BoolVar(&cfg.interactive, FlagInteractive, false, "")
	fs.BoolVar(&cfg.interactive, FlagInteractiveShort, false, "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.StringVar(&cfg.formTypesPath, FlagFormTypes, "", "")
	fs.BoolVar(&cfg.verbose, FlagVerbose, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	if !validFormat(cfg.format) {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	if cfg.interactive && cfg.templatePath == InputSourceStdin {
		return nil, errors.New(ErrMsgInteractiveStdin)
	}

	return cfg, nil
}
