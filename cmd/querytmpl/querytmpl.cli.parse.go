package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	querytmpl "github.com/itsatony/go-querytmpl"
)

// parseConfig holds parsed parse command configuration
type parseConfig struct {
	templatePath  string
	format        string
	formTypesPath string
	verbose       bool
}

func runParse(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseParseFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidUsage, err)
		return ExitCodeUsageError
	}

	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	engine, err := newEngine(cfg.formTypesPath, newLogger(cfg.verbose, stderr))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgFormTypesFailed, err)
		return ExitCodeInputError
	}

	result := engine.Parse(string(templateSource))

	if cfg.format == OutputFormatJSON {
		if err := writeJSON(stdout, result); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
	} else {
		outputParseText(result, stdout)
	}

	if !result.IsValid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

func parseParseFlags(args []string) (*parseConfig, error) {
	fs := flag.NewFlagSet(CmdNameParse, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &parseConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
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

	return cfg, nil
}

func outputParseText(result *querytmpl.ParseResult, stdout io.Writer) {
	if len(result.Placeholders) == 0 {
		fmt.Fprintln(stdout, ParseTextNone)
	} else {
		fmt.Fprintln(stdout, ParseTextPlaceholders)
		for _, ph := range result.Placeholders {
			fmt.Fprintf(stdout, ParseTextPlaceholder+FmtNewline,
				ph.Ordinal, ph.Label, ph.TypeName, ph.DefaultValue, ph.StartOffset, ph.EndOffset)
		}
	}

	if result.IsValid {
		fmt.Fprintln(stdout, ParseTextValid)
		return
	}

	fmt.Fprintln(stdout, ParseTextIssueHeader)
	for _, e := range result.Errors {
		fmt.Fprintf(stdout, ParseTextIssueFormat+FmtNewline, e.Message, e.StartOffset, e.EndOffset)
	}
	fmt.Fprintf(stdout, ParseTextErrorSummary+FmtNewline, len(result.Errors))
}
