package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	querytmpl "github.com/itsatony/go-querytmpl"
)

// errPromptAborted is returned when the user interrupts a prompt.
var errPromptAborted = errors.New(ErrMsgPromptAborted)

// InputConfig configures a single-line text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
}

// TextAreaConfig configures a multi-line text prompt.
type TextAreaConfig struct {
	Message string
	Default string
	Help    string
}

// PromptDriver asks the user for values. The survey driver talks to the
// terminal; tests swap in a scripted one.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
}

// newPromptDriver is replaced in tests.
var newPromptDriver = func() PromptDriver { return &surveyDriver{} }

type surveyDriver struct{}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		validator := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validator(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out string
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.Options[cfg.DefaultIndex]
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

func (d *surveyDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Multiline{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errPromptAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

// promptValues asks for a value per placeholder, starting from current.
// Choice types get a select, Tags a one-per-line text area, NumberInput a
// numeric input. An empty answer leaves the value blank so the compiler
// applies the default.
func promptValues(ctx context.Context, driver PromptDriver, engine *querytmpl.Engine, parsed *querytmpl.ParseResult, current []querytmpl.Value) ([]querytmpl.Value, error) {
	registry := engine.Registry()
	values := querytmpl.ResizeValues(current, len(parsed.Placeholders))

	for i, ph := range parsed.Placeholders {
		display := ph.TypeName
		if d, ok := registry.Get(ph.TypeName); ok {
			display = d.DisplayName()
		}
		message := fmt.Sprintf(PromptLabelFormat, ph.Label, display)

		var err error
		switch {
		case len(registry.Options(ph.TypeName)) > 0:
			values[i], err = promptChoice(ctx, driver, message, registry.Options(ph.TypeName), values[i], ph.DefaultValue)
		case ph.TypeName == querytmpl.TypeTags:
			values[i], err = promptTags(ctx, driver, message, values[i])
		case ph.TypeName == querytmpl.TypeNumberInput:
			values[i], err = promptNumber(ctx, driver, message, values[i])
		default:
			var answer string
			answer, err = driver.Input(ctx, InputConfig{Message: message, Default: querytmpl.ValueAsString(values[i])})
			if err == nil {
				values[i] = blankOrText(answer)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

func promptChoice(ctx context.Context, driver PromptDriver, message string, options []string, current querytmpl.Value, fallback string) (querytmpl.Value, error) {
	selected := querytmpl.ValueAsString(current)
	if selected == "" {
		selected = fallback
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      options,
		DefaultIndex: indexOf(options, selected),
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(options) {
		return current, nil
	}
	return querytmpl.Text(options[idx]), nil
}

func promptTags(ctx context.Context, driver PromptDriver, message string, current querytmpl.Value) (querytmpl.Value, error) {
	answer, err := driver.TextArea(ctx, TextAreaConfig{
		Message: message,
		Default: strings.Join(querytmpl.ValueAsStrings(current), PromptTagsLineSep),
		Help:    PromptTagsHelp,
	})
	if err != nil {
		return nil, err
	}
	tags := querytmpl.List{}
	for _, line := range strings.Split(answer, PromptTagsLineSep) {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}

func promptNumber(ctx context.Context, driver PromptDriver, message string, current querytmpl.Value) (querytmpl.Value, error) {
	answer, err := driver.Input(ctx, InputConfig{
		Message:   message,
		Default:   querytmpl.ValueAsString(current),
		Help:      PromptNumberHelp,
		Validator: validateNumberAnswer,
	})
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return nil, errors.New(ErrMsgNotANumber)
	}
	return querytmpl.Number(f), nil
}

func validateNumberAnswer(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return errors.New(ErrMsgNotANumber)
	}
	return nil
}

func blankOrText(s string) querytmpl.Value {
	if s == "" {
		return nil
	}
	return querytmpl.Text(s)
}
