package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	querytmpl "github.com/itsatony/go-querytmpl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// writeJSON writes v as indented JSON followed by a newline
func writeJSON(stdout io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", JSONIndent)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgJSONMarshalFailed, err)
	}
	_, err = fmt.Fprintln(stdout, string(jsonBytes))
	return err
}

// loadValues decodes the positional values array from a JSON string or a
// JSON/YAML file. No source yields no values.
func loadValues(valuesJSON, filePath string) (querytmpl.Values, error) {
	if valuesJSON != "" && filePath != "" {
		return nil, errors.New(ErrMsgConflictingValues)
	}

	var values querytmpl.Values
	switch {
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		ext := strings.ToLower(filepath.Ext(filePath))
		if ext == ExtYAML || ext == ExtYML {
			err = yaml.Unmarshal(data, &values)
		} else {
			err = json.Unmarshal(data, &values)
		}
		if err != nil {
			return nil, err
		}
	case valuesJSON != "":
		if err := json.Unmarshal([]byte(valuesJSON), &values); err != nil {
			return nil, err
		}
	}

	if values == nil {
		values = querytmpl.Values{}
	}
	return values, nil
}

// newLogger returns a console logger on stderr when verbose, otherwise a no-op.
func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// newEngine creates the engine, replacing the form type catalog when a YAML
// file is given.
func newEngine(formTypesPath string, logger *zap.Logger) (*querytmpl.Engine, error) {
	opts := []querytmpl.Option{querytmpl.WithLogger(logger)}

	if formTypesPath != "" {
		data, err := os.ReadFile(formTypesPath)
		if err != nil {
			return nil, err
		}
		catalog := querytmpl.NewFormTypeCatalog(nil)
		if err := catalog.LoadYAML(data); err != nil {
			return nil, err
		}
		opts = append(opts, querytmpl.WithFormTypes(catalog.All()))
	}

	return querytmpl.New(opts...)
}

func validFormat(format string) bool {
	return format == OutputFormatText || format == OutputFormatJSON
}
