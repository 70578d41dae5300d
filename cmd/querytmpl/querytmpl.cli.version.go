package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

type versionConfig struct {
	format string
}

// versionInfo is what the version command prints.
type versionInfo struct {
	Version   string `json:"version"`
	Tag       string `json:"tag,omitempty"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

type projectSection struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type gitSection struct {
	Commit string `yaml:"commit"`
	Branch string `yaml:"branch"`
	Tag    string `yaml:"tag"`
}

type buildSection struct {
	Time      string `yaml:"time"`
	GoVersion string `yaml:"go_version"`
}

// versionsFile mirrors versions.yaml at the repository root.
type versionsFile struct {
	Project projectSection `yaml:"project"`
	Git     gitSection     `yaml:"git"`
	Build   buildSection   `yaml:"build"`
}

// versionsSearchPaths lists where versions.yaml may sit relative to the
// working directory.
var versionsSearchPaths = []string{"versions.yaml", "../versions.yaml", "../../versions.yaml"}

func runVersion(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseVersionFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	info := resolveVersionInfo(versionsSearchPaths)

	switch cfg.format {
	case OutputFormatJSON:
		if err := writeJSON(stdout, info); err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
			return ExitCodeError
		}
	default:
		fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline,
			info.Version, info.Commit, info.Branch, info.BuildTime, info.GoVersion)
	}
	return ExitCodeSuccess
}

func parseVersionFlags(args []string) (*versionConfig, error) {
	fs := flag.NewFlagSet(CmdNameVersion, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &versionConfig{}
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if !validFormat(cfg.format) {
		return nil, errors.New(ErrMsgInvalidFormat)
	}
	return cfg, nil
}

// loadVersionsFile reads and decodes one versions.yaml.
func loadVersionsFile(path string) (*versionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vf versionsFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return nil, err
	}
	return &vf, nil
}

// resolveVersionInfo merges the first readable versions.yaml in paths over
// the defaults. Unreadable or malformed files are skipped.
func resolveVersionInfo(paths []string) *versionInfo {
	info := &versionInfo{
		Version:   VersionUnknown,
		Commit:    VersionUnknown,
		Branch:    VersionUnknown,
		BuildTime: VersionUnknown,
		GoVersion: runtime.Version(),
	}
	for _, path := range paths {
		vf, err := loadVersionsFile(path)
		if err != nil {
			continue
		}
		info.merge(vf)
		break
	}
	return info
}

// merge overwrites fields that vf sets.
func (v *versionInfo) merge(vf *versionsFile) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&v.Version, vf.Project.Version)
	set(&v.Tag, vf.Git.Tag)
	set(&v.Commit, vf.Git.Commit)
	set(&v.Branch, vf.Git.Branch)
	set(&v.BuildTime, vf.Build.Time)
	set(&v.GoVersion, vf.Build.GoVersion)
}
