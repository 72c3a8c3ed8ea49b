// Package config provides the YAML manifest loader for ktrun.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/lotoze/ktrun/internal/core/domain"
	"github.com/lotoze/ktrun/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Load reads a manifest from the given path. Targets are ordered by name so
// that run order is deterministic regardless of YAML map iteration.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}

	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest"), "path", path)
	}

	names := make([]string, 0, len(file.Targets))
	for name := range file.Targets {
		names = append(names, name)
	}
	sort.Strings(names)

	manifest := &domain.Manifest{}
	for _, name := range names {
		target, err := buildTarget(name, file.Targets[name])
		if err != nil {
			return nil, err
		}
		manifest.Targets = append(manifest.Targets, target)
	}

	l.logger.Info(fmt.Sprintf("loaded %d test targets from %s", len(manifest.Targets), path))
	return manifest, nil
}

func buildTarget(name string, dto targetDTO) (domain.TestTarget, error) {
	if dto.Executable == "" {
		return domain.TestTarget{}, zerr.With(
			zerr.Wrap(domain.ErrMissingConfiguration, "target has no executable"), "target", name)
	}

	variant, err := buildVariant(name, dto)
	if err != nil {
		return domain.TestTarget{}, err
	}

	for _, key := range dto.TrackedEnv {
		if _, ok := dto.Env[key]; !ok {
			return domain.TestTarget{}, zerr.With(
				zerr.Wrap(domain.ErrMissingConfiguration, "tracked env key is not declared in env"), "key", key)
		}
	}

	checkExitCode := true
	if dto.CheckExitCode != nil {
		checkExitCode = *dto.CheckExitCode
	}

	return domain.TestTarget{
		Name:    name,
		Variant: variant,
		Config: domain.RunConfiguration{
			Logger:          dto.Logger,
			CheckExitCode:   checkExitCode,
			IncludePatterns: dto.Include,
			ExcludePatterns: dto.Exclude,
			Args:            dto.Args,
			Environment:     dto.Env,
			TrackedEnv:      dto.TrackedEnv,
			WorkingDir:      dto.WorkingDir,
		},
		Client: domain.ClientSettings{
			TaskName:                      name,
			Suffix:                        dto.ReportSuffix,
			PrependSuiteName:              dto.PrependSuiteName,
			TreatFailedOutputAsStacktrace: dto.FailedOutputIsStacktrace,
		},
	}, nil
}

// buildVariant maps the kind field to a test variant. A missing simulator
// device is not rejected here; that check is load-bearing at resolve time.
func buildVariant(name string, dto targetDTO) (domain.TestVariant, error) {
	switch dto.Kind {
	case kindHost, "":
		return domain.HostTest{Executable: dto.Executable}, nil
	case kindSimulator:
		return domain.SimulatorTest{
			Executable: dto.Executable,
			Device:     dto.Device,
			DebugMode:  dto.Debug,
			Standalone: dto.Standalone,
		}, nil
	default:
		return nil, zerr.With(
			zerr.With(zerr.New("unknown target kind"), "kind", dto.Kind), "target", name)
	}
}
