package domain

import "go.trai.ch/zerr"

// TestTarget is a named, fully configured test binary invocation.
type TestTarget struct {
	Name    string
	Variant TestVariant
	Config  RunConfiguration
	Client  ClientSettings
}

// Manifest is the set of test targets declared by a configuration file,
// in declaration order.
type Manifest struct {
	Targets []TestTarget
}

// Select returns the targets matching the given names, preserving manifest
// order. An empty name list selects all targets. Unknown names are an error.
func (m *Manifest) Select(names []string) ([]TestTarget, error) {
	if len(names) == 0 {
		if len(m.Targets) == 0 {
			return nil, ErrNoTargets
		}
		return m.Targets, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var selected []TestTarget
	for _, t := range m.Targets {
		if wanted[t.Name] {
			selected = append(selected, t)
			delete(wanted, t.Name)
		}
	}
	for name := range wanted {
		return nil, zerr.With(zerr.Wrap(ErrNoTargets, "unknown test target"), "target", name)
	}
	if len(selected) == 0 {
		return nil, ErrNoTargets
	}
	return selected, nil
}
