// Copyright 2025 ecomstack
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/ecomstack/schemapatch/pkg/patch"
)

// 🔄 EditDef is one literal substitution declared in a config file
type EditDef struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Search  string `json:"search" yaml:"search"`
	Replace string `json:"replace" yaml:"replace"`
}

// 📦 Patchset groups the ordered edits applied to one target
type Patchset struct {
	Name   string    `json:"name" yaml:"name"`
	Target string    `json:"target" yaml:"target"` // path or doublestar glob, relative to the config file
	Edits  []EditDef `json:"edits" yaml:"edits"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Patchsets []Patchset `json:"patchsets" yaml:"patchsets"`

	// location is the path the config was loaded from; target paths resolve
	// relative to its directory
	location string
}

// 📂 BaseDir returns the directory target paths are relative to
func (cfg *Config) BaseDir() string {
	if cfg.location == "" {
		return "."
	}
	return filepath.Dir(cfg.location)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if len(cfg.Patchsets) == 0 {
		return errors.New("at least one patchset is required")
	}

	seen := make(map[string]bool, len(cfg.Patchsets))
	for i, ps := range cfg.Patchsets {
		if ps.Name == "" {
			return errors.Errorf("patchset %d: name is required", i)
		}
		if seen[ps.Name] {
			return errors.Errorf("patchset %q: duplicate name", ps.Name)
		}
		seen[ps.Name] = true

		if ps.Target == "" {
			return errors.Errorf("patchset %q: target is required", ps.Name)
		}
		if err := patch.ValidateEdits(ps.PatchEdits()); err != nil {
			return errors.Errorf("patchset %q: %w", ps.Name, err)
		}
	}

	return nil
}

// PatchEdits converts the declared edits into patch.Edit values
func (ps *Patchset) PatchEdits() []patch.Edit {
	edits := make([]patch.Edit, 0, len(ps.Edits))
	for _, e := range ps.Edits {
		edits = append(edits, patch.Edit{
			Name:    e.Name,
			Search:  e.Search,
			Replace: e.Replace,
		})
	}
	return edits
}

// ResolveTargets expands the patchset's target against baseDir. A plain path
// is returned as-is; a doublestar glob is expanded, and zero matches is an
// error so a typo never turns the run into a silent no-op.
func (ps *Patchset) ResolveTargets(baseDir string) ([]string, error) {
	if !strings.ContainsAny(ps.Target, "*?[{") {
		return []string{ps.Target}, nil
	}

	matches, err := doublestar.Glob(os.DirFS(baseDir), filepath.ToSlash(ps.Target))
	if err != nil {
		return nil, errors.Errorf("expanding target glob %q: %w", ps.Target, err)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("target glob %q matched no files", ps.Target)
	}

	targets := make([]string, 0, len(matches))
	for _, m := range matches {
		targets = append(targets, filepath.FromSlash(m))
	}
	return targets, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	names := make([]string, 0, len(cfg.Patchsets))
	for _, ps := range cfg.Patchsets {
		names = append(names, ps.Name+" -> "+ps.Target)
	}
	return strings.Join(names, ", ")
}
