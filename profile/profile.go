// Copyright 2025 Poiesic Systems
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

// Package profile manages persona profiles: who the memory companion is,
// which language it speaks and what it knows about. Each profile owns a
// directory under the data dir holding its profile.json, its memory
// database and the raw copies of ingested files.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/recollect/prompts"
)

// SupportedLanguages lists the languages a profile can answer in.
var SupportedLanguages = []string{"english", "italian"}

var (
	// ErrNotFound indicates that no profile with that name exists.
	ErrNotFound = errors.New("profile not found")

	// ErrInvalidName indicates an empty or unusable profile name.
	ErrInvalidName = errors.New("invalid profile name")

	// ErrUnsupportedLanguage indicates a language outside SupportedLanguages.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Profile is a persona definition, persisted as profile.json.
type Profile struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Traits      []string  `json:"traits,omitempty"`
	Domains     []string  `json:"domains,omitempty"`
	OpenDomain  bool      `json:"open_domain"`
	CreatedAt   time.Time `json:"created_at"`
}

var nameCleaner = regexp.MustCompile(`[^a-z0-9_]+`)

// DirName converts a profile name into its directory name: lowercase with
// underscores, anything else stripped.
func DirName(name string) string {
	dir := strings.ToLower(strings.TrimSpace(name))
	dir = strings.ReplaceAll(dir, " ", "_")
	return nameCleaner.ReplaceAllString(dir, "")
}

// Validate checks the profile is complete and its language supported.
func (p *Profile) Validate() error {
	if DirName(p.Name) == "" {
		return fmt.Errorf("%w: %q", ErrInvalidName, p.Name)
	}
	if !slices.Contains(SupportedLanguages, p.Language) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, p.Language)
	}
	return nil
}

// Dir returns the profile's directory under dataDir.
func (p *Profile) Dir(dataDir string) string {
	return filepath.Join(dataDir, DirName(p.Name))
}

// RawDir returns the directory where originals of ingested files are kept.
func (p *Profile) RawDir(dataDir string) string {
	return filepath.Join(p.Dir(dataDir), "raw")
}

// DatabaseDir returns the directory holding the profile's memory database.
func (p *Profile) DatabaseDir(dataDir string) string {
	return filepath.Join(p.Dir(dataDir), "db")
}

// Save writes the profile to dataDir, creating its directory tree.
func (p *Profile) Save(dataDir string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	if err := os.MkdirAll(p.RawDir(dataDir), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(p.Dir(dataDir), "profile.json"), data, 0644)
}

// Load reads a profile by name from dataDir.
func Load(dataDir, name string) (*Profile, error) {
	dir := DirName(name)
	if dir == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	data, err := os.ReadFile(filepath.Join(dataDir, dir, "profile.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all profiles under dataDir, sorted by name. A missing data
// dir yields an empty list.
func List(dataDir string) ([]*Profile, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var profiles []*Profile
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, err := Load(dataDir, entry.Name())
		if err != nil {
			// Directories without a profile.json are not profiles.
			continue
		}
		profiles = append(profiles, p)
	}
	slices.SortFunc(profiles, func(a, b *Profile) int {
		return strings.Compare(a.Name, b.Name)
	})
	return profiles, nil
}

// BuildSystemPrompt renders the profile's system prompt. A system.md in the
// profile directory overrides the embedded template.
func (p *Profile) BuildSystemPrompt(dataDir string) (string, error) {
	loader := prompts.NewLoader(p.Dir(dataDir))

	system, err := loader.Load(prompts.SystemTemplate)
	if err != nil {
		return "", err
	}

	guidanceName := prompts.DomainClosedPartial
	if p.OpenDomain {
		guidanceName = prompts.DomainOpenPartial
	}
	guidance, err := loader.Load(guidanceName)
	if err != nil {
		return "", err
	}

	traits := strings.Join(p.Traits, ", ")
	if traits == "" {
		traits = "warm, attentive"
	}
	domains := strings.Join(p.Domains, ", ")
	if domains == "" {
		domains = "the owner's personal memories"
	}

	return prompts.Render(system, map[string]string{
		"name":            p.Name,
		"description":     p.Description,
		"language":        p.Language,
		"traits":          traits,
		"domains":         domains,
		"domain_guidance": strings.TrimSpace(guidance),
	}), nil
}
