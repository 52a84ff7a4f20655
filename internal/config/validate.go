package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateSite() error {
	for key, value := range map[string]string{
		"site.people_dir":   c.Site.PeopleDir,
		"site.surnames_dir": c.Site.SurnamesDir,
	} {
		if strings.ContainsAny(value, `/\`) || value == "." || value == ".." {
			return fmt.Errorf("%s must be a single directory name, got %q", key, value)
		}
	}
	if c.Site.PeopleDir == c.Site.SurnamesDir {
		return errors.New("site.people_dir and site.surnames_dir must differ")
	}
	if strings.ContainsAny(c.Site.Extension[1:], `./\`) {
		return fmt.Errorf("site.extension must be a simple suffix such as .html, got %q", c.Site.Extension)
	}
	if c.Site.IDPrefixLength > maxIDPrefixLength {
		return fmt.Errorf("site.id_prefix_length must be between 1 and %d", maxIDPrefixLength)
	}
	if c.Site.AncestorGenerations > maxAncestorGenerations {
		return fmt.Errorf("site.ancestor_generations must be between 1 and %d", maxAncestorGenerations)
	}
	switch c.Site.ParentPolicy {
	case ParentPolicyFirst, ParentPolicyLast:
	default:
		return fmt.Errorf("site.parent_policy must be %q or %q, got %q", ParentPolicyFirst, ParentPolicyLast, c.Site.ParentPolicy)
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.Workers > maxRenderWorkers {
		return fmt.Errorf("render.workers must be between 1 and %d", maxRenderWorkers)
	}
	return nil
}
