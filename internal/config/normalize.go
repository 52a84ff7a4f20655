package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSite()
	c.normalizeRender()
	c.normalizePreview()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.GEDCOMFile = strings.TrimSpace(c.Paths.GEDCOMFile)
	if value, ok := os.LookupEnv("FAMTREE_GEDCOM"); ok && strings.TrimSpace(value) != "" {
		c.Paths.GEDCOMFile = strings.TrimSpace(value)
	}
	if c.Paths.GEDCOMFile == "" {
		c.Paths.GEDCOMFile = defaultGEDCOMFile
	}
	if c.Paths.GEDCOMFile, err = expandPath(c.Paths.GEDCOMFile); err != nil {
		return fmt.Errorf("paths.gedcom_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSite() {
	c.Site.Title = strings.TrimSpace(c.Site.Title)
	if c.Site.Title == "" {
		c.Site.Title = defaultSiteTitle
	}
	c.Site.PeopleDir = strings.Trim(strings.TrimSpace(c.Site.PeopleDir), "/")
	if c.Site.PeopleDir == "" {
		c.Site.PeopleDir = defaultPeopleDir
	}
	c.Site.SurnamesDir = strings.Trim(strings.TrimSpace(c.Site.SurnamesDir), "/")
	if c.Site.SurnamesDir == "" {
		c.Site.SurnamesDir = defaultSurnamesDir
	}
	c.Site.Extension = strings.ToLower(strings.TrimSpace(c.Site.Extension))
	if c.Site.Extension == "" {
		c.Site.Extension = defaultExtension
	} else if !strings.HasPrefix(c.Site.Extension, ".") {
		c.Site.Extension = "." + c.Site.Extension
	}
	if c.Site.IDPrefixLength <= 0 {
		c.Site.IDPrefixLength = defaultIDPrefixLength
	}
	if c.Site.AncestorGenerations <= 0 {
		c.Site.AncestorGenerations = defaultAncestorGenerations
	}
	c.Site.ParentPolicy = strings.ToLower(strings.TrimSpace(c.Site.ParentPolicy))
	if c.Site.ParentPolicy == "" {
		c.Site.ParentPolicy = defaultParentPolicy
	}
}

func (c *Config) normalizeRender() {
	if c.Render.Workers <= 0 {
		c.Render.Workers = defaultRenderWorkers
	}
}

func (c *Config) normalizePreview() {
	c.Preview.Bind = strings.TrimSpace(c.Preview.Bind)
	if c.Preview.Bind == "" {
		c.Preview.Bind = defaultPreviewBind
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
