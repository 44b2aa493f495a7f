package schema

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zengjixiang/parcel/errors"
)

// MaxLineLimit bounds Config.LineLimit.
const MaxLineLimit = 1_000_000

// LoaderFor derives the loader from a filename extension.
func LoaderFor(filename string) Loader {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jsx":
		return LoaderJSX
	case ".ts", ".mts", ".cts":
		return LoaderTS
	case ".tsx":
		return LoaderTSX
	default:
		return LoaderJS
	}
}

// Normalize fills optional fields with their defaults and canonicalizes
// empty collections to nil.
func (c *Config) Normalize() {
	if c.Loader == "" {
		c.Loader = LoaderFor(c.Filename)
	}
	if c.Target == "" {
		c.Target = TargetESNext
	}
	if c.Format == "" {
		c.Format = FormatPreserve
	}
	if c.Platform == "" {
		c.Platform = PlatformBrowser
	}
	if c.LegalComments == "" {
		c.LegalComments = LegalCommentsDefault
	}
	if len(c.Env) == 0 {
		c.Env = nil
	}
	if len(c.Define) == 0 {
		c.Define = nil
	}
	if len(c.Drop) == 0 {
		c.Drop = nil
	}
}

// Validate checks enum members and numeric ranges. It expects a
// normalized config.
func (c *Config) Validate() error {
	if !c.Loader.Valid() {
		return errors.InvalidEnum(errors.PhaseDecode, []string{"loader"}, c.Loader, Loaders())
	}
	if !c.Target.Valid() {
		return errors.InvalidEnum(errors.PhaseDecode, []string{"target"}, c.Target, Targets())
	}
	if !c.Format.Valid() {
		return errors.InvalidEnum(errors.PhaseDecode, []string{"format"}, c.Format, Formats())
	}
	if !c.Platform.Valid() {
		return errors.InvalidEnum(errors.PhaseDecode, []string{"platform"}, c.Platform, Platforms())
	}
	if !c.LegalComments.Valid() {
		return errors.InvalidEnum(errors.PhaseDecode, []string{"legal_comments"}, c.LegalComments, LegalCommentModes())
	}
	for i, d := range c.Drop {
		if !d.Valid() {
			return errors.InvalidEnum(errors.PhaseDecode, []string{"drop", strconv.Itoa(i)}, d, Drops())
		}
	}
	if c.LineLimit < 0 || c.LineLimit > MaxLineLimit {
		return errors.OutOfRange(errors.PhaseDecode, []string{"line_limit"}, c.LineLimit, 0, MaxLineLimit)
	}
	return nil
}

// SourceFile is the name the transform reports in diagnostics and source
// maps: Filename relative to ProjectRoot when both are set.
func (c *Config) SourceFile() string {
	if c.ProjectRoot == "" || c.Filename == "" {
		return c.Filename
	}
	rel, err := filepath.Rel(c.ProjectRoot, c.Filename)
	if err != nil || strings.HasPrefix(rel, "..") {
		return c.Filename
	}
	return filepath.ToSlash(rel)
}
