package schema

import "slices"

// Loader selects the source syntax.
type Loader string

const (
	LoaderJS  Loader = "js"
	LoaderJSX Loader = "jsx"
	LoaderTS  Loader = "ts"
	LoaderTSX Loader = "tsx"
)

// Target selects the language level of the emitted code.
type Target string

const (
	TargetESNext Target = "esnext"
	TargetES2015 Target = "es2015"
	TargetES2016 Target = "es2016"
	TargetES2017 Target = "es2017"
	TargetES2018 Target = "es2018"
	TargetES2019 Target = "es2019"
	TargetES2020 Target = "es2020"
	TargetES2021 Target = "es2021"
	TargetES2022 Target = "es2022"
)

// Format selects the module format of the emitted code.
type Format string

const (
	FormatPreserve Format = "preserve"
	FormatESM      Format = "esm"
	FormatCJS      Format = "cjs"
	FormatIIFE     Format = "iife"
)

// Platform selects platform-specific defaults.
type Platform string

const (
	PlatformBrowser Platform = "browser"
	PlatformNode    Platform = "node"
	PlatformNeutral Platform = "neutral"
)

// LegalComments controls where license comments end up.
type LegalComments string

const (
	LegalCommentsDefault LegalComments = "default"
	LegalCommentsNone    LegalComments = "none"
	LegalCommentsInline  LegalComments = "inline"
	LegalCommentsEOF     LegalComments = "eof"
)

// Drop names a construct removed from the output.
type Drop string

const (
	DropConsole  Drop = "console"
	DropDebugger Drop = "debugger"
)

var (
	loaders       = []Loader{LoaderJS, LoaderJSX, LoaderTS, LoaderTSX}
	targets       = []Target{TargetESNext, TargetES2015, TargetES2016, TargetES2017, TargetES2018, TargetES2019, TargetES2020, TargetES2021, TargetES2022}
	formats       = []Format{FormatPreserve, FormatESM, FormatCJS, FormatIIFE}
	platforms     = []Platform{PlatformBrowser, PlatformNode, PlatformNeutral}
	legalComments = []LegalComments{LegalCommentsDefault, LegalCommentsNone, LegalCommentsInline, LegalCommentsEOF}
	drops         = []Drop{DropConsole, DropDebugger}
)

func (l Loader) Valid() bool        { return slices.Contains(loaders, l) }
func (t Target) Valid() bool        { return slices.Contains(targets, t) }
func (f Format) Valid() bool        { return slices.Contains(formats, f) }
func (p Platform) Valid() bool      { return slices.Contains(platforms, p) }
func (c LegalComments) Valid() bool { return slices.Contains(legalComments, c) }
func (d Drop) Valid() bool          { return slices.Contains(drops, d) }

// Loaders lists the accepted loader values.
func Loaders() []string { return names(loaders) }

// Targets lists the accepted target values.
func Targets() []string { return names(targets) }

// Formats lists the accepted format values.
func Formats() []string { return names(formats) }

// Platforms lists the accepted platform values.
func Platforms() []string { return names(platforms) }

// LegalCommentModes lists the accepted legal_comments values.
func LegalCommentModes() []string { return names(legalComments) }

// Drops lists the accepted drop values.
func Drops() []string { return names(drops) }

func names[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
