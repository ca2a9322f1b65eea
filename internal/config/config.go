// Package config externalizes the parser entry-point parameters spec.md
// §6 enumerates (parse_mode, builtin_mode, strict_mode, super_binding,
// default_ctor_kind, this_tdz_mode) plus the compile-time capability
// flags (spec.md §"Capability flags"), loadable from a YAML profile so
// the CLI and test harness can select "es5" vs "es2015-module" without
// hand-assembling flags.
//
// Grounded in the teacher's functional-options style for Lexer/Parser
// construction (internal/lexer/options.go, internal/parser/parser.go's
// New), externalized into a struct a YAML document can populate rather
// than a chain of With* calls, since a CLI profile is data, not code.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// ParseMode mirrors spec.md §6's parse_mode enumeration. Only Program and
// Module are wired into internal/parser.Mode (internal/parser's Mode has
// no Method/Getter/Setter/GeneratorBody entry points of its own - those
// are reached through the ordinary class/object-member grammar instead).
// Load does not validate the value: cmd/esparser's parserMode maps the
// two Module values to parser.ModeModule and any other string to
// parser.ModeProgram.
type ParseMode string

const (
	ParseModeProgram        ParseMode = "Program"
	ParseModeModuleAnalyze  ParseMode = "ModuleAnalyze"
	ParseModeModuleEvaluate ParseMode = "ModuleEvaluate"
)

// BuiltinMode distinguishes ordinary user source from builtin/library
// source, which disables some user-oriented checks (spec.md §6).
type BuiltinMode string

const (
	BuiltinModeNormal  BuiltinMode = "Normal"
	BuiltinModeBuiltin BuiltinMode = "Builtin"
)

// SuperBinding and DefaultCtorKind mirror the remaining spec.md §6 entry
// parameters that affect class/super parsing decisions.
type SuperBinding string

const (
	SuperBindingNone    SuperBinding = "None"
	SuperBindingMethod  SuperBinding = "Method"
	SuperBindingDerived SuperBinding = "DerivedConstructor"
)

type DefaultCtorKind string

const (
	DefaultCtorBase    DefaultCtorKind = "Base"
	DefaultCtorDerived DefaultCtorKind = "Derived"
)

// Capabilities records the ES6 capability flags spec.md's "Capability
// flags (compile-time)" names. The parser does not read them:
// parser.New takes only a Mode, so class, generator, arrow-function and
// template-literal syntax is accepted whatever these fields say. Of all
// the Options fields, only ParseMode reaches the parser.
type Capabilities struct {
	ClassSyntax       bool `yaml:"es6_class_syntax"`
	Generators        bool `yaml:"es6_generators"`
	ArrowFunctions    bool `yaml:"es6_arrowfunction_syntax"`
	TemplateLiterals  bool `yaml:"es6_template_literal_syntax"`
}

// Options bundles a parse's entry-point parameters (spec.md §6) and
// capability flags into one value a profile file or a CLI flag set can
// populate (spec.md §6, "Determinism": parsing is a pure function of
// exactly these inputs plus the source text).
type Options struct {
	ParseMode       ParseMode       `yaml:"parse_mode"`
	BuiltinMode     BuiltinMode     `yaml:"builtin_mode"`
	StrictMode      bool            `yaml:"strict_mode"`
	SuperBinding    SuperBinding    `yaml:"super_binding"`
	DefaultCtorKind DefaultCtorKind `yaml:"default_ctor_kind"`
	ThisTDZMode     bool            `yaml:"this_tdz_mode"`
	Capabilities    Capabilities    `yaml:"capabilities"`
}

// Default returns the all-capabilities-on profile used when the CLI is
// given no --profile file: a plain Program parse in strict-off, non-
// builtin mode with every ES6 production enabled.
func Default() *Options {
	return &Options{
		ParseMode:       ParseModeProgram,
		BuiltinMode:     BuiltinModeNormal,
		SuperBinding:    SuperBindingNone,
		DefaultCtorKind: DefaultCtorBase,
		Capabilities: Capabilities{
			ClassSyntax:      true,
			Generators:       true,
			ArrowFunctions:   true,
			TemplateLiterals: true,
		},
	}
}

// namedProfile looks up the built-in profile names the CLI's --profile flag
// accepts without reading a file (spec.md §10.3's "es5",
// "es2015-module", "es2015-script").
func namedProfile(name string) (*Options, bool) {
	switch name {
	case "es2015-script":
		return Default(), true
	case "es2015-module":
		o := Default()
		o.ParseMode = ParseModeModuleAnalyze
		o.StrictMode = true
		return o, true
	case "es5":
		return &Options{
			ParseMode:       ParseModeProgram,
			BuiltinMode:     BuiltinModeNormal,
			SuperBinding:    SuperBindingNone,
			DefaultCtorKind: DefaultCtorBase,
		}, true
	default:
		return nil, false
	}
}

// Load reads an Options profile. path may be one of the built-in profile
// names (looked up without touching the filesystem) or a path to a YAML
// document shaped like Options; Default() fields are used as a base so a
// profile only needs to override what it changes.
func Load(path string) (*Options, error) {
	if opts, ok := namedProfile(path); ok {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	opts := Default()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return opts, nil
}
