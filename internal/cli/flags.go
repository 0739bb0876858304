package cli

import (
	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/spf13/cobra"
)

// generationFlags mirror config.Generation. A flag overrides the config
// file only when it was set on the command line.
type generationFlags struct {
	root               string
	maxPathDepth       int
	maxPaths           int
	selectionDepth     int
	maxFieldsPerType   int
	maxTotalFields     int
	maxInputDepth      int
	argMode            string
	cyclePolicy        string
	optionalArgs       bool
	requiredArgsFields bool
	inlineFragments    bool
	bundle             bool
	noPretty           bool
	indent             int
}

var genFlags generationFlags

// addSearchFlags registers the flags that shape the path search.
func addSearchFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.Flags()
	f.StringVarP(&genFlags.root, "root", "r", d.Root, "Root type name")
	f.IntVarP(&genFlags.maxPathDepth, "max-path-depth", "D", d.Generation.MaxPathDepth, "Max traversal depth when finding paths")
	f.IntVarP(&genFlags.maxPaths, "max-paths", "M", d.Generation.MaxPaths, "Max number of paths")
}

// addSynthesisFlags registers the flags that shape generated queries.
func addSynthesisFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.Flags()
	f.IntVarP(&genFlags.selectionDepth, "selection-depth", "d", d.Generation.SelectionDepth, "Max depth of the target selection set")
	f.IntVarP(&genFlags.maxFieldsPerType, "max-fields-per-type", "F", d.Generation.MaxFieldsPerType, "Max fields selected per type")
	f.IntVarP(&genFlags.maxTotalFields, "max-total-fields", "T", d.Generation.MaxTotalFields, "Max fields selected per query")
	f.StringVarP(&genFlags.argMode, "arg-mode", "a", d.Generation.ArgMode, "Argument style: vars or inline")
	f.BoolVarP(&genFlags.requiredArgsFields, "include-required-args-fields", "R", false, "Select fields that need required arguments")
	f.BoolVarP(&genFlags.optionalArgs, "include-optional-args", "O", false, "Also pass optional arguments")
	f.StringVarP(&genFlags.cyclePolicy, "cycle-policy", "c", d.Generation.CyclePolicy, "On a type cycle: scalars, typename or stop")
	f.IntVarP(&genFlags.maxInputDepth, "max-input-depth", "I", d.Generation.MaxInputDepth, "Max nesting of synthesized input objects")
	f.BoolVar(&genFlags.inlineFragments, "inline-fragments", false, "Expand interfaces and unions with inline fragments")
	f.BoolVarP(&genFlags.bundle, "bundle-aliases", "b", false, "Bundle all paths into one aliased operation")
	f.BoolVarP(&genFlags.noPretty, "no-pretty-query", "Q", false, "Keep queries on one line")
	f.IntVarP(&genFlags.indent, "indent", "i", d.Output.Indent, "Indent size of pretty queries")
}

// applyGenerationFlags copies explicitly set flags into c and validates it.
func applyGenerationFlags(cmd *cobra.Command, c *config.Config) error {
	f := cmd.Flags()
	g := &c.Generation

	setString := func(name string, dst *string, v string) {
		if f.Lookup(name) != nil && f.Changed(name) {
			*dst = v
		}
	}
	setInt := func(name string, dst *int, v int) {
		if f.Lookup(name) != nil && f.Changed(name) {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool, v bool) {
		if f.Lookup(name) != nil && f.Changed(name) {
			*dst = v
		}
	}

	setString("root", &c.Root, genFlags.root)
	setInt("max-path-depth", &g.MaxPathDepth, genFlags.maxPathDepth)
	setInt("max-paths", &g.MaxPaths, genFlags.maxPaths)
	setInt("selection-depth", &g.SelectionDepth, genFlags.selectionDepth)
	setInt("max-fields-per-type", &g.MaxFieldsPerType, genFlags.maxFieldsPerType)
	setInt("max-total-fields", &g.MaxTotalFields, genFlags.maxTotalFields)
	setInt("max-input-depth", &g.MaxInputDepth, genFlags.maxInputDepth)
	setString("arg-mode", &g.ArgMode, genFlags.argMode)
	setString("cycle-policy", &g.CyclePolicy, genFlags.cyclePolicy)
	setBool("include-optional-args", &g.IncludeOptionalArgs, genFlags.optionalArgs)
	setBool("include-required-args-fields", &g.IncludeRequiredArgsFields, genFlags.requiredArgsFields)
	setBool("inline-fragments", &g.InlineFragments, genFlags.inlineFragments)
	setBool("bundle-aliases", &g.Bundle, genFlags.bundle)
	setInt("indent", &c.Output.Indent, genFlags.indent)
	if f.Lookup("no-pretty-query") != nil && f.Changed("no-pretty-query") {
		c.Output.Pretty = !genFlags.noPretty
	}

	return c.Validate()
}
