package querygen

import "fmt"

// ArgMode selects how argument values are written into generated queries.
type ArgMode string

const (
	// ArgModeVars declares variables and references them as $name.
	ArgModeVars ArgMode = "vars"
	// ArgModeInline embeds literal values in the query text.
	ArgModeInline ArgMode = "inline"
)

// CyclePolicy controls what is selected when a type reappears on the branch
// that is currently being expanded.
type CyclePolicy string

const (
	CycleScalars  CyclePolicy = "scalars"
	CycleTypename CyclePolicy = "typename"
	CycleStop     CyclePolicy = "stop"
)

// Options bounds path search and query synthesis.
type Options struct {
	MaxPathDepth     int `json:"maxPathDepth"`
	MaxPaths         int `json:"maxPaths"`
	SelectionDepth   int `json:"selectionDepth"`
	MaxFieldsPerType int `json:"maxFieldsPerType"`
	MaxTotalFields   int `json:"maxTotalFields"`
	MaxInputDepth    int `json:"maxInputDepth"`

	ArgMode     ArgMode     `json:"argMode"`
	CyclePolicy CyclePolicy `json:"cyclePolicy"`

	IncludeOptionalArgs       bool `json:"includeOptionalArgs"`
	IncludeRequiredArgsFields bool `json:"includeRequiredArgsFields"`
	InlineFragments           bool `json:"inlineFragments"`

	Bundle bool `json:"bundle"`
	Pretty bool `json:"pretty"`
	Indent int  `json:"indent"`
}

// DefaultOptions returns the budgets used by the command line tool.
func DefaultOptions() Options {
	return Options{
		MaxPathDepth:     8,
		MaxPaths:         200,
		SelectionDepth:   4,
		MaxFieldsPerType: 30,
		MaxTotalFields:   500,
		MaxInputDepth:    4,
		ArgMode:          ArgModeVars,
		CyclePolicy:      CycleScalars,
		Pretty:           true,
		Indent:           4,
	}
}

// Validate rejects unknown modes and non-positive budgets.
func (o Options) Validate() error {
	switch o.ArgMode {
	case ArgModeVars, ArgModeInline:
	default:
		return fmt.Errorf("invalid arg mode %q (want vars or inline)", o.ArgMode)
	}
	switch o.CyclePolicy {
	case CycleScalars, CycleTypename, CycleStop:
	default:
		return fmt.Errorf("invalid cycle policy %q (want scalars, typename or stop)", o.CyclePolicy)
	}

	for _, b := range []struct {
		name  string
		value int
	}{
		{"max path depth", o.MaxPathDepth},
		{"max paths", o.MaxPaths},
		{"selection depth", o.SelectionDepth},
		{"max fields per type", o.MaxFieldsPerType},
		{"max total fields", o.MaxTotalFields},
	} {
		if b.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", b.name, b.value)
		}
	}
	if o.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", o.Indent)
	}
	if o.MaxInputDepth < 0 {
		return fmt.Errorf("max input depth must not be negative, got %d", o.MaxInputDepth)
	}
	return nil
}
