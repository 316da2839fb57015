package customize

import "blinds-storefront/internal/domain"

// Headrail ids that drive visibility of the headrail-dependent groups.
const (
	HeadrailLouvresOnly = "louvres-only"
	HeadrailClassic     = "classic"
	HeadrailPlatinum    = "platinum"
)

// Group names an option group. The values double as configuration JSON keys.
type Group string

const (
	GroupHeadrail            Group = "headrail"
	GroupHeadrailColour      Group = "headrailColour"
	GroupInstallationMethod  Group = "installationMethod"
	GroupControlOption       Group = "controlOption"
	GroupStacking            Group = "stacking"
	GroupControlSide         Group = "controlSide"
	GroupBottomChain         Group = "bottomChain"
	GroupBracketType         Group = "bracketType"
	GroupChainColor          Group = "chainColor"
	GroupWrappedCassette     Group = "wrappedCassette"
	GroupCassetteMatchingBar Group = "cassetteMatchingBar"
)

var headrailOptions = []domain.Option{
	{ID: HeadrailLouvresOnly, Name: "Louvres Only", Price: 0, Description: "Replacement louvres for an existing headrail"},
	{ID: HeadrailClassic, Name: "Classic", Price: 10, Description: "Standard aluminium headrail"},
	{ID: HeadrailPlatinum, Name: "Platinum", Price: 25, Description: "Slimline headrail in a choice of colours"},
}

var headrailColourOptions = []domain.Option{
	{ID: "white", Name: "White", Price: 0},
	{ID: "black", Name: "Black", Price: 5},
	{ID: "silver", Name: "Silver", Price: 5},
	{ID: "anthracite", Name: "Anthracite", Price: 5},
}

var installationMethodOptions = []domain.Option{
	{ID: "inside-recess", Name: "Inside Recess", Price: 0},
	{ID: "outside-recess", Name: "Outside Recess", Price: 0},
}

var rollerInstallationOptions = []domain.Option{
	{ID: "top-fix", Name: "Top Fix", Price: 0, Description: "Brackets fixed into the top of the recess"},
	{ID: "face-fix", Name: "Face Fix", Price: 0, Description: "Brackets fixed onto the wall or frame"},
	{ID: "ceiling", Name: "Ceiling Fix", Price: 0},
}

var controlOptions = []domain.Option{
	{ID: "cord-and-chain", Name: "Cord and Chain", Price: 0},
	{ID: "wand", Name: "Wand", Price: 5},
	{ID: "motorised", Name: "Motorised", Price: 120},
}

var rollerControlOptions = []domain.Option{
	{ID: "chain", Name: "Chain", Price: 0},
	{ID: "spring", Name: "Spring Loaded", Price: 15},
	{ID: "motorised", Name: "Motorised", Price: 150},
}

var stackingOptions = []domain.Option{
	{ID: "left", Name: "Stack Left", Price: 0},
	{ID: "right", Name: "Stack Right", Price: 0},
	{ID: "centre-split", Name: "Centre Split", Price: 0},
}

var controlSideOptions = []domain.Option{
	{ID: "left", Name: "Left", Price: 0},
	{ID: "right", Name: "Right", Price: 0},
}

var bottomChainOptions = []domain.Option{
	{ID: "standard", Name: "Standard Chain", Price: 0},
	{ID: "no-chain", Name: "No Chain", Price: 0},
	{ID: "weighted", Name: "Weighted", Price: 0},
}

var bracketTypeOptions = []domain.Option{
	{ID: "standard", Name: "Standard Brackets", Price: 0},
	{ID: "extension", Name: "Extension Brackets", Price: 6},
}

var chainColorOptions = []domain.Option{
	{ID: "white", Name: "White", Price: 0},
	{ID: "black", Name: "Black", Price: 0},
	{ID: "chrome", Name: "Chrome", Price: 4},
}

var wrappedCassetteOptions = []domain.Option{
	{ID: "no", Name: "No", Price: 0},
	{ID: "yes", Name: "Yes", Price: 18},
}

var cassetteMatchingBarOptions = []domain.Option{
	{ID: "no", Name: "No", Price: 0},
	{ID: "yes", Name: "Yes", Price: 12},
}

// OptionSet holds the option tables that apply to one product family.
type OptionSet struct {
	Headrail            []domain.Option `json:"headrail"`
	HeadrailColour      []domain.Option `json:"headrailColour"`
	InstallationMethod  []domain.Option `json:"installationMethod"`
	ControlOption       []domain.Option `json:"controlOption"`
	Stacking            []domain.Option `json:"stacking"`
	ControlSide         []domain.Option `json:"controlSide"`
	BottomChain         []domain.Option `json:"bottomChain"`
	BracketType         []domain.Option `json:"bracketType"`
	ChainColor          []domain.Option `json:"chainColor"`
	WrappedCassette     []domain.Option `json:"wrappedCassette"`
	CassetteMatchingBar []domain.Option `json:"cassetteMatchingBar"`
}

// OptionsFor returns copies of the option tables for family. Only installation
// method and control option differ between families.
func OptionsFor(family Family) OptionSet {
	set := OptionSet{
		Headrail:            clone(headrailOptions),
		HeadrailColour:      clone(headrailColourOptions),
		InstallationMethod:  clone(installationMethodOptions),
		ControlOption:       clone(controlOptions),
		Stacking:            clone(stackingOptions),
		ControlSide:         clone(controlSideOptions),
		BottomChain:         clone(bottomChainOptions),
		BracketType:         clone(bracketTypeOptions),
		ChainColor:          clone(chainColorOptions),
		WrappedCassette:     clone(wrappedCassetteOptions),
		CassetteMatchingBar: clone(cassetteMatchingBarOptions),
	}
	if family == FamilyRoller {
		set.InstallationMethod = clone(rollerInstallationOptions)
		set.ControlOption = clone(rollerControlOptions)
	}
	return set
}

// table returns the shared table for group without copying.
func table(family Family, group Group) []domain.Option {
	switch group {
	case GroupHeadrail:
		return headrailOptions
	case GroupHeadrailColour:
		return headrailColourOptions
	case GroupInstallationMethod:
		if family == FamilyRoller {
			return rollerInstallationOptions
		}
		return installationMethodOptions
	case GroupControlOption:
		if family == FamilyRoller {
			return rollerControlOptions
		}
		return controlOptions
	case GroupStacking:
		return stackingOptions
	case GroupControlSide:
		return controlSideOptions
	case GroupBottomChain:
		return bottomChainOptions
	case GroupBracketType:
		return bracketTypeOptions
	case GroupChainColor:
		return chainColorOptions
	case GroupWrappedCassette:
		return wrappedCassetteOptions
	case GroupCassetteMatchingBar:
		return cassetteMatchingBarOptions
	}
	return nil
}

// findOption looks id up in options.
func findOption(options []domain.Option, id string) (domain.Option, bool) {
	for _, o := range options {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Option{}, false
}

func clone(options []domain.Option) []domain.Option {
	out := make([]domain.Option, len(options))
	copy(out, options)
	return out
}
