package customize

import "blinds-storefront/internal/domain"

// NewConfiguration is the starting configuration for a product: no size and
// nothing selected.
func NewConfiguration() domain.ProductConfiguration {
	return domain.ProductConfiguration{
		WidthFraction:  "0",
		HeightFraction: "0",
	}
}

// ConfigurationPatch lists the fields to change. Nil fields are left alone; an
// empty string clears a selection.
type ConfigurationPatch struct {
	Width               *int    `json:"width,omitempty" validate:"omitempty,gte=0"`
	WidthFraction       *string `json:"widthFraction,omitempty"`
	Height              *int    `json:"height,omitempty" validate:"omitempty,gte=0"`
	HeightFraction      *string `json:"heightFraction,omitempty"`
	Headrail            *string `json:"headrail,omitempty"`
	HeadrailColour      *string `json:"headrailColour,omitempty"`
	InstallationMethod  *string `json:"installationMethod,omitempty"`
	ControlOption       *string `json:"controlOption,omitempty"`
	Stacking            *string `json:"stacking,omitempty"`
	ControlSide         *string `json:"controlSide,omitempty"`
	BottomChain         *string `json:"bottomChain,omitempty"`
	BracketType         *string `json:"bracketType,omitempty"`
	ChainColor          *string `json:"chainColor,omitempty"`
	WrappedCassette     *string `json:"wrappedCassette,omitempty"`
	CassetteMatchingBar *string `json:"cassetteMatchingBar,omitempty"`
}

// UpdateConfiguration returns a new configuration with patch applied. cfg is
// not modified.
func UpdateConfiguration(cfg domain.ProductConfiguration, patch ConfigurationPatch) domain.ProductConfiguration {
	next := cfg
	setInt(&next.Width, patch.Width)
	setString(&next.WidthFraction, patch.WidthFraction)
	setInt(&next.Height, patch.Height)
	setString(&next.HeightFraction, patch.HeightFraction)
	setString(&next.Headrail, patch.Headrail)
	setString(&next.HeadrailColour, patch.HeadrailColour)
	setString(&next.InstallationMethod, patch.InstallationMethod)
	setString(&next.ControlOption, patch.ControlOption)
	setString(&next.Stacking, patch.Stacking)
	setString(&next.ControlSide, patch.ControlSide)
	setString(&next.BottomChain, patch.BottomChain)
	setString(&next.BracketType, patch.BracketType)
	setString(&next.ChainColor, patch.ChainColor)
	setString(&next.WrappedCassette, patch.WrappedCassette)
	setString(&next.CassetteMatchingBar, patch.CassetteMatchingBar)
	return next
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
