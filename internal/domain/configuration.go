package domain

// ProductConfiguration is the customer's in-progress selection for one product.
// Widths and heights are whole inches; the fraction fields hold "n/d" or "0".
// Empty option ids mean nothing has been selected for that group.
type ProductConfiguration struct {
	Width               int    `json:"width" validate:"gte=0"`
	WidthFraction       string `json:"widthFraction"`
	Height              int    `json:"height" validate:"gte=0"`
	HeightFraction      string `json:"heightFraction"`
	Headrail            string `json:"headrail,omitempty"`
	HeadrailColour      string `json:"headrailColour,omitempty"`
	InstallationMethod  string `json:"installationMethod,omitempty"`
	ControlOption       string `json:"controlOption,omitempty"`
	Stacking            string `json:"stacking,omitempty"`
	ControlSide         string `json:"controlSide,omitempty"`
	BottomChain         string `json:"bottomChain,omitempty"`
	BracketType         string `json:"bracketType,omitempty"`
	ChainColor          string `json:"chainColor,omitempty"`
	WrappedCassette     string `json:"wrappedCassette,omitempty"`
	CassetteMatchingBar string `json:"cassetteMatchingBar,omitempty"`
}

// Option is one selectable, priced choice within an option group.
type Option struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}
