package model

// Weights control how the five component scores blend into the composite.
// They should sum to 1 for composite scores to stay naturally in [0,100];
// the engine clamps regardless.
type Weights struct {
	Value     float64
	Cashflow  float64
	Risk      float64
	Usability float64
	Campaign  float64
}

// DefaultWeights returns the standard blend: monetary value dominates,
// payment deferral second, risk third.
func DefaultWeights() Weights {
	return Weights{
		Value:     0.45,
		Cashflow:  0.25,
		Risk:      0.20,
		Usability: 0.05,
		Campaign:  0.05,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Value + w.Cashflow + w.Risk + w.Usability + w.Campaign
}

// WeightOverrides is a partial override of Weights. Nil fields keep their
// defaults.
type WeightOverrides struct {
	Value     *float64
	Cashflow  *float64
	Risk      *float64
	Usability *float64
	Campaign  *float64
}

// Resolve merges the overrides onto the default weights.
func (o WeightOverrides) Resolve() Weights {
	return o.ApplyTo(DefaultWeights())
}

// ApplyTo merges the overrides onto base, leaving unset fields untouched.
func (o WeightOverrides) ApplyTo(base Weights) Weights {
	if o.Value != nil {
		base.Value = *o.Value
	}
	if o.Cashflow != nil {
		base.Cashflow = *o.Cashflow
	}
	if o.Risk != nil {
		base.Risk = *o.Risk
	}
	if o.Usability != nil {
		base.Usability = *o.Usability
	}
	if o.Campaign != nil {
		base.Campaign = *o.Campaign
	}
	return base
}
