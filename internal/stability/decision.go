package stability

import (
	"fmt"

	"shelflife"
)

// Policy bounds an extrapolation as Y = min(Multiplier*X, X+AdditiveCapMonths).
// Both bounds are regulatory ceilings; the tighter one governs. A zero
// Multiplier disables the multiplicative bound (additive cap only).
type Policy struct {
	Multiplier        float64 `mapstructure:"multiplier"`
	AdditiveCapMonths float64 `mapstructure:"additive_cap_months"`
}

// Apply returns the proposed shelf-life for a base duration x.
// Never returns less than x.
func (p Policy) Apply(x float64) float64 {
	y := x + p.AdditiveCapMonths
	if p.Multiplier > 0 {
		if m := p.Multiplier * x; m < y {
			y = m
		}
	}
	if y < x {
		y = x
	}
	return y
}

// describe renders the policy bounds for a rationale string.
func (p Policy) describe() string {
	if p.Multiplier > 0 {
		return fmt.Sprintf("up to %.1fx, capped at +%.0f months", p.Multiplier, p.AdditiveCapMonths)
	}
	return fmt.Sprintf("+%.0f months", p.AdditiveCapMonths)
}

// PolicyTable holds the regulatory caps per extrapolation tier.
// Refrigerated tiers must be dominated by their ambient counterparts
// (lower multiplier tier, halved additive cap); that ordering is what makes
// refrigerated storage never yield a longer shelf-life than ambient.
type PolicyTable struct {
	AmbientMax      Policy `mapstructure:"ambient_max"`      // no accelerated change, full backing
	RefrigeratedMax Policy `mapstructure:"refrigerated_max"` // same branch, cold chain
	AmbientMid      Policy `mapstructure:"ambient_mid"`      // partial backing, or accelerated change with full backing
	RefrigeratedMid Policy `mapstructure:"refrigerated_mid"` // same, cold chain
	AdditiveOnly    Policy `mapstructure:"additive_only"`    // flat +3 months grants
}

// DefaultPolicyTable returns the canonical ICH Q1E cap table.
func DefaultPolicyTable() PolicyTable {
	return PolicyTable{
		AmbientMax:      Policy{Multiplier: 2.0, AdditiveCapMonths: 12},
		RefrigeratedMax: Policy{Multiplier: 1.5, AdditiveCapMonths: 6},
		AmbientMid:      Policy{Multiplier: 1.5, AdditiveCapMonths: 6},
		RefrigeratedMid: Policy{Multiplier: 1.5, AdditiveCapMonths: 3},
		AdditiveOnly:    Policy{AdditiveCapMonths: 3},
	}
}

// Decide maps a base duration and the study-condition flags to a proposed
// shelf-life. The rules form a priority-ordered list (first match wins) and
// are total: every flag combination maps to exactly one category, so Decide
// never fails. Significant change at the accelerated condition is the
// dominant discriminator; frozen storage disables extrapolation outright
// because freezer kinetics are outside the accelerated/intermediate scheme.
func Decide(x float64, flags shelflife.ConditionFlags, table PolicyTable) shelflife.DecisionResult {
	switch {
	case flags.StoredFrozen:
		return noExtrapolation(x, shelflife.CategoryNoExtrapolationFrozen,
			"frozen storage: only long-term data is considered; no extrapolation")

	case flags.SignificantChangeAccelerated && flags.SignificantChangeIntermediate:
		return noExtrapolation(x, shelflife.CategoryNoExtrapolationBothConditions,
			"significant change at both accelerated and intermediate conditions; no extrapolation")

	case flags.SignificantChangeIntermediate:
		return noExtrapolation(x, shelflife.CategoryNoExtrapolationIntermediate,
			"significant change at the intermediate condition prevents extrapolation")

	case flags.SignificantChangeAccelerated:
		return decideAccelerated(x, flags, table)

	default:
		return decideLongTerm(x, flags, table)
	}
}

// decideAccelerated covers the family where the accelerated condition
// changed but the intermediate condition corroborates stability. Only
// small, evidence-conditional extrapolation is granted.
func decideAccelerated(x float64, flags shelflife.ConditionFlags, table PolicyTable) shelflife.DecisionResult {
	switch {
	case flags.StatisticallySupported && flags.SupportingDataAvailable:
		p := pick(flags, table.AmbientMid, table.RefrigeratedMid)
		return extrapolate(x, p, shelflife.CategoryAcceleratedFullSupport,
			"significant change at accelerated only; statistical and supporting evidence allow "+p.describe()+qualifier(flags))

	case flags.StatisticallySupported || flags.SupportingDataAvailable:
		p := pick(flags, table.AdditiveOnly, table.RefrigeratedMid)
		return extrapolate(x, p, shelflife.CategoryAcceleratedPartialSupport,
			"significant change at accelerated only; partial evidence allows "+p.describe()+qualifier(flags))

	default:
		return noExtrapolation(x, shelflife.CategoryNoExtrapolationAccelerated,
			"significant change at accelerated; insufficient statistical/supporting evidence")
	}
}

// decideLongTerm covers the family with no significant change at the
// accelerated condition, where the larger extrapolation tiers apply.
func decideLongTerm(x float64, flags shelflife.ConditionFlags, table PolicyTable) shelflife.DecisionResult {
	switch {
	case flags.LowVariabilityTrend:
		p := pick(flags, table.AmbientMax, table.RefrigeratedMax)
		return extrapolate(x, p, shelflife.CategoryLowVariability,
			"no change at accelerated and low variability; "+p.describe()+" without formal statistics"+qualifier(flags))

	case flags.StatisticallySupported && flags.SupportingDataAvailable:
		p := pick(flags, table.AmbientMax, table.RefrigeratedMax)
		return extrapolate(x, p, shelflife.CategoryFullSupport,
			"no change at accelerated with full statistical and supporting backing; "+p.describe()+qualifier(flags))

	case flags.StatisticallySupported || flags.SupportingDataAvailable:
		p := pick(flags, table.AmbientMid, table.RefrigeratedMid)
		return extrapolate(x, p, shelflife.CategoryPartialSupport,
			"no change at accelerated with partial backing; "+p.describe()+qualifier(flags))

	default:
		return noExtrapolation(x, shelflife.CategoryNoExtrapolationInsufficient,
			"insufficient evidence to extrapolate")
	}
}

// pick selects the ambient or refrigerated policy tier.
func pick(flags shelflife.ConditionFlags, ambient, refrigerated Policy) Policy {
	if flags.StoredRefrigerated {
		return refrigerated
	}
	return ambient
}

func qualifier(flags shelflife.ConditionFlags) string {
	if flags.StoredRefrigerated {
		return " (refrigerated)"
	}
	return ""
}

func noExtrapolation(x float64, category shelflife.DecisionCategory, rationale string) shelflife.DecisionResult {
	return shelflife.DecisionResult{
		BaseDuration:      x,
		ProposedShelfLife: x,
		Category:          category,
		Rationale:         rationale,
	}
}

func extrapolate(x float64, p Policy, category shelflife.DecisionCategory, rationale string) shelflife.DecisionResult {
	return shelflife.DecisionResult{
		BaseDuration:      x,
		ProposedShelfLife: p.Apply(x),
		Category:          category,
		Rationale:         rationale,
	}
}
