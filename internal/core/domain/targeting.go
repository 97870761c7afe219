package domain

// Targeting describes what a brand wants to achieve with a campaign and
// which kinds of content it expects. Empty lists mean no preference.
type Targeting struct {
	AwarenessGoals  []string `json:"awareness_goals,omitempty"`
	AdvocacyGoals   []string `json:"advocacy_goals,omitempty"`
	ConversionGoals []string `json:"conversion_goals,omitempty"`
	ContentTypes    []string `json:"content_types,omitempty"`
}

// Normalize replaces nil lists with empty ones.
func (t Targeting) Normalize() Targeting {
	if t.AwarenessGoals == nil {
		t.AwarenessGoals = []string{}
	}
	if t.AdvocacyGoals == nil {
		t.AdvocacyGoals = []string{}
	}
	if t.ConversionGoals == nil {
		t.ConversionGoals = []string{}
	}
	if t.ContentTypes == nil {
		t.ContentTypes = []string{}
	}
	return t
}
