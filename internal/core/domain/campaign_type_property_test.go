package domain

import (
	"maps"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func toFields(keys, values []string) map[string]any {
	m := make(map[string]any)
	for i := 0; i < len(keys) && i < len(values); i++ {
		m[keys[i]] = values[i]
	}
	return m
}

// TestMergeTypeDataLaw checks that merged = base with every patch key
// overwritten or added, and that neither input is modified.
func TestMergeTypeDataLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("patch keys win, base keys survive", prop.ForAll(
		func(baseKeys, baseValues, patchKeys, patchValues []string) bool {
			base := toFields(baseKeys, baseValues)
			patch := toFields(patchKeys, patchValues)
			baseBefore := maps.Clone(base)
			patchBefore := maps.Clone(patch)

			merged := MergeTypeData(base, patch)

			for k, v := range patch {
				if merged[k] != v {
					return false
				}
			}
			for k, v := range base {
				if _, overwritten := patch[k]; !overwritten && merged[k] != v {
					return false
				}
			}
			for k := range merged {
				_, inBase := base[k]
				_, inPatch := patch[k]
				if !inBase && !inPatch {
					return false
				}
			}
			return maps.Equal(base, baseBefore) && maps.Equal(patch, patchBefore)
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("empty patch is identity", prop.ForAll(
		func(keys, values []string) bool {
			base := toFields(keys, values)
			return maps.Equal(MergeTypeData(base, nil), base)
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
