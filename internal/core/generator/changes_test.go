package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDetectChanges_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		current  map[string]string
		proposed Proposal
		expected ChangeSet
	}{
		{
			name:     "NewGenerator_RequiresConfirmation",
			current:  map[string]string{},
			proposed: Propose("plugin-x", []string{"component"}),
			expected: ChangeSet{"component"},
		},
		{
			name:     "SameOwner_NoChange",
			current:  map[string]string{"component": "plugin-x"},
			proposed: Propose("plugin-x", []string{"component"}),
			expected: ChangeSet{},
		},
		{
			name:     "DifferentOwner_IsOverwrite",
			current:  map[string]string{"component": "plugin-a", "screen": "plugin-x"},
			proposed: Propose("plugin-x", []string{"screen", "component"}),
			expected: ChangeSet{"component"},
		},
		{
			name:     "NilCurrent_AllNew",
			current:  nil,
			proposed: Propose("plugin-x", []string{"b", "a"}),
			expected: ChangeSet{"b", "a"},
		},
		{
			name:     "EmptyProposal_NoChange",
			current:  map[string]string{"component": "plugin-a"},
			proposed: Propose("plugin-x", nil),
			expected: ChangeSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := DetectChanges(tt.current, tt.proposed)
			assert.Equal(t, tt.expected, changes)
			assert.Equal(t, len(tt.expected) == 0, changes.IsEmpty())
		})
	}
}

func TestPropose_DeduplicatesInDeclarationOrder(t *testing.T) {
	proposal := Propose("plugin-x", []string{"screen", "", "component", "screen"})

	assert.Equal(t, Proposal{
		{Generator: "screen", Module: "plugin-x"},
		{Generator: "component", Module: "plugin-x"},
	}, proposal)
	assert.Equal(t, map[string]string{"screen": "plugin-x", "component": "plugin-x"}, proposal.Map())
}

func TestMerge_ProposedWins(t *testing.T) {
	current := map[string]string{"component": "plugin-a", "container": "plugin-a"}
	merged := Merge(current, Propose("plugin-x", []string{"component", "screen"}))

	assert.Equal(t, map[string]string{
		"component": "plugin-x",
		"container": "plugin-a",
		"screen":    "plugin-x",
	}, merged)
	assert.Equal(t, "plugin-a", current["component"], "Merge must not mutate its input")
}

func TestWithout_DropsOwnedGenerators(t *testing.T) {
	current := map[string]string{"component": "plugin-x", "container": "plugin-a"}
	assert.Equal(t, map[string]string{"container": "plugin-a"}, Without(current, "plugin-x"))
	assert.Len(t, current, 2)
}

// Property-based tests using rapid

var (
	generatorNames = rapid.SampledFrom([]string{"component", "screen", "container", "saga", "reducer", "map"})
	moduleNames    = rapid.SampledFrom([]string{"plugin-a", "plugin-b", "plugin-x"})
)

func TestDetectChanges_PropertyBased_EmptyIffAllOwnersMatch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		current := rapid.MapOf(generatorNames, moduleNames).Draw(t, "current")
		module := moduleNames.Draw(t, "module")
		names := rapid.SliceOf(generatorNames).Draw(t, "names")
		proposal := Propose(module, names)

		allMatch := true
		for _, a := range proposal {
			if current[a.Generator] != a.Module {
				allMatch = false
			}
		}

		changes := DetectChanges(current, proposal)
		if changes.IsEmpty() != allMatch {
			t.Fatalf("changes=%v but allMatch=%v (current=%v proposal=%v)", changes, allMatch, current, proposal)
		}
	})
}

func TestDetectChanges_PropertyBased_FollowsProposalOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		current := rapid.MapOf(generatorNames, moduleNames).Draw(t, "current")
		proposal := Propose(moduleNames.Draw(t, "module"), rapid.SliceOf(generatorNames).Draw(t, "names"))

		changes := DetectChanges(current, proposal)

		index := make(map[string]int, len(proposal))
		for i, a := range proposal {
			index[a.Generator] = i
		}
		for i := 1; i < len(changes); i++ {
			if index[changes[i-1]] >= index[changes[i]] {
				t.Fatalf("change set %v out of proposal order %v", changes, proposal)
			}
		}
	})
}

func TestMerge_PropertyBased_AppliedProposalHasNoChanges(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		current := rapid.MapOf(generatorNames, moduleNames).Draw(t, "current")
		proposal := Propose(moduleNames.Draw(t, "module"), rapid.SliceOf(generatorNames).Draw(t, "names"))

		merged := Merge(current, proposal)
		if again := DetectChanges(merged, proposal); !again.IsEmpty() {
			t.Fatalf("re-applying proposal after merge produced changes %v", again)
		}
		for k, v := range current {
			if _, proposed := proposal.Map()[k]; !proposed && merged[k] != v {
				t.Fatalf("unrelated generator %q changed from %q to %q", k, v, merged[k])
			}
		}
	})
}
