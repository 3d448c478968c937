package generator

// Assignment maps one generator to the module that supplies it
type Assignment struct {
	Generator string
	Module    string
}

// Proposal is the ordered set of generator assignments a plugin asks for.
// Order follows the plugin's declaration.
type Proposal []Assignment

// ChangeSet lists generators whose owner would change if a proposal is applied
type ChangeSet []string

// Propose assigns every declared generator to module. Duplicate names keep
// their first position.
func Propose(module string, names []string) Proposal {
	seen := make(map[string]bool, len(names))
	proposal := make(Proposal, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		proposal = append(proposal, Assignment{Generator: name, Module: module})
	}
	return proposal
}

// Map returns the proposal as a generator -> module mapping
func (p Proposal) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, a := range p {
		m[a.Generator] = a.Module
	}
	return m
}

// IsEmpty reports whether the change set needs no acknowledgement
func (c ChangeSet) IsEmpty() bool {
	return len(c) == 0
}

// DetectChanges returns every proposed generator whose current owner differs
// from the proposed one. New generators count as changes.
func DetectChanges(current map[string]string, proposed Proposal) ChangeSet {
	changes := ChangeSet{}
	for _, a := range proposed {
		if owner, ok := current[a.Generator]; ok && owner == a.Module {
			continue
		}
		changes = append(changes, a.Generator)
	}
	return changes
}

// Merge returns a new mapping with proposed assignments overriding current ones
func Merge(current map[string]string, proposed Proposal) map[string]string {
	merged := make(map[string]string, len(current)+len(proposed))
	for k, v := range current {
		merged[k] = v
	}
	for _, a := range proposed {
		merged[a.Generator] = a.Module
	}
	return merged
}

// Without returns a copy of current with every generator owned by module removed
func Without(current map[string]string, module string) map[string]string {
	kept := make(map[string]string, len(current))
	for k, v := range current {
		if v != module {
			kept[k] = v
		}
	}
	return kept
}
