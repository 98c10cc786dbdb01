package prune

import "fmt"

// Policy is the tiered keep-policy. A count of zero disables that tier; a
// negative count is a configuration error.
type Policy struct {
	Daily   int
	Weekly  int
	Monthly int
	Yearly  int
}

// Validate rejects negative keep counts before any computation starts.
func (p Policy) Validate() error {
	for _, tier := range p.tiers() {
		if tier.n < 0 {
			return fmt.Errorf("retention policy: negative %s keep count %d", tier.g, tier.n)
		}
	}
	return nil
}

type tier struct {
	g Granularity
	n int
}

func (p Policy) tiers() [4]tier {
	return [4]tier{
		{Daily, p.Daily},
		{Weekly, p.Weekly},
		{Monthly, p.Monthly},
		{Yearly, p.Yearly},
	}
}

// Plan partitions the parseable input archives into the set to keep and the
// ordered list to delete. Skipped holds names that did not match the format;
// they belong to neither set and are never deleted.
type Plan struct {
	Retained []Archive
	Prune    []Archive
	Skipped  []string
}

// PruneNames returns the names to delete, preserving input order.
func (p *Plan) PruneNames() []string {
	names := make([]string, len(p.Prune))
	for i, a := range p.Prune {
		names[i] = a.Name
	}
	return names
}

// Compute decides which of the listed archive names to delete under the
// given policy. Retained is the union over the four tiers of each tier's
// representatives, de-duplicated by name; Prune is every other parseable
// archive, in input order. Duplicate input lines count once (first
// occurrence wins). The decision only depends on names and policy, never on
// the current time.
func Compute(names []string, format Format, policy Policy) (*Plan, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	plan := &Plan{}
	seen := make(map[string]bool, len(names))
	parsed := make([]Archive, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		a, err := format.Parse(name)
		if err != nil {
			plan.Skipped = append(plan.Skipped, name)
			continue
		}
		parsed = append(parsed, a)
	}

	retained := make(map[string]bool)
	for _, tier := range policy.tiers() {
		for _, a := range keepers(parsed, tier.g, tier.n) {
			retained[a.Name] = true
		}
	}

	for _, a := range parsed {
		if retained[a.Name] {
			plan.Retained = append(plan.Retained, a)
		} else {
			plan.Prune = append(plan.Prune, a)
		}
	}
	return plan, nil
}
