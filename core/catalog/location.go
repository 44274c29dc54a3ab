package catalog

import "sort"

// AncestorRule maps a family of template types onto the location of a
// governing base type. Rules cover hierarchies where concrete types share
// one storage folder (weapons, armor and accessories all live under the
// item folder).
type AncestorRule struct {
	// Governing is the type whose exact location the rule supplies.
	Governing TemplateType
	// Matches reports whether a looked-up type belongs to the family.
	Matches func(TemplateType) bool
}

// MatchTypes builds a rule predicate from a fixed set of types.
func MatchTypes(types ...TemplateType) func(TemplateType) bool {
	set := make(map[TemplateType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(t TemplateType) bool {
		_, ok := set[t]
		return ok
	}
}

// LocationResolver classifies template types into storage locations. It is
// immutable after construction and safe for concurrent use.
//
// Resolution is total: exact mappings are consulted first, then ancestor
// rules in registration order (most specific first), and types nothing
// claims resolve to the empty location rather than an error.
type LocationResolver struct {
	exact map[TemplateType]LocationSpec
	rules []AncestorRule
}

// NewLocationResolver builds a resolver from an exact type table and an
// ordered rule list. Both inputs are copied.
func NewLocationResolver(exact map[TemplateType]LocationSpec, rules []AncestorRule) *LocationResolver {
	r := &LocationResolver{
		exact: make(map[TemplateType]LocationSpec, len(exact)),
		rules: make([]AncestorRule, len(rules)),
	}
	for t, spec := range exact {
		r.exact[t] = spec
	}
	copy(r.rules, rules)
	return r
}

// Resolve returns the location for t. An exact mapping wins over rules; the
// first matching rule supplies its governing type's location; otherwise the
// empty location is returned.
func (r *LocationResolver) Resolve(t TemplateType) LocationSpec {
	if spec, ok := r.exact[t]; ok {
		return spec
	}
	for _, rule := range r.rules {
		if rule.Matches(t) {
			return r.exact[rule.Governing]
		}
	}
	return EmptyLocation()
}

// Known returns the exactly mapped template types in sorted order. Types
// reachable only through rules are not listed because rule predicates are
// not enumerable.
func (r *LocationResolver) Known() []TemplateType {
	types := make([]TemplateType, 0, len(r.exact))
	for t := range r.exact {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// DefaultLocations returns the exact location table for the built-in
// template types.
func DefaultLocations() map[TemplateType]LocationSpec {
	return map[TemplateType]LocationSpec{
		TypeFaction:   FolderLocation("Data/Factions/"),
		TypeMission:   FolderLocation("Data/Missions/"),
		TypeEntity:    FolderLocation("Data/Entities/"),
		TypeSkill:     FolderLocation("Data/Skills/"),
		TypeTag:       FolderLocation("Data/Tags/"),
		TypeBaseItem:  FolderLocation("Data/Items/"),
		TypeGameSetup: SingletonLocation("Data/GameSetup.json"),
	}
}

// DefaultAncestorRules returns the rule list for the built-in hierarchy:
// concrete item types store under the base item folder.
func DefaultAncestorRules() []AncestorRule {
	return []AncestorRule{
		{
			Governing: TypeBaseItem,
			Matches:   MatchTypes(TypeItem, TypeWeapon, TypeArmor, TypeAccessory),
		},
	}
}
