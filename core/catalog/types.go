package catalog

import (
	"encoding/json"
	"fmt"
)

// TemplateType identifies a record kind (one per distinct content schema).
// Types are plain strings so that content-defined kinds can be introduced
// without recompiling; the set in use is stable for the process lifetime.
type TemplateType string

// Built-in template types matching the game content layout.
const (
	TypeFaction   TemplateType = "FactionTemplate"
	TypeMission   TemplateType = "MissionTemplate"
	TypeEntity    TemplateType = "EntityTemplate"
	TypeSkill     TemplateType = "SkillTemplate"
	TypeTag       TemplateType = "TagTemplate"
	TypeBaseItem  TemplateType = "BaseItemTemplate"
	TypeItem      TemplateType = "ItemTemplate"
	TypeWeapon    TemplateType = "WeaponTemplate"
	TypeArmor     TemplateType = "ArmorTemplate"
	TypeAccessory TemplateType = "AccessoryTemplate"
	TypeGameSetup TemplateType = "GameSetupTemplate"
)

// LocationKind classifies how a template type is stored.
type LocationKind uint8

const (
	// LocationEmpty marks a type that is not independently loadable
	// (loose records embedded in other content). No backend call is made.
	LocationEmpty LocationKind = iota
	// LocationFolder marks a type whose records live under a folder prefix.
	LocationFolder
	// LocationSingleton marks a type stored at a single fixed path.
	LocationSingleton
)

// String returns the lowercase kind name used in logs and manifests.
func (k LocationKind) String() string {
	switch k {
	case LocationFolder:
		return "folder"
	case LocationSingleton:
		return "singleton"
	default:
		return "empty"
	}
}

// LocationSpec is the resolved storage classification for a template type.
// It is produced once per type by the LocationResolver and never mutated.
type LocationSpec struct {
	// Kind selects folder, singleton, or empty.
	Kind LocationKind
	// Path is the folder prefix or exact path. Opaque to the catalog;
	// interpreted only by the backend. Empty when Kind is LocationEmpty.
	Path string
}

// FolderLocation returns a LocationSpec for records stored under a folder.
func FolderLocation(path string) LocationSpec {
	return LocationSpec{Kind: LocationFolder, Path: path}
}

// SingletonLocation returns a LocationSpec for a single fixed path.
func SingletonLocation(path string) LocationSpec {
	return LocationSpec{Kind: LocationSingleton, Path: path}
}

// EmptyLocation returns the LocationSpec of a type that cannot be loaded
// on its own.
func EmptyLocation() LocationSpec {
	return LocationSpec{Kind: LocationEmpty}
}

// IsEmpty reports whether the spec marks a non-loadable type.
func (s LocationSpec) IsEmpty() bool {
	return s.Kind == LocationEmpty
}

// String formats the spec for logs, e.g. "folder(Data/Factions/)".
func (s LocationSpec) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	return s.Kind.String() + "(" + s.Path + ")"
}

// Record is one named content unit loaded from the backend. The payload is
// opaque to the catalog; consumers decode it with the typed helpers or their
// own schema structs.
type Record struct {
	// Name uniquely identifies the record within its type
	// (e.g. "mod_weapon.heavy.cannon_long").
	Name string `json:"name"`

	// Type is the template type this record was loaded for.
	Type TemplateType `json:"type"`

	// Data is the raw record payload as produced by the backend.
	Data json.RawMessage `json:"data"`
}

// RecordRef names a record of a given type without carrying its payload.
// Used as the target of replace redirections.
type RecordRef struct {
	// Type of the referenced record. Empty means "same type as the lookup".
	Type TemplateType `json:"type,omitempty"`
	// Name of the referenced record.
	Name string `json:"name"`
}

// RedirectAction is the configured outcome for a renamed or removed record.
type RedirectAction uint8

const (
	// RedirectToDo marks a rename that still awaits a migration decision.
	// Lookups hitting it fail hard until content maintainers classify it.
	RedirectToDo RedirectAction = iota
	// RedirectReplace resolves the old name to another record.
	RedirectReplace
	// RedirectIgnore marks the old name as deliberately retired; lookups
	// report a soft not-found.
	RedirectIgnore
)

// String returns the action name used in manifests and logs.
func (a RedirectAction) String() string {
	switch a {
	case RedirectReplace:
		return "replace"
	case RedirectIgnore:
		return "ignore"
	default:
		return "todo"
	}
}

// ParseRedirectAction maps the manifest spelling of an action. Unknown
// spellings are rejected so configuration typos fail at load time.
func ParseRedirectAction(s string) (RedirectAction, error) {
	switch s {
	case "todo":
		return RedirectToDo, nil
	case "replace":
		return RedirectReplace, nil
	case "ignore":
		return RedirectIgnore, nil
	default:
		return RedirectToDo, fmt.Errorf("catalog: unknown redirect action %q", s)
	}
}

// MarshalJSON renders the action under its manifest spelling.
func (a RedirectAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts the manifest spelling.
func (a *RedirectAction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRedirectAction(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// RedirectionEntry maps one deprecated record name to its resolution.
// Entries are keyed by (Location, OldName); the table holds at most one
// entry per key.
type RedirectionEntry struct {
	// Location is the storage location the old name belonged to,
	// e.g. "Data/Items/".
	Location string `json:"location" yaml:"location"`

	// OldName is the record name content may still reference.
	OldName string `json:"old_name" yaml:"old_name"`

	// Action decides how a lookup of OldName resolves.
	Action RedirectAction `json:"action" yaml:"-"`

	// NewType is the replacement record's type; empty means the type the
	// lookup was made for. Only meaningful for RedirectReplace.
	NewType TemplateType `json:"new_type,omitempty" yaml:"new_type"`

	// NewName is the replacement record's name. Only meaningful for
	// RedirectReplace.
	NewName string `json:"new_name,omitempty" yaml:"new_name"`
}

// Target returns the replacement reference of a replace entry.
func (e RedirectionEntry) Target() RecordRef {
	return RecordRef{Type: e.NewType, Name: e.NewName}
}

// ResolutionKind classifies the outcome of a redirection lookup.
type ResolutionKind uint8

const (
	// ResolvedNone means no redirection entry exists; the miss is an
	// ordinary not-found.
	ResolvedNone ResolutionKind = iota
	// ResolvedReplacement means the lookup should be retried against
	// Resolution.Target.
	ResolvedReplacement
	// ResolvedIgnored means the name is deliberately retired.
	ResolvedIgnored
	// ResolvedPending means an entry exists but is still marked todo.
	ResolvedPending
)

// Resolution is the outcome of RedirectTable.Resolve.
type Resolution struct {
	// Kind classifies the outcome.
	Kind ResolutionKind
	// Target is the replacement reference, set only for ResolvedReplacement.
	Target RecordRef
}
