// Package manifest builds catalog tables from operator-managed sources.
//
// The primary source is a YAML manifest file describing location mappings,
// ancestor rules and redirection entries. Deployments that manage renames in
// the game database instead can load redirection entries from the
// template_redirects table.
//
// # Manifest Format
//
//	types:
//	  - type: FactionTemplate
//	    kind: folder
//	    path: Data/Factions/
//	  - type: GameSetupTemplate
//	    kind: singleton
//	    path: Data/GameSetup.json
//	ancestors:
//	  - governing: BaseItemTemplate
//	    descendants: [ItemTemplate, WeaponTemplate]
//	redirects:
//	  - location: Data/Items/
//	    old_name: sword_old
//	    action: replace
//	    new_name: sword.iron
//
// Kinds are folder, singleton or empty; actions are todo, replace or ignore.
// Unknown spellings, duplicate type mappings, duplicate redirect keys and
// replace entries without a new_name all fail parsing with ErrInvalid, so
// configuration typos surface at boot rather than as misrouted lookups.
//
// # Database Source
//
// LoadRedirectsDB selects from template_redirects after verifying the table
// schema. Rows pass the same validation as manifest-file entries.
package manifest
