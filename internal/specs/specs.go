// Package specs is the static specialization-id to (class, spec, role)
// lookup table fed by COMBATANT_INFO's spec id field. Unknown ids are never
// an error — they simply yield no entry.
package specs

// Role is the broad role a specialization fills.
type Role string

const (
	RoleTank   Role = "tank"
	RoleHealer Role = "healer"
	RoleDPS    Role = "dps"
)

// Entry is one (class, spec, role) row.
type Entry struct {
	Class string
	Spec  string
	Role  Role
}

// table maps specialization id to its (class, spec, role) entry. IDs follow
// the game client's own numbering; this covers all currently-known
// specializations per §4.3 (~40 entries).
var table = map[int]Entry{
	62:  {"Mage", "Arcane", RoleDPS},
	63:  {"Mage", "Fire", RoleDPS},
	64:  {"Mage", "Frost", RoleDPS},
	65:  {"Paladin", "Holy", RoleHealer},
	66:  {"Paladin", "Protection", RoleTank},
	70:  {"Paladin", "Retribution", RoleDPS},
	71:  {"Warrior", "Arms", RoleDPS},
	72:  {"Warrior", "Fury", RoleDPS},
	73:  {"Warrior", "Protection", RoleTank},
	102: {"Druid", "Balance", RoleDPS},
	103: {"Druid", "Feral", RoleDPS},
	104: {"Druid", "Guardian", RoleTank},
	105: {"Druid", "Restoration", RoleHealer},
	250: {"Death Knight", "Blood", RoleTank},
	251: {"Death Knight", "Frost", RoleDPS},
	252: {"Death Knight", "Unholy", RoleDPS},
	253: {"Hunter", "Beast Mastery", RoleDPS},
	254: {"Hunter", "Marksmanship", RoleDPS},
	255: {"Hunter", "Survival", RoleDPS},
	256: {"Priest", "Discipline", RoleHealer},
	257: {"Priest", "Holy", RoleHealer},
	258: {"Priest", "Shadow", RoleDPS},
	259: {"Rogue", "Assassination", RoleDPS},
	260: {"Rogue", "Outlaw", RoleDPS},
	261: {"Rogue", "Subtlety", RoleDPS},
	262: {"Shaman", "Elemental", RoleDPS},
	263: {"Shaman", "Enhancement", RoleDPS},
	264: {"Shaman", "Restoration", RoleHealer},
	265: {"Warlock", "Affliction", RoleDPS},
	266: {"Warlock", "Demonology", RoleDPS},
	267: {"Warlock", "Destruction", RoleDPS},
	268: {"Monk", "Brewmaster", RoleTank},
	269: {"Monk", "Windwalker", RoleDPS},
	270: {"Monk", "Mistweaver", RoleHealer},
	577: {"Demon Hunter", "Havoc", RoleDPS},
	581: {"Demon Hunter", "Vengeance", RoleTank},
	1467: {"Evoker", "Devastation", RoleDPS},
	1468: {"Evoker", "Preservation", RoleHealer},
	1473: {"Evoker", "Augmentation", RoleDPS},
}

// Lookup returns the (class, spec, role) entry for specID. ok is false for
// any id not in the table — callers must treat that as "unknown", never as
// an error (§4.3).
func Lookup(specID int) (class, spec string, role Role, ok bool) {
	e, found := table[specID]
	if !found {
		return "", "", "", false
	}
	return e.Class, e.Spec, e.Role, true
}
