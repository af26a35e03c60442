package netlog

// Classification predicates shared by both log passes. All of these are pure
// functions of the line so the boundary pass and the split pass always agree.

// IsZoneChange reports whether the line opens a new zone.
func (l Line) IsZoneChange() bool {
	return l.Code == CodeChangeZone
}

// ZoneName returns the zone name of a zone-change line, or "".
func (l Line) ZoneName() string {
	if !l.IsZoneChange() {
		return ""
	}
	return l.Field(1)
}

// IsFightStart reports whether the line begins an encounter.
func (l Line) IsFightStart() bool {
	if l.Code != CodeDirector {
		return false
	}
	cmd := l.Field(1)
	return cmd == DirectorCommence || cmd == DirectorRestart
}

// IsFightEnd reports whether the line closes the current encounter, either
// as a victory or as a wipe.
func (l Line) IsFightEnd() bool {
	return l.IsVictory() || l.IsWipe()
}

// IsVictory reports whether the line is a victory director event.
func (l Line) IsVictory() bool {
	return l.Code == CodeDirector && l.Field(1) == DirectorVictory
}

// IsWipe reports whether the line is a wipe or party-defeat director event.
func (l Line) IsWipe() bool {
	if l.Code != CodeDirector {
		return false
	}
	cmd := l.Field(1)
	return cmd == DirectorFade || cmd == DirectorWipe
}

// SealName extracts the sealed-area name from a territory seal message.
func (l Line) SealName() (string, bool) {
	if l.Code != CodeLogMessage || l.Field(0) != SealChannel {
		return "", false
	}
	msg := l.Field(2)
	idx := indexOfSuffix(msg, sealSuffix)
	if idx <= 0 {
		return "", false
	}
	return msg[:idx], true
}

func indexOfSuffix(s, suffix string) int {
	if len(s) <= len(suffix) || s[len(s)-len(suffix):] != suffix {
		return -1
	}
	return len(s) - len(suffix)
}

// interestingCodes is the analysis subset: combat actions, status effects,
// deaths, combatant and zone bookkeeping, and chat. High-frequency telemetry
// (HP ticks, position sync) is deliberately absent.
var interestingCodes = map[Code]bool{
	CodeLogMessage:          true,
	CodeChangeZone:          true,
	CodeChangePrimaryPlayer: true,
	CodeAddCombatant:        true,
	CodeRemoveCombatant:     true,
	CodeStartsCasting:       true,
	CodeAbility:             true,
	CodeAOEAbility:          true,
	CodeDoTHoT:              true,
	CodeDeath:               true,
	CodeStatusAdd:           true,
	CodeStatusRemove:        true,
	CodeDirector:            true,
}

// IsInteresting reports whether the line belongs to the analysis subset.
func (l Line) IsInteresting() bool {
	return interestingCodes[l.Code]
}

// globalCodes are zone-independent lines: primary player changes and
// client-meta lines (version, debug, packet dump, error).
var globalCodes = map[Code]bool{
	CodeChangePrimaryPlayer: true,
	CodeDebug:               true,
	CodePacketDump:          true,
	CodeVersion:             true,
	CodeError:               true,
}

// IsGlobal reports whether the line is meaningful outside any zone or fight
// context.
func (l Line) IsGlobal() bool {
	return globalCodes[l.Code]
}
