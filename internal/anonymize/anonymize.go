// Package anonymize rewrites player-identifying tokens in capture log lines
// to stable pseudonyms.
//
// The same real name or actor ID always maps to the same pseudonym within
// one Anonymizer's lifetime, so cross-line correlation survives
// anonymization. Nothing persists across runs: a fresh Anonymizer produces
// a fresh mapping even for the same input.
package anonymize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xivtools/xivsplit/internal/netlog"
	"github.com/xivtools/xivsplit/internal/notify"
)

// pseudoNamePrefix marks issued name pseudonyms; a token carrying it is
// never re-mapped, which makes anonymization idempotent.
const pseudoNamePrefix = "Anonymous "

// pseudoIDPrefix marks issued ID pseudonyms. It sits outside the player ID
// range, so no real actor ID can ever equal an issued pseudonym and an
// already-rewritten field is never a candidate for rewriting.
const pseudoIDPrefix = "AD"

// idNameSlots maps an event code to the field indexes (relative to the
// fields after the timestamp) holding an actor ID; the actor name sits in
// the following field.
var idNameSlots = map[netlog.Code][]int{
	netlog.CodeChangePrimaryPlayer: {0},
	netlog.CodeAddCombatant:        {0},
	netlog.CodeRemoveCombatant:     {0},
	netlog.CodeStartsCasting:       {0, 4},
	netlog.CodeAbility:             {0, 4},
	netlog.CodeAOEAbility:          {0, 4},
	netlog.CodeDoTHoT:              {0},
	netlog.CodeDeath:               {0, 2},
	netlog.CodeStatusAdd:           {3, 5},
	netlog.CodeStatusRemove:        {3, 5},
	netlog.CodeActionSync:          {0},
	netlog.CodeUpdateHP:            {0},
}

// idOnlySlots lists extra fields holding a bare actor ID with no adjacent
// name (currently the pet/minion owner on combatant lines).
var idOnlySlots = map[netlog.Code][]int{
	netlog.CodeAddCombatant:    {4},
	netlog.CodeRemoveCombatant: {4},
}

// playerChatChannels are channels where the speaker is a player and the
// message body is free text written by players.
var playerChatChannels = map[string]bool{
	"000A": true, // say
	"000B": true, // shout
	"000D": true, // tell
	"000E": true, // party
	"000F": true, // alliance
	"0018": true, // free company
	"001E": true, // yell
}

// systemChannels carry game-generated messages that may mention player
// names but are otherwise safe to keep.
var systemChannels = map[string]bool{
	"0039":             true, // system notice
	"0044":             true, // npc dialogue
	netlog.SealChannel: true,
}

// Anonymizer owns the run-scoped pseudonym mapping.
type Anonymizer struct {
	names    map[string]string // real name -> pseudonym
	ids      map[string]string // real actor ID -> pseudonym
	revNames map[string]string // pseudonym -> real name
	revIDs   map[string]string // pseudonym -> real actor ID

	// seenIDs records every player-class ID observed in any field,
	// including codes the rewriter does not handle. ValidateIDs compares
	// this against the assigned mapping to find leaks.
	seenIDs map[string]bool

	nameSeq int
	idSeq   int
}

// New returns an Anonymizer with an empty mapping.
func New() *Anonymizer {
	return &Anonymizer{
		names:    make(map[string]string),
		ids:      make(map[string]string),
		revNames: make(map[string]string),
		revIDs:   make(map[string]string),
		seenIDs:  make(map[string]bool),
	}
}

// Process rewrites the identity-carrying fields of one line. The second
// return is false when the line must be dropped because its content cannot
// be safely anonymized (free text on an unrecognized chat channel); that is
// a policy decision, not a parse failure — unparseable lines pass through
// unchanged.
func (a *Anonymizer) Process(line netlog.Line, n notify.Notifier) (string, bool) {
	for _, f := range line.Fields {
		if netlog.IsPlayerID(f) {
			a.seenIDs[f] = true
		}
	}

	if line.Code == netlog.CodeUnknown || len(line.Fields) == 0 {
		return line.Raw, true
	}

	parts := strings.Split(line.Raw, "|")

	if line.Code == netlog.CodeLogMessage {
		return a.processChat(line, parts, n)
	}

	for _, slot := range idNameSlots[line.Code] {
		a.rewritePair(parts, 2+slot)
	}
	for _, slot := range idOnlySlots[line.Code] {
		a.rewriteID(parts, 2+slot)
	}

	return strings.Join(parts, "|"), true
}

// processChat handles LogMessage lines. Player chat gets its speaker and
// message rewritten; system channels only get known names replaced in the
// message; anything else with content is dropped.
func (a *Anonymizer) processChat(line netlog.Line, parts []string, n notify.Notifier) (string, bool) {
	if len(parts) < 5 {
		return line.Raw, true
	}
	channel := line.Field(0)
	speaker := line.Field(1)
	message := line.Field(2)

	switch {
	case playerChatChannels[channel]:
		if speaker != "" {
			parts[3] = a.pseudonymFor(speaker)
		}
		parts[4] = a.replaceKnownNames(message)
		return strings.Join(parts, "|"), true

	case systemChannels[channel]:
		if speaker != "" && a.names[speaker] != "" {
			parts[3] = a.names[speaker]
		}
		parts[4] = a.replaceKnownNames(message)
		return strings.Join(parts, "|"), true

	default:
		if speaker == "" && message == "" {
			return line.Raw, true
		}
		n.Report(fmt.Sprintf("dropped chat line on unrecognized channel %s", channel))
		return "", false
	}
}

// rewritePair rewrites the actor ID at parts[i] and the name next to it,
// but only for player-class actors. NPC and pet actors keep their fields.
func (a *Anonymizer) rewritePair(parts []string, i int) {
	if i+1 >= len(parts) {
		return
	}
	id := parts[i]
	if !netlog.IsPlayerID(id) {
		return
	}
	parts[i] = a.pseudonymForID(id)
	if name := parts[i+1]; name != "" {
		parts[i+1] = a.pseudonymFor(name)
	}
}

func (a *Anonymizer) rewriteID(parts []string, i int) {
	if i >= len(parts) {
		return
	}
	if id := parts[i]; netlog.IsPlayerID(id) {
		parts[i] = a.pseudonymForID(id)
	}
}

// pseudonymFor returns the stable pseudonym for a real name, assigning one
// on first sight. Tokens that already are pseudonyms come back unchanged.
func (a *Anonymizer) pseudonymFor(name string) string {
	if strings.HasPrefix(name, pseudoNamePrefix) {
		return name
	}
	if p, ok := a.names[name]; ok {
		return p
	}
	a.nameSeq++
	p := fmt.Sprintf("%s%d", pseudoNamePrefix, a.nameSeq)
	a.names[name] = p
	a.revNames[p] = name
	return p
}

// pseudonymForID is the ID counterpart of pseudonymFor. Only tokens this
// run actually issued count as pseudonyms.
func (a *Anonymizer) pseudonymForID(id string) string {
	if _, ok := a.revIDs[id]; ok {
		return id
	}
	if p, ok := a.ids[id]; ok {
		return p
	}
	a.idSeq++
	p := fmt.Sprintf("%s%06X", pseudoIDPrefix, a.idSeq)
	a.ids[id] = p
	a.revIDs[p] = id
	return p
}

// replaceKnownNames substitutes every already-mapped real name occurring in
// free text with its pseudonym. Longer names go first so a name that is a
// prefix of another never splits the longer match.
func (a *Anonymizer) replaceKnownNames(text string) string {
	names := make([]string, 0, len(a.names))
	for real := range a.names {
		names = append(names, real)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	for _, real := range names {
		text = strings.ReplaceAll(text, real, a.names[real])
	}
	return text
}
