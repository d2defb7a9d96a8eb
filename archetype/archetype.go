// Package archetype enumerates the enemy and ally kinds that can be placed
// in a level, along with the fixed data each kind carries.
package archetype

import (
	"errors"
	"fmt"
)

var ErrUnknownArchetype = errors.New("archetype: unknown tag")

type Faction int

const (
	FactionEnemy Faction = iota
	FactionAlly
)

func (f Faction) String() string {
	if f == FactionAlly {
		return "ally"
	}
	return "enemy"
}

// Kind identifies an archetype. Enemy and ally kinds share the enum but never
// a value, so an ally FlufflePop and an enemy FlufflePop stay distinct.
type Kind int

const (
	Unknown Kind = iota

	GreenWorm
	BlueSlime
	LavaSnake
	GreenSlime
	PurpleSlime
	Thunderer
	Chomper
	DiamondShooter
	SilverSlime
	PrimarySlime
	BlueSlimeBoss
	SecondarySlime
	Robot
	SuperThunderer
	RolyPolyBot
	MasterVerse
	FlufflePop

	AllyHooboo
	AllyPumbean
	AllyExcalibur
	AllySecondarySlime
	AllyRolyPolyBot
	AllyMasterVerse
	AllyFlufflePop
)

type info struct {
	name       string
	tag        string
	faction    Faction
	baseHealth float64
}

var infos = map[Kind]info{
	GreenWorm:      {name: "GreenWorm", tag: "wormGreen", baseHealth: 10},
	BlueSlime:      {name: "BlueSlime", tag: "slimeBlue", baseHealth: 20},
	LavaSnake:      {name: "LavaSnake", tag: "snakeLava", baseHealth: 50},
	GreenSlime:     {name: "GreenSlime", tag: "slimeGreen", baseHealth: 50},
	PurpleSlime:    {name: "PurpleSlime", tag: "slimePurple", baseHealth: 100},
	Thunderer:      {name: "Thunderer", tag: "thunderer", baseHealth: 150},
	Chomper:        {name: "Chomper", tag: "chomper", baseHealth: 350},
	DiamondShooter: {name: "DiamondShooter", tag: "diamondshooter", baseHealth: 500},
	SilverSlime:    {name: "SilverSlime", tag: "slimeSilver", baseHealth: 1000},
	PrimarySlime:   {name: "PrimarySlime", tag: "primaryslime", baseHealth: 1500},
	BlueSlimeBoss:  {name: "BlueSlimeBoss", tag: "slimeBlueBoss", baseHealth: 2500},
	SecondarySlime: {name: "SecondarySlime", tag: "secondaryslime", baseHealth: 3000},
	Robot:          {name: "Robot", tag: "robot", baseHealth: 5000},
	SuperThunderer: {name: "SuperThunderer", tag: "superthunderer", baseHealth: 10000},
	RolyPolyBot:    {name: "RolyPolyBot", tag: "rolypolybot", baseHealth: 10000},
	MasterVerse:    {name: "MasterVerse", tag: "masterverse", baseHealth: 50000},
	FlufflePop:     {name: "FlufflePop", tag: "flufflepop", baseHealth: 100000},

	AllyHooboo:         {name: "Hooboo", tag: "hooboo", faction: FactionAlly, baseHealth: 500},
	AllyPumbean:        {name: "Pumbean", tag: "pumbean", faction: FactionAlly, baseHealth: 1500},
	AllyExcalibur:      {name: "Excalibur", tag: "excalibur", faction: FactionAlly, baseHealth: 2500},
	AllySecondarySlime: {name: "AllySecondarySlime", tag: "secondaryslime", faction: FactionAlly, baseHealth: 3000},
	AllyRolyPolyBot:    {name: "AllyRolyPolyBot", tag: "rolypolybot", faction: FactionAlly, baseHealth: 10000},
	AllyMasterVerse:    {name: "AllyMasterVerse", tag: "masterverse", faction: FactionAlly, baseHealth: 50000},
	AllyFlufflePop:     {name: "AllyFlufflePop", tag: "flufflepop", faction: FactionAlly, baseHealth: 100000},
}

var (
	byTag  = map[Faction]map[string]Kind{FactionEnemy: {}, FactionAlly: {}}
	byName = map[string]Kind{}
)

func init() {
	for k, in := range infos {
		byTag[in.faction][in.tag] = k
		byName[in.name] = k
	}
}

// Parse resolves a map tag within a faction. Unknown tags are an error; the
// caller is expected to abort the level load.
func Parse(f Faction, tag string) (Kind, error) {
	if k, ok := byTag[f][tag]; ok {
		return k, nil
	}
	return Unknown, fmt.Errorf("%w: %s %q", ErrUnknownArchetype, f, tag)
}

func ParseEnemy(tag string) (Kind, error) { return Parse(FactionEnemy, tag) }

func ParseAlly(tag string) (Kind, error) { return Parse(FactionAlly, tag) }

// ByName resolves the Go-side name used in configuration files (e.g. "GreenWorm").
func ByName(name string) (Kind, error) {
	if k, ok := byName[name]; ok {
		return k, nil
	}
	return Unknown, fmt.Errorf("%w: name %q", ErrUnknownArchetype, name)
}

func (k Kind) String() string {
	if in, ok := infos[k]; ok {
		return in.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Tag is the object type used for this kind in level maps.
func (k Kind) Tag() string { return infos[k].tag }

func (k Kind) Faction() Faction { return infos[k].faction }

func (k Kind) Valid() bool {
	_, ok := infos[k]
	return ok
}

func (k Kind) BaseHealth() float64 { return infos[k].baseHealth }

// ScoreValue is what killing this kind is worth. It is the base health, not
// the damage actually dealt.
func (k Kind) ScoreValue() int { return int(infos[k].baseHealth) }

func Enemies() []Kind { return kindsIn(GreenWorm, FlufflePop) }

func Allies() []Kind { return kindsIn(AllyHooboo, AllyFlufflePop) }

func kindsIn(first, last Kind) []Kind {
	out := make([]Kind, 0, last-first+1)
	for k := first; k <= last; k++ {
		out = append(out, k)
	}
	return out
}
