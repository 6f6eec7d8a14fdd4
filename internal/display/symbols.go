package display

import "strings"

type Region uint8

const (
	Region7Seg Region = iota
	RegionChar1
	RegionChar2
	RegionChar3
	RegionMenu
	regionCount
)

// CharRegion maps a 0-based character position to its region.
func CharRegion(pos int) Region {
	return RegionChar1 + Region(pos)
}

type Blink uint8

const (
	BlinkOff Blink = iota
	BlinkSpace
)

type Symbol uint16

const (
	SymModelNo Symbol = 1 << iota
	SymChannel
	SymPercent
	SymDot
	SymVolts
	SymLeft
	SymRight
	SymLowPwr
)

var symbolNames = []string{"MODEL", "CH", "%", ".", "V", "<", ">", "BAT"}

func (s Symbol) String() string {
	names := make([]string, 0, len(symbolNames))
	for i, name := range symbolNames {
		if s&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// MenuItem is one indicator of the menu row. The row is ordered from
// MenuModel (highest bit) down to MenuAbs (lowest bit).
type MenuItem uint8

const (
	MenuAbs MenuItem = 1 << iota
	MenuExpo
	MenuDualRate
	MenuTrim
	MenuEndpoint
	MenuReverse
	MenuName
	MenuModel

	MenuNone MenuItem = 0
	MenuAll  MenuItem = 0xff
)

var menuNames = []string{"ABS", "EXP", "D/R", "TRM", "EPO", "REV", "NAM", "MOD"}

func (m MenuItem) String() string {
	names := make([]string, 0, len(menuNames))
	for i := len(menuNames) - 1; i >= 0; i-- {
		if m&(1<<i) != 0 {
			names = append(names, menuNames[i])
		}
	}
	return strings.Join(names, "|")
}
