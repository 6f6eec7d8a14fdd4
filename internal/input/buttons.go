package input

import "strings"

type Button uint16

const (
	BtnT1L Button = 1 << iota
	BtnT1R
	BtnT2F
	BtnT2B
	BtnT3Minus
	BtnT3Plus
	BtnDRMinus
	BtnDRPlus
	BtnEnter
	BtnBack
	BtnEnd
	BtnCh3
	BtnRotL
	BtnRotR

	BtnRotAll Button = BtnRotL | BtnRotR
	BtnNone   Button = 0
)

const (
	ButtonCount = 14
	// PhysicalCount excludes the two rotate directions.
	PhysicalCount = 12

	repeatMask = BtnT1L | BtnT1R | BtnT2F | BtnT2B | BtnT3Minus | BtnT3Plus | BtnDRMinus | BtnDRPlus
)

var buttonIDs = [ButtonCount]string{
	"T1L", "T1R",
	"T2F", "T2B",
	"T3-", "T3+",
	"DR-", "DR+",
	"ENT",
	"BCK",
	"END",
	"CH3",
	"ROL", "ROR",
}

// ID is the three letter id of the lowest button in the set.
func (b Button) ID() string {
	for i := 0; i < ButtonCount; i++ {
		if b&(1<<i) != 0 {
			return buttonIDs[i]
		}
	}
	return "---"
}

func (b Button) String() string {
	ids := make([]string, 0, ButtonCount)
	for i := 0; i < ButtonCount; i++ {
		if b&(1<<i) != 0 {
			ids = append(ids, buttonIDs[i])
		}
	}
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, "|")
}

// BuildButtonMasks creates one single bit mask per button. 1,2,4,8,16...
func BuildButtonMasks() []Button {
	buttonMasks := make([]Button, ButtonCount)
	for i := range buttonMasks {
		buttonMasks[i] = 1 << i
	}
	return buttonMasks
}
