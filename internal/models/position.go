package models

import (
	"fmt"
	"strings"
)

type HAnchor int

const (
	AnchorLeft HAnchor = iota
	AnchorCenter
	AnchorRight
)

type VAnchor int

const (
	AnchorTop VAnchor = iota
	AnchorMiddle
	AnchorBottom
)

// Align is the horizontal alignment of the lines of a multi-line block.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Position is one of the nine placement codes, e.g. "left-top".
type Position string

const (
	LeftTop      Position = "left-top"
	CenterTop    Position = "center-top"
	RightTop     Position = "right-top"
	LeftMiddle   Position = "left-middle"
	CenterMiddle Position = "center-middle"
	RightMiddle  Position = "right-middle"
	LeftBottom   Position = "left-bottom"
	CenterBottom Position = "center-bottom"
	RightBottom  Position = "right-bottom"
)

type placement struct {
	h     HAnchor
	v     VAnchor
	align Align
}

var placements = map[Position]placement{
	LeftTop:      {AnchorLeft, AnchorTop, AlignLeft},
	CenterTop:    {AnchorCenter, AnchorTop, AlignCenter},
	RightTop:     {AnchorRight, AnchorTop, AlignRight},
	LeftMiddle:   {AnchorLeft, AnchorMiddle, AlignLeft},
	CenterMiddle: {AnchorCenter, AnchorMiddle, AlignCenter},
	RightMiddle:  {AnchorRight, AnchorMiddle, AlignRight},
	LeftBottom:   {AnchorLeft, AnchorBottom, AlignLeft},
	CenterBottom: {AnchorCenter, AnchorBottom, AlignCenter},
	RightBottom:  {AnchorRight, AnchorBottom, AlignRight},
}

var shortCodes = map[string]Position{
	"lt": LeftTop, "mt": CenterTop, "rt": RightTop,
	"lm": LeftMiddle, "mm": CenterMiddle, "rm": RightMiddle,
	"lb": LeftBottom, "mb": CenterBottom, "rb": RightBottom,
}

// Positions lists all valid codes in row-major order.
func Positions() []Position {
	return []Position{
		LeftTop, CenterTop, RightTop,
		LeftMiddle, CenterMiddle, RightMiddle,
		LeftBottom, CenterBottom, RightBottom,
	}
}

// ParsePosition accepts the canonical form ("right-top") or the two-letter
// short form ("rt"). An empty string means left-top.
func ParsePosition(s string) (Position, error) {
	code := strings.ToLower(strings.TrimSpace(s))
	if code == "" {
		return LeftTop, nil
	}
	if p, ok := shortCodes[code]; ok {
		return p, nil
	}
	p := Position(code)
	if _, ok := placements[p]; !ok {
		return "", NewConfigError("position", fmt.Sprintf("unknown position code %q", s))
	}
	return p, nil
}

func (p Position) lookup() (placement, error) {
	pl, ok := placements[p]
	if !ok {
		return placement{}, NewConfigError("position", fmt.Sprintf("unknown position code %q", string(p)))
	}
	return pl, nil
}

// Anchors returns the horizontal and vertical anchor and the line alignment.
func (p Position) Anchors() (HAnchor, VAnchor, Align, error) {
	pl, err := p.lookup()
	if err != nil {
		return 0, 0, 0, err
	}
	return pl.h, pl.v, pl.align, nil
}

func (p Position) Valid() bool {
	_, ok := placements[p]
	return ok
}

func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
