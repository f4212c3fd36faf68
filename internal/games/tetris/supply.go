package tetris

import (
	"fmt"
	"math/rand"
)

// BagMode selects how the shape bag is consumed.
type BagMode string

const (
	// BagFull deals every shape of a shuffled bag before reshuffling.
	BagFull BagMode = "full"
	// BagSingle reshuffles for every draw and keeps only the first shape.
	BagSingle BagMode = "single"
)

// ParseBagMode validates a configured bag mode. Empty selects BagFull.
func ParseBagMode(s string) (BagMode, error) {
	switch BagMode(s) {
	case "", BagFull:
		return BagFull, nil
	case BagSingle:
		return BagSingle, nil
	default:
		return "", fmt.Errorf("%w: unknown bag mode %q", ErrInvalidConfig, s)
	}
}

// Supply deals preview pieces. Shape order comes from a shuffled bag and
// colors cycle through the palette on every draw, independent of shape.
type Supply struct {
	rng       *rand.Rand
	catalogue Catalogue
	mode      BagMode
	palette   int

	bag         []*Shape
	colorCursor int
}

// NewSupply creates a supply drawing from catalogue with colors 1..palette.
func NewSupply(catalogue Catalogue, palette int, mode BagMode, rng *rand.Rand) *Supply {
	return &Supply{
		rng:         rng,
		catalogue:   catalogue,
		mode:        mode,
		palette:     palette,
		colorCursor: -1,
	}
}

// Next draws a new piece with a random initial rotation.
func (s *Supply) Next() *Piece {
	shape := s.nextShape()
	color := s.nextColor()
	rotation := s.rng.Intn(shape.FrameCount())
	return NewPiece(shape, rotation, color)
}

func (s *Supply) nextShape() *Shape {
	if s.mode == BagSingle {
		return s.shuffled()[0]
	}
	if len(s.bag) == 0 {
		s.bag = s.shuffled()
	}
	shape := s.bag[0]
	s.bag = s.bag[1:]
	return shape
}

func (s *Supply) shuffled() []*Shape {
	bag := make([]*Shape, len(s.catalogue))
	copy(bag, s.catalogue)
	s.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}

func (s *Supply) nextColor() int {
	s.colorCursor = (s.colorCursor + 1) % s.palette
	return s.colorCursor + 1
}
