package tetris

// Catalogue is the set of shapes a supply draws from.
type Catalogue []*Shape

// Frames are listed clockwise; each frame keeps the piece inside its 4x4
// template so an in-place rotation never leaves the spawn box.
var (
	shapeI = &Shape{ID: ShapeI, Frames: []Frame{
		parseFrame("....", "####", "....", "...."),
		parseFrame("..#.", "..#.", "..#.", "..#."),
		parseFrame("....", "....", "####", "...."),
		parseFrame(".#..", ".#..", ".#..", ".#.."),
	}}
	shapeO = &Shape{ID: ShapeO, Frames: []Frame{
		parseFrame(".##.", ".##.", "....", "...."),
	}}
	shapeT = &Shape{ID: ShapeT, Frames: []Frame{
		parseFrame(".#..", "###.", "....", "...."),
		parseFrame(".#..", ".##.", ".#..", "...."),
		parseFrame("....", "###.", ".#..", "...."),
		parseFrame(".#..", "##..", ".#..", "...."),
	}}
	shapeS = &Shape{ID: ShapeS, Frames: []Frame{
		parseFrame(".##.", "##..", "....", "...."),
		parseFrame(".#..", ".##.", "..#.", "...."),
		parseFrame("....", ".##.", "##..", "...."),
		parseFrame("#...", "##..", ".#..", "...."),
	}}
	shapeZ = &Shape{ID: ShapeZ, Frames: []Frame{
		parseFrame("##..", ".##.", "....", "...."),
		parseFrame("..#.", ".##.", ".#..", "...."),
		parseFrame("....", "##..", ".##.", "...."),
		parseFrame(".#..", "##..", "#...", "...."),
	}}
	shapeJ = &Shape{ID: ShapeJ, Frames: []Frame{
		parseFrame("#...", "###.", "....", "...."),
		parseFrame(".##.", ".#..", ".#..", "...."),
		parseFrame("....", "###.", "..#.", "...."),
		parseFrame(".#..", ".#..", "##..", "...."),
	}}
	shapeL = &Shape{ID: ShapeL, Frames: []Frame{
		parseFrame("..#.", "###.", "....", "...."),
		parseFrame(".#..", ".#..", ".##.", "...."),
		parseFrame("....", "###.", "#...", "...."),
		parseFrame("##..", ".#..", ".#..", "...."),
	}}
)

// StandardCatalogue returns the seven tetrominoes.
func StandardCatalogue() Catalogue {
	return Catalogue{shapeI, shapeO, shapeT, shapeS, shapeZ, shapeJ, shapeL}
}
