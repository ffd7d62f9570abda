// Package image draws chess boards as SVG diagrams.
package image

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/mway1/chess"
)

const (
	sqWidth  = 45
	sqHeight = 45
	margin   = 20
)

// SVG writes the board SVG representation into the writer.
// An error is returned if there is an error writing data.
// SVG also takes options which can customize the image output.
func SVG(w io.Writer, b *chess.Board, opts ...func(*encoder)) error {
	e := newEncoder(w, opts)
	return e.EncodeSVG(b)
}

// SquareColors is designed to be used as an optional argument
// to the SVG function.  It changes the default light and
// dark square colors to the colors given.
func SquareColors(light, dark color.Color) func(*encoder) {
	return func(e *encoder) {
		e.light = light
		e.dark = dark
	}
}

// MarkSquares is designed to be used as an optional argument
// to the SVG function.  It marks the given squares with the
// color.  A possible usage includes marking squares of the
// previous move.
func MarkSquares(c color.Color, sqs ...chess.Square) func(*encoder) {
	return func(e *encoder) {
		for _, sq := range sqs {
			e.marks[sq] = c
		}
	}
}

// Perspective is designed to be used as an optional argument
// to the SVG function.  It draws the board from the perspective
// of the given color.  White is the default.
func Perspective(c chess.Color) func(*encoder) {
	return func(e *encoder) {
		e.perspective = c
	}
}

// A encoder encodes chess boards into images.
type encoder struct {
	w           *errWriter
	light       color.Color
	dark        color.Color
	perspective chess.Color
	marks       map[chess.Square]color.Color
}

func newEncoder(w io.Writer, options []func(*encoder)) *encoder {
	e := &encoder{
		w:           &errWriter{w: w},
		light:       color.RGBA{R: 235, G: 209, B: 166, A: 255},
		dark:        color.RGBA{R: 165, G: 117, B: 81, A: 255},
		perspective: chess.White,
		marks:       map[chess.Square]color.Color{},
	}
	for _, op := range options {
		op(e)
	}
	return e
}

// EncodeSVG writes the board SVG representation into
// the encoder's writer.
func (e *encoder) EncodeSVG(b *chess.Board) error {
	boardSize := 8 * sqWidth
	canvas := svg.New(e.w)
	canvas.Start(boardSize+2*margin, boardSize+2*margin)
	canvas.Rect(0, 0, boardSize+2*margin, boardSize+2*margin, "fill:#ffffff")

	for i := 0; i < 64; i++ {
		sq := chess.Square(i)
		x, y := e.xy(sq)

		fill := e.dark
		if (int(sq.File())+int(sq.Rank()))%2 == 1 {
			fill = e.light
		}
		canvas.Rect(x, y, sqWidth, sqHeight, "fill:"+colorToHex(fill))
		if c, ok := e.marks[sq]; ok {
			canvas.Rect(x, y, sqWidth, sqHeight, "fill:"+colorToHex(c)+";fill-opacity:0.5")
		}

		if p := b.Piece(sq); p != chess.NoPiece {
			canvas.Text(x+sqWidth/2, y+sqHeight*3/4, p.Unicode(),
				"font-size:36px;text-anchor:middle;font-family:serif")
		}
	}

	labelStyle := "font-size:12px;text-anchor:middle;font-family:sans-serif;fill:#333333"
	for i := 0; i < 8; i++ {
		file := chess.File(i)
		rank := chess.Rank(i)
		fx, _ := e.xy(chess.NewSquare(file, chess.Rank1))
		_, ry := e.xy(chess.NewSquare(chess.FileA, rank))
		canvas.Text(fx+sqWidth/2, boardSize+margin+14, file.String(), labelStyle)
		canvas.Text(margin/2, ry+sqHeight/2+4, rank.String(), labelStyle)
	}

	canvas.End()
	return e.w.err
}

// xy returns the top left corner of the square in image coordinates.
func (e *encoder) xy(sq chess.Square) (int, int) {
	col := int(sq.File())
	row := 7 - int(sq.Rank())
	if e.perspective == chess.Black {
		col = 7 - col
		row = 7 - row
	}
	return margin + col*sqWidth, margin + row*sqHeight
}

func colorToHex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return len(p), nil
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
