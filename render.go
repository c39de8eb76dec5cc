package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"terminal-chess/board"
)

const (
	ansiReset     = "\x1b[0m"
	ansiLight     = "\x1b[48;5;180m"
	ansiDark      = "\x1b[48;5;95m"
	ansiHighlight = "\x1b[48;5;71m"
	ansiWhite     = "\x1b[1;97m"
	ansiBlack     = "\x1b[1;30m"
)

var glyphs = map[board.Kind]string{
	board.Pawn:   "♟",
	board.Rook:   "♜",
	board.Knight: "♞",
	board.Bishop: "♝",
	board.Queen:  "♛",
	board.King:   "♚",
}

// renderBoard draws b with rank 8 at the top. Squares in highlight are marked
// as destinations of the selected piece.
func renderBoard(w io.Writer, b *board.Board, highlight []board.Square, color bool) {
	var sb strings.Builder
	files := "   a  b  c  d  e  f  g  h\n"

	sb.WriteString(files)
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq, _ := board.SquareAt(file, rank)
			marked := slices.Contains(highlight, sq)
			if color {
				sb.WriteString(colorCell(b, sq, marked))
			} else {
				sb.WriteString(plainCell(b, sq, marked))
			}
		}
		fmt.Fprintf(&sb, " %d\n", rank+1)
	}
	sb.WriteString(files)

	fmt.Fprint(w, sb.String())
}

// plainCell uses piece letters, upper case for white. Destinations are
// bracketed.
func plainCell(b *board.Board, sq board.Square, marked bool) string {
	symbol := "."
	if p, ok := b.PieceAt(sq); ok {
		symbol = string(p.Symbol())
	}
	if marked {
		return "[" + symbol + "]"
	}
	return " " + symbol + " "
}

func colorCell(b *board.Board, sq board.Square, marked bool) string {
	bg := ansiDark
	if (sq.File()+sq.Rank())%2 == 1 {
		bg = ansiLight
	}
	if marked {
		bg = ansiHighlight
	}

	p, ok := b.PieceAt(sq)
	if !ok {
		return bg + "   " + ansiReset
	}

	fg := ansiWhite
	if p.Color == board.Black {
		fg = ansiBlack
	}
	return bg + fg + " " + glyphs[p.Kind] + " " + ansiReset
}
