package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

const (
	cardW   = 215
	cardH   = 300
	gap     = 8
	margin  = 48
	perRow  = 5
	leaderW = 300
	leaderH = 420
	qrSize  = 300
)

// MaxHandCards is the most cards ComposeHandImage draws; later ones are
// left off the image.
const MaxHandCards = 60

var (
	background  = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	placeholder = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

// ComposeHandImage lays a dealt hand out in rows of five. The leader, when
// given, sits on the left and the QR on the right. A nil entry in hand
// (no artwork) is drawn as a grey card.
func ComposeHandImage(leader image.Image, hand []image.Image, qr image.Image) image.Image {
	if len(hand) > MaxHandCards {
		hand = hand[:MaxHandCards]
	}
	rows := (len(hand) + perRow - 1) / perRow
	if rows == 0 {
		rows = 1
	}
	cols := min(len(hand), perRow)

	x0 := margin
	if leader != nil {
		x0 += leaderW + margin
	}
	w := x0 + cols*(cardW+gap) + margin
	if qr != nil {
		w += qrSize + margin
	}
	h := max(2*margin+rows*(cardH+gap), 2*margin+leaderH)
	canvas := imaging.New(w, h, background)

	if leader != nil {
		l := imaging.Resize(leader, leaderW, leaderH, imaging.Lanczos)
		canvas = imaging.Paste(canvas, l, image.Pt(margin, margin))
	}
	for i, img := range hand {
		var c image.Image
		if img == nil {
			c = imaging.New(cardW, cardH, placeholder)
		} else {
			c = imaging.Resize(img, cardW, cardH, imaging.Lanczos)
		}
		x := x0 + (i%perRow)*(cardW+gap)
		y := margin + (i/perRow)*(cardH+gap)
		canvas = imaging.Paste(canvas, c, image.Pt(x, y))
	}
	if qr != nil {
		q := imaging.Resize(qr, qrSize, qrSize, imaging.Lanczos)
		canvas = imaging.Paste(canvas, q, image.Pt(w-margin-qrSize, margin))
	}
	return canvas
}
