// Package preview draws the pose panel under the 3D view: the newest keypoints above the
// confidence threshold, each as a marker with its part name.
package preview

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"tilt-maze/internal/pose"
)

const (
	markerRadius = 4
	labelSize    = 10
	titleSize    = 16
)

var (
	panelColor  = rl.NewColor(24, 24, 24, 255)
	borderColor = rl.NewColor(80, 80, 80, 255)
	markerColor = rl.NewColor(0, 255, 255, 255)
	hipColor    = rl.NewColor(255, 200, 0, 255)
)

// Panel shows the newest pose held by a slot.
type Panel struct {
	slot *pose.Slot
}

func New(slot *pose.Slot) *Panel {
	return &Panel{slot: slot}
}

// Draw draws the panel with its top-left corner at (x, y).
func (p *Panel) Draw(x, y int32) {
	w, h := int32(pose.PreviewWidth), int32(pose.PreviewHeight)
	rl.DrawRectangle(x, y, w, h, panelColor)
	rl.DrawRectangleLines(x, y, w, h, borderColor)

	ps, ok := p.slot.Peek()
	if !ok {
		rl.DrawText("waiting for pose...", x+8, y+8, titleSize, rl.Gray)
		return
	}
	for _, k := range ps.Confident(pose.MinDrawScore) {
		kx := x + int32(k.Position.X)
		ky := y + int32(k.Position.Y)
		if kx < x || kx > x+w || ky < y || ky > y+h {
			continue
		}
		c := markerColor
		if k.Part == pose.PartLeftHip || k.Part == pose.PartRightHip {
			c = hipColor
		}
		rl.DrawCircle(kx, ky, markerRadius, c)
		rl.DrawText(k.Part, kx+markerRadius+2, ky-labelSize/2, labelSize, rl.White)
	}
}
