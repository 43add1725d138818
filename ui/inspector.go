package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadlife/game"
	"github.com/pthm-cable/quadlife/renderer"
)

// InspectorData holds everything the inspector panel shows about one entity.
type InspectorData struct {
	Life       game.LifeInfo
	Color      string
	Bucket     int
	Level      int
	BucketLoad int
	Candidates int
}

// Inspector renders the entity inspection panel.
type Inspector struct {
	renderer *Renderer
	colors   renderer.Palette
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	ins := &Inspector{
		renderer: NewRenderer(),
		colors:   make(renderer.Palette),
		x:        x,
		y:        y,
		width:    width,
	}
	ins.sections = ins.layout()
	return ins
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

func (ins *Inspector) layout() []SectionDescriptor {
	data := func(v any) InspectorData { return v.(InspectorData) }
	return []SectionDescriptor{
		{
			ID:    "entity",
			Title: "Entity",
			Fields: []FieldDescriptor{
				{ID: "species", Label: "Species", Widget: WidgetText,
					TextGetter: func(v any) string { return data(v).Life.Species.String() }},
				{ID: "color", Label: "Color", Widget: WidgetColorSwatch,
					ColorGetter: func(v any) rl.Color { return ins.colors.Color(data(v).Color) }},
				{ID: "position", Label: "Position", Widget: WidgetText,
					TextGetter: func(v any) string {
						p := data(v).Life.Position
						return fmt.Sprintf("(%d, %d)", p.X, p.Y)
					}},
				{ID: "heading", Label: "Heading", Widget: WidgetText,
					TextGetter: func(v any) string { return data(v).Life.Heading.String() }},
			},
		},
		{
			ID:    "broadphase",
			Title: "Broad phase",
			Fields: []FieldDescriptor{
				{ID: "node", Label: "Node", Widget: WidgetText, Format: "%.0f",
					Getter: func(v any) float32 { return float32(data(v).Life.Node) }},
				{ID: "bucket", Label: "Bucket", Widget: WidgetText,
					TextGetter: func(v any) string {
						d := data(v)
						return fmt.Sprintf("%d (level %d)", d.Bucket, d.Level)
					}},
				{ID: "load", Label: "Bucket load", Widget: WidgetText, Format: "%.0f",
					Getter: func(v any) float32 { return float32(data(v).BucketLoad) }},
				{ID: "candidates", Label: "Candidates", Widget: WidgetText, Format: "%.0f",
					Getter: func(v any) float32 { return float32(data(v).Candidates) }},
			},
		},
	}
}

// Draw renders the inspector panel for the given data.
func (ins *Inspector) Draw(data InspectorData) {
	r := ins.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*10 + pad*2 + 8
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + pad
	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+pad, y, sd, data, ins.width-pad*2)
	}
}
