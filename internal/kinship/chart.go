package kinship

// Box is an absolutely positioned rectangle in chart pixels.
type Box struct {
	Top    int
	Left   int
	Width  int
	Height int
}

// Placement pairs an ancestor node with its box.
type Placement struct {
	Node *AncestorNode
	Box  Box
}

// Chart is a positioned ancestor chain. Connectors are thin boxes drawn
// between a child and its parents.
type Chart struct {
	Width      int
	Height     int
	Placements []Placement
	Connectors []Box
}

// LayoutFunc positions an ancestor chain. generations is the configured tier
// count, which may exceed the depth actually present.
type LayoutFunc func(root *AncestorNode, generations int) Chart

// Default geometry of TreeLayout.
const (
	BoxWidth   = 280
	BoxHeight  = 60
	ColumnGap  = 30
	SlotHeight = 75
	Margin     = 6
)

// TreeLayout places generation g in column g from the left and centres each
// node vertically within its share of the chart height.
func TreeLayout(root *AncestorNode, generations int) Chart {
	if root == nil {
		return Chart{}
	}
	if generations < 1 {
		generations = 1
	}
	depth := min(root.Depth(), generations)
	slots := 1 << (depth - 1)
	chart := Chart{
		Width:  Margin*2 + depth*BoxWidth + (depth-1)*ColumnGap,
		Height: Margin*2 + slots*SlotHeight,
	}
	inner := slots * SlotHeight

	boxes := make(map[*AncestorNode]Box)
	root.Walk(func(n *AncestorNode) {
		if n.Generation >= depth {
			return
		}
		band := inner / (1 << n.Generation)
		box := Box{
			Top:    Margin + n.Column*band + (band-BoxHeight)/2,
			Left:   Margin + n.Generation*(BoxWidth+ColumnGap),
			Width:  BoxWidth,
			Height: BoxHeight,
		}
		boxes[n] = box
		chart.Placements = append(chart.Placements, Placement{Node: n, Box: box})
	})

	root.Walk(func(n *AncestorNode) {
		child, ok := boxes[n]
		if !ok {
			return
		}
		for _, parent := range []*AncestorNode{n.Father, n.Mother} {
			if pb, ok := boxes[parent]; ok {
				chart.Connectors = append(chart.Connectors, connector(child, pb)...)
			}
		}
	})
	return chart
}

// connector draws an elbow from the right edge of child to the left edge of
// parent.
func connector(child, parent Box) []Box {
	childMid := child.Top + child.Height/2
	parentMid := parent.Top + parent.Height/2
	elbow := child.Left + child.Width + ColumnGap/2
	top, bottom := min(childMid, parentMid), max(childMid, parentMid)
	return []Box{
		{Top: childMid, Left: child.Left + child.Width, Width: ColumnGap / 2, Height: 1},
		{Top: top, Left: elbow, Width: 1, Height: bottom - top},
		{Top: parentMid, Left: elbow, Width: parent.Left - elbow, Height: 1},
	}
}
