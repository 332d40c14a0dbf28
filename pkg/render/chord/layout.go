package chord

import (
	"fmt"
	"math"
	"sort"

	"github.com/rubisco-sfa/rubiplot/pkg/network"
	"github.com/rubisco-sfa/rubiplot/pkg/render"
)

const (
	LabelRadius = 1.0
	ArcRadius   = 0.95
	ChordRadius = 0.91
	Extent      = 1.25

	// Widths are in points.
	ArcWidth      = 8.0
	MinChordWidth = 0.1
	MaxChordExtra = 8.0

	NameSize        = 16.0
	AffiliationSize = 18.0

	InternalColor = "#808080"
	ExternalColor = "#000000"
)

// Member is one roster member placed on the circle.
type Member struct {
	Index       int // roster position
	Name        string
	Affiliation string
	Papers      int
	Angle       float64 // degrees, counterclockwise from +x
	Group       int
}

// X returns the member's position on a circle of radius r.
func (m Member) X(r float64) float64 { return r * math.Cos(rad(m.Angle)) }

// Y returns the member's position on a circle of radius r.
func (m Member) Y(r float64) float64 { return r * math.Sin(rad(m.Angle)) }

// Label is a piece of rotated text anchored at (X, Y).
type Label struct {
	Text     string
	X, Y     float64
	Rotation float64 // degrees, counterclockwise
	AlignEnd bool    // anchor at the end of the text instead of the start
	Size     float64
	Color    string
	Bold     bool
}

// Group is the arc and label for one affiliation.
type Group struct {
	Affiliation string
	Color       string
	Start, End  float64 // arc angles in degrees
	Label       Label
	Members     []int // positions in Layout.Members
}

// Chord joins two members.
type Chord struct {
	From, To int // positions in Layout.Members
	Weight   int
	Width    float64
	Internal bool
}

// Layout is a fully positioned chord diagram.
type Layout struct {
	Members []Member
	Labels  []Label
	Groups  []Group
	Chords  []Chord
}

// Compute positions every roster member of net and every nonzero pair.
func Compute(net *network.Network) Layout {
	members := sortedMembers(net)
	affs := groupNames(members)
	groupOf := make(map[string]int, len(affs))
	for i, a := range affs {
		groupOf[a] = i
	}

	n, g := float64(len(members)), float64(len(affs))
	pos := make(map[int]int, len(members))
	var l Layout
	for i := range members {
		m := &members[i]
		m.Group = groupOf[m.Affiliation]
		m.Angle = (float64(i) + 2*float64(m.Group)) / (n + 2*g) * 360
		pos[m.Index] = i
		l.Labels = append(l.Labels, memberLabel(*m))
	}
	l.Members = members

	dang := 360 / (n + g)
	for gi, a := range affs {
		grp := Group{Affiliation: a, Color: render.PaletteColor(gi)}
		for i, m := range members {
			if m.Group == gi {
				grp.Members = append(grp.Members, i)
			}
		}
		first := members[grp.Members[0]].Angle
		last := members[grp.Members[len(grp.Members)-1]].Angle
		grp.Start = first - 1.0*dang
		grp.End = last + 0.5*dang
		grp.Label = radialLabel(a, first-0.6*dang, AffiliationSize)
		grp.Label.Color = grp.Color
		grp.Label.Bold = true
		l.Groups = append(l.Groups, grp)
	}

	l.Chords = chords(net, members, pos)
	return l
}

func sortedMembers(net *network.Network) []Member {
	r := net.Roster
	members := make([]Member, r.Len())
	for i := range members {
		members[i] = Member{
			Index:       i,
			Name:        r.Names[i],
			Affiliation: r.Affiliations[i],
			Papers:      net.Papers[i],
		}
	}
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Affiliation != members[j].Affiliation {
			return members[i].Affiliation < members[j].Affiliation
		}
		return members[i].Papers < members[j].Papers
	})
	return members
}

// groupNames returns affiliations in order of first appearance, which is
// sorted order for sorted members.
func groupNames(members []Member) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range members {
		if !seen[m.Affiliation] {
			seen[m.Affiliation] = true
			out = append(out, m.Affiliation)
		}
	}
	return out
}

func memberLabel(m Member) Label {
	l := radialLabel("", m.Angle, NameSize)
	if l.AlignEnd {
		l.Text = fmt.Sprintf("%s %2d", m.Name, m.Papers)
	} else {
		l.Text = fmt.Sprintf("%2d %s", m.Papers, m.Name)
	}
	l.Color = ExternalColor
	return l
}

// radialLabel places text at LabelRadius reading outward. On the left
// half it is turned half a revolution and anchored at its end.
func radialLabel(text string, angle, size float64) Label {
	x, y := LabelRadius*math.Cos(rad(angle)), LabelRadius*math.Sin(rad(angle))
	l := Label{Text: text, X: x, Y: y, Rotation: angle, Size: size}
	if x < 0 {
		l.Rotation = angle + 180
		l.AlignEnd = true
	}
	return l
}

func chords(net *network.Network, members []Member, pos map[int]int) []Chord {
	top := net.MaxWeight()
	if top == 0 {
		return nil
	}
	var out []Chord
	for _, e := range net.Edges() {
		from, to := pos[e.I], pos[e.J]
		out = append(out, Chord{
			From:     from,
			To:       to,
			Weight:   e.Weight,
			Width:    MinChordWidth + float64(e.Weight)/float64(top)*MaxChordExtra,
			Internal: members[from].Affiliation == members[to].Affiliation,
		})
	}
	// Internal chords first so they sit underneath.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Internal && !out[j].Internal })
	return out
}

func rad(deg float64) float64 { return deg / 180 * math.Pi }
