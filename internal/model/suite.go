package model

// Path represents a file system path.
type Path string

// Suite is the top-level groups loaded from one suite file.
type Suite struct {
	Path   Path
	Groups []*Group
}

// Counts sums the shape of every group in the suite.
func (s Suite) Counts() Counts {
	var total Counts

	for _, g := range s.Groups {
		c := Count(g)
		total.Groups += c.Groups
		total.Cases += c.Cases
		total.Hooks += c.Hooks
	}

	return total
}

// Root assembles suites into the anonymous root group of a run, keeping
// suite order and group order within each suite.
func Root(suites []Suite) *Group {
	root := &Group{Kind: KindDescribe}

	for _, s := range suites {
		for _, g := range s.Groups {
			root.Children = append(root.Children, g)
		}
	}

	return root
}
