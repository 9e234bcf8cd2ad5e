package catalog

// BuildCategoryTree nests category paths, keeping the order in which each
// name first appears. Paths without a primary category are skipped, and a
// tertiary without a secondary is dropped.
func BuildCategoryTree(paths []CategoryPath) []CategoryNode {
	tree := []CategoryNode{}
	primaries := map[string]int{}
	secondaries := map[[2]string]int{}
	tertiaries := map[[3]string]bool{}

	for _, path := range paths {
		primary := deref(path.Primary)
		if primary == "" {
			continue
		}
		pi, ok := primaries[primary]
		if !ok {
			pi = len(tree)
			primaries[primary] = pi
			tree = append(tree, CategoryNode{Name: primary, Secondaries: []SecondaryNode{}})
		}

		secondary := deref(path.Secondary)
		if secondary == "" {
			continue
		}
		skey := [2]string{primary, secondary}
		si, ok := secondaries[skey]
		if !ok {
			si = len(tree[pi].Secondaries)
			secondaries[skey] = si
			tree[pi].Secondaries = append(tree[pi].Secondaries, SecondaryNode{Name: secondary, Tertiaries: []TertiaryNode{}})
		}

		tertiary := deref(path.Tertiary)
		if tertiary == "" {
			continue
		}
		tkey := [3]string{primary, secondary, tertiary}
		if tertiaries[tkey] {
			continue
		}
		tertiaries[tkey] = true
		tree[pi].Secondaries[si].Tertiaries = append(tree[pi].Secondaries[si].Tertiaries, TertiaryNode{Name: tertiary})
	}
	return tree
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
