package models

import "sort"

// LocationTreeNode wraps a Location plus its ordered children. It is a
// read model: built fresh for every tree request and never persisted.
type LocationTreeNode struct {
	Location *Location
	Children []*LocationTreeNode
}

// BuildLocationTree materializes the flat location set into a forest.
//
// Every location gets a node; children are attached to their parent's child
// list. A location whose parent id is not present in the input (a data
// anomaly) is dropped rather than surfaced as an error, so the forest is
// always renderable. Child lists and the root list are sorted by name, ties
// broken by id, making the output a pure function of the input set
// regardless of input ordering.
func BuildLocationTree(locations []*Location) []*LocationTreeNode {
	nodes := make(map[string]*LocationTreeNode, len(locations))
	for _, loc := range locations {
		nodes[loc.ID] = &LocationTreeNode{Location: loc}
	}

	var roots []*LocationTreeNode
	for _, loc := range locations {
		node := nodes[loc.ID]
		parentID, ok := loc.Parent.ParentID()
		if !ok {
			roots = append(roots, node)
			continue
		}
		if parent, found := nodes[parentID]; found {
			parent.Children = append(parent.Children, node)
		}
		// Orphaned parent reference: node is omitted from the forest.
	}

	sortNodes(roots)
	for _, root := range roots {
		sortChildren(root)
	}
	return roots
}

// sortChildren orders every child list in the subtree. The hierarchy is
// guaranteed acyclic before it reaches the tree builder, so recursion is
// bounded by hierarchy depth.
func sortChildren(node *LocationTreeNode) {
	sortNodes(node.Children)
	for _, child := range node.Children {
		sortChildren(child)
	}
}

func sortNodes(nodes []*LocationTreeNode) {
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i].Location, nodes[j].Location
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
