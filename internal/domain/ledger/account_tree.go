package ledger

import (
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountNode is an account attached to its children in the hierarchy
type AccountNode struct {
	Account  *Account       `json:"account"`
	Children []*AccountNode `json:"children"`
}

// AccountTree converts the flat, parent-referencing chart of accounts into
// a forest and back into an ordered flat list. Nodes whose parent id is nil
// or not present in the input become roots.
type AccountTree struct {
	roots []*AccountNode
}

// FlattenVisitor is applied to every account during a pre-order traversal.
// parent is nil for root accounts. The returned account replaces the node's
// account in the flattened output.
type FlattenVisitor func(account *Account, parent *Account) *Account

// NewAccountTree builds the forest in a single pass over the input plus an
// id lookup. A parent pointer that forms a cycle leaves part of the input
// unreachable from any root; that is rejected instead of recursing forever.
func NewAccountTree(accounts []*Account) (*AccountTree, error) {
	nodes := make(map[uuid.UUID]*AccountNode, len(accounts))
	for _, account := range accounts {
		nodes[account.ID] = &AccountNode{Account: account}
	}

	var roots []*AccountNode
	for _, account := range accounts {
		node := nodes[account.ID]
		if account.ParentAccountID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*account.ParentAccountID]
		if !ok {
			// Orphaned parent reference, treat as root.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	tree := &AccountTree{roots: roots}
	if tree.reachable() != len(accounts) {
		return nil, shared.ErrAccountCyclicParent
	}
	return tree, nil
}

// Roots returns the top-level nodes of the forest
func (t *AccountTree) Roots() []*AccountNode {
	return t.roots
}

// Flatten performs a pre-order traversal producing a flat list in which
// every account precedes all of its descendants. The visitor sees each
// account paired with its parent, e.g. to prefix a child's display name.
func (t *AccountTree) Flatten(visitor FlattenVisitor) []*Account {
	if visitor == nil {
		visitor = func(account *Account, _ *Account) *Account { return account }
	}
	flat := make([]*Account, 0, t.reachable())
	for _, root := range t.roots {
		flat = flattenNode(flat, root, nil, visitor)
	}
	return flat
}

func flattenNode(flat []*Account, node *AccountNode, parent *Account, visitor FlattenVisitor) []*Account {
	visited := visitor(node.Account, parent)
	flat = append(flat, visited)
	for _, child := range node.Children {
		flat = flattenNode(flat, child, visited, visitor)
	}
	return flat
}

// ParentNamePrefixVisitor returns a visitor that renames each non-root
// account to "<parent name> ― <account name>" without mutating the input
// accounts. Used by flattened display listings.
func ParentNamePrefixVisitor() FlattenVisitor {
	return func(account *Account, parent *Account) *Account {
		if parent == nil {
			return account
		}
		renamed := *account
		renamed.Name = parent.Name + " ― " + account.Name
		return &renamed
	}
}

// reachable counts nodes reachable from the roots. A count below the input
// size means a cycle detached part of the forest.
func (t *AccountTree) reachable() int {
	count := 0
	stack := make([]*AccountNode, len(t.roots))
	copy(stack, t.roots)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, node.Children...)
	}
	return count
}
