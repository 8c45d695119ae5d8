// pattern: Functional Core

// Package shim decides what a shim name dispatches to and keeps the shim
// directory in step with what projects declare.
package shim

// Class groups shim names that share one resolution rule.
type Class int

const (
	ClassThirdParty Class = iota
	ClassNode
	ClassYarn
	ClassNpx
)

func (c Class) String() string {
	switch c {
	case ClassNode:
		return "node"
	case ClassYarn:
		return "yarn"
	case ClassNpx:
		return "npx"
	default:
		return "third-party"
	}
}

// Classify maps a shim name to its class. npm ships with node, so it follows
// node's rule.
func Classify(name string) Class {
	switch name {
	case "node", "npm":
		return ClassNode
	case "yarn":
		return ClassYarn
	case "npx":
		return ClassNpx
	default:
		return ClassThirdParty
	}
}
