package tracked

// Op identifies the kind of access or mutation applied to a container.
type Op string

const (
	OpGet     Op = "get"
	OpHas     Op = "has"
	OpIterate Op = "iterate"
	OpSet     Op = "set"
	OpAdd     Op = "add"
	OpDelete  Op = "delete"
	OpClear   Op = "clear"
)

// Mutation reports whether the op changes container state.
func (o Op) Mutation() bool {
	switch o {
	case OpSet, OpAdd, OpDelete, OpClear:
		return true
	}
	return false
}

// Change describes one committed mutation. Target is the underlying
// container, never a view; it is nil when the notification comes from a
// derived source such as Computed. Key is nil for OpClear. Old and New carry
// the replaced and written values where the operation has them.
type Change struct {
	Target Composite
	Op     Op
	Key    any
	Old    any
	New    any
}
