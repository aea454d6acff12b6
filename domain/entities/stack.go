package entities

// Stack represents one upload event: a named collection of media uploaded
// together. A Stack is created exactly once; the first write wins and
// duplicates are silent no-ops.
type Stack struct {
	StackID         string `json:"stackId"`
	Caption         string `json:"caption"`
	UploadTimestamp int64  `json:"uploadTimestamp"` // epoch milliseconds
	Location        string `json:"location,omitempty"`
}

// StackWithMedia pairs a stack with its media items in stack-query order.
type StackWithMedia struct {
	Stack Stack   `json:"stack"`
	Media []Media `json:"media"`
}
