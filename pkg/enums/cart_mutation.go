package enums

import "fmt"

// CartMutation labels the operations applied to a session cart.
type CartMutation string

const (
	CartMutationAdd    CartMutation = "add"
	CartMutationUpdate CartMutation = "update"
	CartMutationRemove CartMutation = "remove"
	CartMutationClear  CartMutation = "clear"
)

var validCartMutations = []CartMutation{
	CartMutationAdd,
	CartMutationUpdate,
	CartMutationRemove,
	CartMutationClear,
}

// String implements fmt.Stringer.
func (m CartMutation) String() string {
	return string(m)
}

// IsValid reports whether the value is a known CartMutation.
func (m CartMutation) IsValid() bool {
	for _, candidate := range validCartMutations {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseCartMutation converts raw input into a CartMutation.
func ParseCartMutation(value string) (CartMutation, error) {
	for _, candidate := range validCartMutations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart mutation %q", value)
}
