package enums

// CartOperation names a cart store transition.
type CartOperation string

const (
	CartOperationAdd           CartOperation = "add"
	CartOperationIncrement     CartOperation = "increment"
	CartOperationRemove        CartOperation = "remove"
	CartOperationRemoveVariant CartOperation = "remove_variant"
	CartOperationUpdate        CartOperation = "update_quantity"
	CartOperationClear         CartOperation = "clear"
)

// String implements fmt.Stringer.
func (c CartOperation) String() string {
	return string(c)
}
