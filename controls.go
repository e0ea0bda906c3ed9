package pixfx

import (
	"cmp"
	"fmt"
	"slices"
)

// Control represents an editable parameter of a filter.
// When the value is modified via ChangeValue the filter picks it up on the next Process call.
type Control interface {
	// Display/human readable name and description.
	Describe() (name, description string)
	// ActualValue returns the current value of the control.
	ActualValue() any
	// ChangeValue attempts to update the ActualValue to newValue.
	ChangeValue(newValue any) error
}

// ControlOrdered is a bounded numeric (or otherwise ordered) parameter.
type ControlOrdered[T cmp.Ordered] struct {
	Name        string
	Description string
	Value       T
	Min         T
	Max         T
	Step        T
	OnChange    func(T) error
}

func (co *ControlOrdered[T]) Describe() (name, description string) {
	return co.Name, co.Description
}
func (co *ControlOrdered[T]) ActualValue() any { return co.Value }
func (co *ControlOrdered[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, co.Value)
	}
	if v < co.Min || v > co.Max {
		return fmt.Errorf("new value %v exceeds limits %v..%v", v, co.Min, co.Max)
	}
	return commit(&co.Value, v, co.OnChange)
}

type integer interface {
	~int | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// enum best generated with stringer commands.
type enum interface {
	integer
	fmt.Stringer
}

// ControlEnum maps to dropdown kind of list.
type ControlEnum[T enum] struct {
	Name        string
	Description string
	Value       T
	ValidValues []T
	OnChange    func(T) error
}

func (ce *ControlEnum[T]) Describe() (name, description string) {
	return ce.Name, ce.Description
}
func (ce *ControlEnum[T]) ActualValue() any {
	return ce.Value
}
func (ce *ControlEnum[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, ce.Value)
	}
	if !slices.Contains(ce.ValidValues, v) {
		return fmt.Errorf("value %v of %T not valid", v, v)
	}
	return commit(&ce.Value, v, ce.OnChange)
}

// Options returns the display names of the valid values in order.
func (ce *ControlEnum[T]) Options() []string {
	names := make([]string, len(ce.ValidValues))
	for i, v := range ce.ValidValues {
		names[i] = v.String()
	}
	return names
}

// commit stores v in dst once onChange (if any) accepts it.
func commit[T any](dst *T, v T, onChange func(T) error) error {
	if onChange != nil {
		if err := onChange(v); err != nil {
			return err
		}
	}
	*dst = v
	return nil
}
