package render

// ValueSetter receives edits from a bound control.
type ValueSetter interface {
	Set(name string, value any) error
}

// Bind returns the change handler of the field, writing into target. Disabled
// fields (read-only forms) have no handler and Bind returns nil.
func (f RenderedField) Bind(target ValueSetter) func(value any) error {
	if f.Disabled || target == nil {
		return nil
	}
	name := f.Field.Name
	return func(value any) error {
		return target.Set(name, value)
	}
}
