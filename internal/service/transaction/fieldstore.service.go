package transaction

// FieldSpec describes one input of a payment method's local form:
// whether it must be filled, how raw input is masked into its canonical
// shape, and an optional content validator returning an error message.
type FieldSpec struct {
	Name     string
	Label    string
	Required bool
	Mask     func(string) string
	Validate func(string) string
}

type fieldState struct {
	Value     string
	IsTouched bool
	Errors    []string
}

// FieldStore is the generic per-method form store. One parameterized
// implementation replaces the near-identical per-method stores; each
// payment method only contributes its schema.
type FieldStore struct {
	schema []FieldSpec
	fields map[string]*fieldState
}

func NewFieldStore(schema []FieldSpec) *FieldStore {
	fields := make(map[string]*fieldState, len(schema))
	for _, spec := range schema {
		fields[spec.Name] = &fieldState{}
	}
	return &FieldStore{schema: schema, fields: fields}
}

func (f *FieldStore) spec(name string) (FieldSpec, bool) {
	for _, spec := range f.schema {
		if spec.Name == name {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// SetField applies the field's mask and stores the value. Unknown fields
// are ignored so a stale client cannot grow the schema.
func (f *FieldStore) SetField(name, value string) {
	spec, ok := f.spec(name)
	if !ok {
		return
	}
	if spec.Mask != nil {
		value = spec.Mask(value)
	}
	state := f.fields[name]
	state.Value = value
	state.IsTouched = true
	state.Errors = nil
}

func (f *FieldStore) SetFieldError(name, message string) {
	if state, ok := f.fields[name]; ok {
		state.Errors = append(state.Errors, message)
	}
}

func (f *FieldStore) TouchAll() {
	for _, state := range f.fields {
		state.IsTouched = true
	}
}

func (f *FieldStore) Value(name string) string {
	if state, ok := f.fields[name]; ok {
		return state.Value
	}
	return ""
}

// Validate runs required-ness and per-field validators over the schema,
// attaching errors to the offending fields. Returns true when the form
// is submittable.
func (f *FieldStore) Validate() bool {
	valid := true
	for _, spec := range f.schema {
		state := f.fields[spec.Name]
		state.Errors = nil
		if spec.Required && state.Value == "" {
			state.Errors = append(state.Errors, spec.Label+" is required.")
			valid = false
			continue
		}
		if spec.Validate != nil && state.Value != "" {
			if msg := spec.Validate(state.Value); msg != "" {
				state.Errors = append(state.Errors, msg)
				valid = false
			}
		}
	}
	return valid
}

func (f *FieldStore) FieldErrors() map[string][]string {
	out := map[string][]string{}
	for name, state := range f.fields {
		if len(state.Errors) > 0 {
			out[name] = state.Errors
		}
	}
	return out
}

// Values flattens the store for the processor payload.
func (f *FieldStore) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for name, state := range f.fields {
		out[name] = state.Value
	}
	return out
}
