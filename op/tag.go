package op

// Tag returns an operation that behaves exactly like o and carries the given
// labels in addition to any o already had. o itself is left untouched.
func Tag[In, Out any](o *Operation[In, Out], labels ...string) *Operation[In, Out] {
	tagged := &Operation[In, Out]{meta: o.meta.Clone(), fn: o.fn}
	tagged.meta.Tags = append(tagged.meta.Tags, labels...)
	return tagged
}

// Annotate returns an operation that behaves exactly like o and carries the
// key/value annotation. An existing value for key is replaced.
func Annotate[In, Out any](o *Operation[In, Out], key string, value any) *Operation[In, Out] {
	annotated := &Operation[In, Out]{meta: o.meta.Clone(), fn: o.fn}
	if annotated.meta.Annotations == nil {
		annotated.meta.Annotations = make(map[string]any, 1)
	}
	annotated.meta.Annotations[key] = value
	return annotated
}

// Tags returns a copy of the operation's labels.
func (o *Operation[In, Out]) Tags() []string {
	if len(o.meta.Tags) == 0 {
		return nil
	}
	return append([]string(nil), o.meta.Tags...)
}

// HasTag reports whether the operation carries label.
func (o *Operation[In, Out]) HasTag(label string) bool {
	for _, t := range o.meta.Tags {
		if t == label {
			return true
		}
	}
	return false
}

// Annotation returns the annotation stored under key.
func (o *Operation[In, Out]) Annotation(key string) (any, bool) {
	v, ok := o.meta.Annotations[key]
	return v, ok
}

// Tagged returns a Decorator form of Tag for use with Chain.
func Tagged[In, Out any](labels ...string) Decorator[In, Out] {
	return func(o *Operation[In, Out]) *Operation[In, Out] {
		return Tag(o, labels...)
	}
}
