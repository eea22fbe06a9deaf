package creditcard

// FieldErrors maps an invalid field to its message. A field that is absent
// is valid.
type FieldErrors map[Field]string

// Check records message for field when ok is false.
func (e FieldErrors) Check(ok bool, field Field, message string) {
	if !ok {
		e[field] = message
	}
}

// Valid reports whether no field is in error.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Visible keeps only the errors of fields that have been touched (blurred
// at least once). Validity must always be taken from the full map.
func (e FieldErrors) Visible(touched map[Field]bool) FieldErrors {
	out := FieldErrors{}
	for f, msg := range e {
		if touched[f] {
			out[f] = msg
		}
	}
	return out
}

// ParseField returns the Field constant named by s. The result never
// shares memory with s.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}
