package request

// Bundle is an opaque key-value payload carried by intents and results.
// The coordination engine never inspects bundle contents; typed getters are
// a convenience for the screens on either side of a launch.
type Bundle map[string]any

// String returns the string stored under key, or the empty string if the key
// is absent or holds a non-string value.
func (b Bundle) String(key string) string {
	v, _ := b[key].(string)
	return v
}

// Int returns the int stored under key, or zero if the key is absent or
// holds a non-int value.
func (b Bundle) Int(key string) int {
	v, _ := b[key].(int)
	return v
}

// Bool returns the bool stored under key, or false if the key is absent or
// holds a non-bool value.
func (b Bundle) Bool(key string) bool {
	v, _ := b[key].(bool)
	return v
}

// Clone returns a shallow copy of the bundle. A nil bundle clones to nil.
func (b Bundle) Clone() Bundle {
	if b == nil {
		return nil
	}
	out := make(Bundle, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
