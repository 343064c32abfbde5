package bsonkit

import "fmt"

// Elem represents a BSON element.
//
// NOTE: Elem cannot be the value of a map nor a property of a struct without special handling.
// An Elem contains a key, so using one as a map value or struct property would lose that key.
// Use a Val in those positions instead.
type Elem struct {
	Key   string
	Value Val
}

// Equal compares e and e2 and returns true if they are equal.
func (e Elem) Equal(e2 Elem) bool {
	if e.Key != e2.Key {
		return false
	}
	return e.Value.Equal(e2.Value)
}

func (e Elem) String() string {
	return fmt.Sprintf(`bsonkit.Elem{"%s": %v}`, e.Key, e.Value)
}
