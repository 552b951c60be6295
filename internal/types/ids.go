package types

import "strconv"

// PartnerID identifies a design partner row in the record store.
// The hosted table uses int8 keys, so the alias is 64-bit.
type PartnerID int64

// ToInt64 converts the alias back to int64 for query parameters.
func (id PartnerID) ToInt64() int64 {
	return int64(id)
}

// String renders the ID the way the REST filters expect it.
func (id PartnerID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Valid reports whether the ID can refer to a persisted row.
func (id PartnerID) Valid() bool {
	return id > 0
}

// PartnerIDFromInt64 creates a PartnerID from a raw int64 value
func PartnerIDFromInt64(i int64) PartnerID {
	return PartnerID(i)
}

// ParsePartnerID parses a decimal partner ID, as given on the command line.
func ParsePartnerID(s string) (PartnerID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return PartnerID(v), nil
}
