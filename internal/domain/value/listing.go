package value

import "fmt"

// ListingType — тип сделки.
type ListingType string

const (
	ListingSale   ListingType = "sale"
	ListingRental ListingType = "rental"
)

func (t ListingType) String() string {
	return string(t)
}

func (t ListingType) Valid() bool {
	return t == ListingSale || t == ListingRental
}

func ParseListingType(s string) (ListingType, error) {
	t := ListingType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown listing type %q", s)
	}

	return t, nil
}
