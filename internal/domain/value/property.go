package value

import "fmt"

// PropertyType — категория объекта недвижимости.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyLand       PropertyType = "land"
	PropertyOffice     PropertyType = "office"
	PropertyCommercial PropertyType = "commercial"
	PropertyGarage     PropertyType = "garage"
)

// PropertyTypes задаёт порядок категорий. При равенстве очков побеждает более ранняя.
//
//nolint:gochecknoglobals
var PropertyTypes = []PropertyType{
	PropertyApartment,
	PropertyHouse,
	PropertyLand,
	PropertyOffice,
	PropertyCommercial,
	PropertyGarage,
}

func (t PropertyType) String() string {
	return string(t)
}

func (t PropertyType) Valid() bool {
	for _, p := range PropertyTypes {
		if p == t {
			return true
		}
	}
	return false
}

func ParsePropertyType(s string) (PropertyType, error) {
	t := PropertyType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown property type %q", s)
	}

	return t, nil
}

// PropertyOrigin — первичное или вторичное жильё.
type PropertyOrigin string

const (
	OriginNewBuild PropertyOrigin = "new_build"
	OriginResale   PropertyOrigin = "resale"
	OriginUnknown  PropertyOrigin = "unknown"
)

func (o PropertyOrigin) String() string {
	return string(o)
}
