package dictionary

// Структуры файла словаря. Переводятся в неизменяемый Dictionary в compile.

type fileSchema struct {
	Version         string                `yaml:"version"`
	Deal            dealSchema            `yaml:"deal"`
	Category        categorySchema        `yaml:"category"`
	Location        locationSchema        `yaml:"location"`
	Characteristics characteristicsSchema `yaml:"characteristics"`
}

type dealSchema struct {
	Exclusions []Labeled `yaml:"exclusions"`
	Tiers      []struct {
		Name   string  `yaml:"name"`
		Weight float64 `yaml:"weight"`
		Sale   []Term  `yaml:"sale"`
		Rental []Term  `yaml:"rental"`
	} `yaml:"tiers"`
	Regional struct {
		Weight float64 `yaml:"weight"`
		Terms  []struct {
			Term     string `yaml:"term"`
			Gloss    string `yaml:"gloss"`
			Category string `yaml:"category"`
			Whole    bool   `yaml:"whole"`
		} `yaml:"terms"`
	} `yaml:"regional"`
	Context struct {
		Weight float64 `yaml:"weight"`
		Sale   []Term  `yaml:"sale"`
		Rental []Term  `yaml:"rental"`
	} `yaml:"context"`
	Price struct {
		Bonus float64         `yaml:"bonus"`
		USD   thresholdSchema `yaml:"usd"`
		SOM   thresholdSchema `yaml:"som"`
	} `yaml:"price"`
	Defaults struct {
		SaleConfidence     float64 `yaml:"sale_confidence"`
		RentalConfidence   float64 `yaml:"rental_confidence"`
		FallbackConfidence float64 `yaml:"fallback_confidence"`
		Sale               []Term  `yaml:"sale"`
		Rental             []Term  `yaml:"rental"`
	} `yaml:"defaults"`
	TieBreak struct {
		LongText int `yaml:"long_text"`
	} `yaml:"tie_break"`
}

type thresholdSchema struct {
	SaleAbove   float64 `yaml:"sale_above"`
	RentalBelow float64 `yaml:"rental_below"`
}

type categorySchema struct {
	Weights struct {
		Primary   float64 `yaml:"primary"`
		Secondary float64 `yaml:"secondary"`
		Context   float64 `yaml:"context"`
		Modifier  float64 `yaml:"modifier"`
	} `yaml:"weights"`
	Categories []struct {
		Type      string  `yaml:"type"`
		Factor    float64 `yaml:"factor"`
		Primary   []Term  `yaml:"primary"`
		Secondary []Term  `yaml:"secondary"`
		Context   []Term  `yaml:"context"`
		Modifier  []Term  `yaml:"modifier"`
	} `yaml:"categories"`
	Origin struct {
		NewBuild []Term `yaml:"new_build"`
		Resale   []Term `yaml:"resale"`
	} `yaml:"origin"`
}

type locationSchema struct {
	Cities           []string `yaml:"cities"`
	Districts        []string `yaml:"districts"`
	AddressStopwords []string `yaml:"address_stopwords"`
	AddressNouns     []string `yaml:"address_nouns"`
	MeasureUnits     []string `yaml:"measure_units"`
}

type characteristicsSchema struct {
	Heating   []Labeled `yaml:"heating"`
	Furniture []Labeled `yaml:"furniture"`
	Condition []Labeled `yaml:"condition"`
	Amenities []struct {
		Category string    `yaml:"category"`
		Kinds    []Labeled `yaml:"kinds"`
	} `yaml:"amenities"`
}
