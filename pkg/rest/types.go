// Модели HTTP API. Поля записи объявления названы так же, как в JSONB-хранилище.
package rest

type Location struct {
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`
	Address  string `json:"address,omitempty"`
}

// PartialRecord — то, что парсер сайта уже знает об объявлении.
type PartialRecord struct {
	Location               *Location `json:"location,omitempty"`
	PropertyType           string    `json:"property_type,omitempty" validate:"omitempty,oneof=apartment house land office commercial garage"`
	PropertyTypeConfidence *float64  `json:"property_type_confidence,omitempty" validate:"omitempty,min=0,max=1"`
	ListingType            string    `json:"listing_type,omitempty" validate:"omitempty,oneof=sale rental"`
	ListingTypeConfidence  *float64  `json:"listing_type_confidence,omitempty" validate:"omitempty,min=0,max=1"`
}

type Listing struct {
	Title       string         `json:"title" validate:"max=2000"`
	Description string         `json:"description" validate:"max=50000"`
	SourceURL   string         `json:"sourceUrl,omitempty" validate:"omitempty,url"`
	Prior       *PartialRecord `json:"prior,omitempty"`
}

type ExtractRequest struct {
	Listing
	// Save сохраняет результат в базу.
	Save bool `json:"save"`
}

type BatchRequest struct {
	Listings []Listing `json:"listings" validate:"required,min=1,max=500,dive"`
	Save     bool      `json:"save"`
}

type Result struct {
	PropertyType           string              `json:"property_type,omitempty"`
	PropertyTypeConfidence float64             `json:"property_type_confidence"`
	PropertyOrigin         string              `json:"property_origin,omitempty"`
	ListingType            string              `json:"listing_type,omitempty"`
	ListingTypeConfidence  float64             `json:"listing_type_confidence"`
	Rooms                  *int                `json:"rooms,omitempty"`
	AreaSqm                *float64            `json:"area_sqm,omitempty"`
	LivingArea             *float64            `json:"living_area,omitempty"`
	KitchenArea            *float64            `json:"kitchen_area,omitempty"`
	LandAreaSotka          *float64            `json:"land_area_sotka,omitempty"`
	Floor                  *int                `json:"floor,omitempty"`
	TotalFloors            *int                `json:"total_floors,omitempty"`
	Phones                 []string            `json:"phones,omitempty"`
	Location               *Location           `json:"location,omitempty"`
	Heating                string              `json:"heating,omitempty"`
	Furniture              string              `json:"furniture,omitempty"`
	Condition              string              `json:"condition,omitempty"`
	Amenities              map[string][]string `json:"amenities,omitempty"`
	ExtractionQuality      float64             `json:"extraction_quality"`
}

type TrailEntry struct {
	Rule    string  `json:"rule"`
	Pattern string  `json:"pattern"`
	Weight  float64 `json:"weight"`
}

type Diagnostics struct {
	ExtractionTimeMs float64      `json:"extraction_time_ms"`
	TextLength       int          `json:"text_length"`
	QualityScore     float64      `json:"quality_score"`
	Trail            []TrailEntry `json:"reasoning_trail"`
}

type Extraction struct {
	// ListingID заполняется, если результат сохранён.
	ListingID   string      `json:"listingId,omitempty"`
	Result      Result      `json:"result"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

type BatchResponse struct {
	Items []Extraction `json:"items"`
}

type TaskAccepted struct {
	TaskID string `json:"taskId"`
}

type Task struct {
	TaskID     string      `json:"taskId"`
	Status     string      `json:"status"`
	ListingID  string      `json:"listingId,omitempty"`
	Extraction *Extraction `json:"extraction,omitempty"`
	Error      string      `json:"error,omitempty"`
	UpdatedAt  string      `json:"updatedAt"`
}

type StoredListing struct {
	ID         string     `json:"id"`
	SourceURL  string     `json:"sourceUrl,omitempty"`
	Listing    Listing    `json:"listing"`
	Extraction Extraction `json:"extraction"`
	CreatedAt  string     `json:"createdAt"`
}

type ListingPage struct {
	Items  []StoredListing `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке
	Message string `json:"message"`

	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
