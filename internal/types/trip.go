package types

// TravelQuery is the preference form submitted with each request. It is
// built once from the request body and never mutated or persisted.
type TravelQuery struct {
	StartCity   string `json:"startCity,omitempty"`
	Destination string `json:"destination"`
	Dates       string `json:"dates"`
	Interests   string `json:"interests"`
	Style       string `json:"style"`
}

// Place is a single recommended location from the model output.
// Rating and coordinates stay absent from the response when the model
// did not produce them.
type Place struct {
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	ShortDescription string   `json:"shortDescription"`
	Image            string   `json:"image"`
	Rating           *float64 `json:"rating,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

// ItineraryResult is the canonical response shape. Itinerary is always
// present (possibly the raw model text when recovery fell back) and
// Places is always an array, possibly empty, never null.
type ItineraryResult struct {
	Itinerary string  `json:"itinerary"`
	Places    []Place `json:"places"`
}
