package itinerary

import (
	"fmt"

	"github.com/roamgen/roamgen/internal/types"
)

const notSpecified = "Not specified"

// generateItineraryPrompt builds the single completion prompt for a
// travel query. Optional fields that the caller left empty are
// substituted with a literal placeholder; no other validation happens
// here.
func generateItineraryPrompt(query types.TravelQuery) string {
	return fmt.Sprintf(`
        You are a travel planning assistant. Plan a trip with the following preferences:
        - Starting city: %s
        - Destination: %s
        - Travel dates: %s
        - Interests: %s
        - Travel style: %s
        Generate a day-wise travel itinerary as Markdown text, and a list of recommended places to visit.
        Return the response STRICTLY as a single JSON object with EXACTLY these two top-level keys and nothing else:
        {
        "itinerary": "The full day-wise itinerary in Markdown format.",
        "places": [
            {
            "name": "Name of the place",
            "address": "Street address of the place",
            "shortDescription": "A 1-2 sentence description of the place.",
            "image": "A URL of a representative image, or an empty string",
            "rating": <float between 0 and 5>,
            "latitude": <float>,
            "longitude": <float>
            }
        ]
        }
        Do not wrap the JSON in code fences and do not add any text before or after it.`,
		orPlaceholder(query.StartCity),
		orPlaceholder(query.Destination),
		orPlaceholder(query.Dates),
		orPlaceholder(query.Interests),
		orPlaceholder(query.Style),
	)
}

func orPlaceholder(field string) string {
	if field == "" {
		return notSpecified
	}
	return field
}
