package domain

// TrackingEvent is a single status event returned by the tracking API
type TrackingEvent struct {
	Barcode   string `json:"barcode"`
	Date      string `json:"date"`
	EventName string `json:"eventName"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	Index     string `json:"index,omitempty"`
}

// Category classifies the event through the shared status classifier
func (e TrackingEvent) Category() StatusCategory {
	return Classify(e.EventName)
}
