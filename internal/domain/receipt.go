package domain

import "strings"

// MessageTypeReceipt is the envelope type the pricing agent uses for
// finalized orders. Messages with any other type are not ours to handle.
const MessageTypeReceipt = "receipt"

// Pricing carries the price breakdown computed upstream. Amounts are
// dollars. The arithmetic (subtotal, tax, total) is the publisher's
// responsibility and is rendered as received.
type Pricing struct {
	BasePrice   float64 `json:"base_price"`
	ExtrasTotal float64 `json:"extras_total"`
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// Receipt is one finalized order as published on the data channel.
// Timestamp stays a string on the wire; parsing happens at render time.
type Receipt struct {
	Name      string   `json:"name"`
	DrinkType string   `json:"drinkType"`
	Size      string   `json:"size"`
	Milk      string   `json:"milk"`
	Extras    []string `json:"extras"`
	Pricing   Pricing  `json:"pricing"`
	Timestamp string   `json:"timestamp"`
}

// Envelope is the wire frame around data channel messages.
type Envelope struct {
	Type    string   `json:"type"`
	Receipt *Receipt `json:"receipt"`
}

// MissingFields returns the wire names of required order fields that are
// still empty. Extras are optional and never reported.
func (r Receipt) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.DrinkType) == "" {
		missing = append(missing, "drinkType")
	}
	if strings.TrimSpace(r.Size) == "" {
		missing = append(missing, "size")
	}
	if strings.TrimSpace(r.Milk) == "" {
		missing = append(missing, "milk")
	}
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	return missing
}

// Complete reports whether every required order field is filled.
func (r Receipt) Complete() bool {
	return len(r.MissingFields()) == 0
}

// Clone returns a copy sharing no mutable state with r.
func (r Receipt) Clone() Receipt {
	out := r
	if r.Extras != nil {
		out.Extras = append([]string(nil), r.Extras...)
	}
	return out
}
