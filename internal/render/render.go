package render

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
	"unicode"
	"unicode/utf8"

	"display-service/internal/domain"
)

// labels carries the localized static strings on the card.
type labels struct {
	Milk     string
	Subtotal string
	Tax      string
	Total    string
	Footer   string
	Dismiss  string
}

var cardLabels = map[string]labels{
	"en": {
		Milk:     "Milk",
		Subtotal: "Subtotal",
		Tax:      "Tax",
		Total:    "Total",
		Footer:   "Thank you for your order!",
		Dismiss:  "Dismiss receipt",
	},
	"id": {
		Milk:     "Susu",
		Subtotal: "Subtotal",
		Tax:      "Pajak",
		Total:    "Total",
		Footer:   "Terima kasih atas pesanan Anda!",
		Dismiss:  "Tutup struk",
	},
}

// ExtraLine is one priced extras row. Each extra carries an even share of the
// pricing extras total.
type ExtraLine struct {
	Label  string
	Amount string
}

// Card is the display model shared by the text and HTML templates. Every
// amount arrives preformatted so the templates stay purely presentational.
type Card struct {
	ShopName      string
	Customer      string
	Timestamp     string
	Drink         string
	MilkLabel     string
	Milk          string
	Extras        []ExtraLine
	SubtotalLabel string
	Subtotal      string
	TaxLabel      string
	Tax           string
	TotalLabel    string
	Total         string
	Footer        string
	DismissLabel  string
}

// Renderer turns accepted receipts into display cards.
type Renderer struct {
	shopName string
	text     *texttemplate.Template
	html     *htmltemplate.Template
}

// New parses the card templates and returns a Renderer branded with the given
// shop name.
func New(shopName string) (*Renderer, error) {
	text, err := texttemplate.New("card").Parse(cardTextTemplate)
	if err != nil {
		return nil, fmt.Errorf("render: parse text template: %w", err)
	}
	html, err := htmltemplate.New("card").Parse(cardHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("render: parse html template: %w", err)
	}
	return &Renderer{shopName: shopName, text: text, html: html}, nil
}

// BuildCard maps a receipt onto the localized card model. The extras block is
// omitted entirely when the receipt carries no extras.
func (r *Renderer) BuildCard(receipt domain.Receipt, locale string) Card {
	l, ok := cardLabels[locale]
	if !ok {
		l = cardLabels["en"]
	}

	card := Card{
		ShopName:      r.shopName,
		Customer:      strings.TrimSpace(receipt.Name),
		Timestamp:     FormatTimestamp(receipt.Timestamp, locale),
		Drink:         strings.TrimSpace(capitalizeFirst(receipt.Size) + " " + capitalizeFirst(receipt.DrinkType)),
		MilkLabel:     l.Milk,
		Milk:          capitalizeFirst(receipt.Milk),
		SubtotalLabel: l.Subtotal,
		Subtotal:      Money(receipt.Pricing.Subtotal),
		TaxLabel:      l.Tax,
		Tax:           Money(receipt.Pricing.Tax),
		TotalLabel:    l.Total,
		Total:         Money(receipt.Pricing.Total),
		Footer:        l.Footer,
		DismissLabel:  l.Dismiss,
	}

	if n := len(receipt.Extras); n > 0 {
		each := receipt.Pricing.ExtrasTotal / float64(n)
		for _, extra := range receipt.Extras {
			card.Extras = append(card.Extras, ExtraLine{Label: capitalizeFirst(extra), Amount: Money(each)})
		}
	}

	return card
}

// Text renders the plain-text card.
func (r *Renderer) Text(receipt domain.Receipt, locale string) (string, error) {
	var buf bytes.Buffer
	if err := r.text.Execute(&buf, r.BuildCard(receipt, locale)); err != nil {
		return "", fmt.Errorf("render: execute text template: %w", err)
	}
	return buf.String(), nil
}

// HTML renders the card as a standalone HTML fragment.
func (r *Renderer) HTML(receipt domain.Receipt, locale string) (string, error) {
	var buf bytes.Buffer
	if err := r.html.Execute(&buf, r.BuildCard(receipt, locale)); err != nil {
		return "", fmt.Errorf("render: execute html template: %w", err)
	}
	return buf.String(), nil
}

// Money formats a dollar amount with exactly two decimals.
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// capitalizeFirst upper-cases the first rune only, leaving the rest of the
// string untouched ("medium" stays "Medium", "oat milk" becomes "Oat milk").
func capitalizeFirst(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// timestampLayouts are tried in order when parsing the wire timestamp. The
// agent usually sends RFC 3339, but naive ISO-8601 stamps without a zone show
// up as well.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

var indonesianDays = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatTimestamp renders an ISO-8601 timestamp in long form for the locale.
// Unparseable input is returned as-is rather than dropped.
func FormatTimestamp(raw, locale string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}

	var (
		ts  time.Time
		err error
	)
	for _, layout := range timestampLayouts {
		ts, err = time.Parse(layout, raw)
		if err == nil {
			break
		}
	}
	if err != nil {
		return raw
	}

	if locale == "id" {
		return fmt.Sprintf("%s, %d %s %d pukul %02d.%02d",
			indonesianDays[ts.Weekday()], ts.Day(), indonesianMonths[ts.Month()-1], ts.Year(), ts.Hour(), ts.Minute())
	}
	return ts.Format("Monday, January 2, 2006 at 3:04 PM")
}
