package render

import (
	"strings"
	"testing"

	"display-service/internal/domain"
)

func exampleReceipt() domain.Receipt {
	return domain.Receipt{
		Name:      "Alex",
		DrinkType: "latte",
		Size:      "medium",
		Milk:      "oat",
		Extras:    []string{},
		Pricing:   domain.Pricing{BasePrice: 4.50, ExtrasTotal: 0, Subtotal: 4.50, Tax: 0.36, Total: 4.86},
		Timestamp: "2024-01-01T10:00:00Z",
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New("Kopi Kita")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return r
}

func TestMoneyTwoDecimals(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{4.5, "$4.50"},
		{0, "$0.00"},
		{0.5, "$0.50"},
		{10.444, "$10.44"},
		{5.94, "$5.94"},
	}
	for _, tc := range tests {
		if got := Money(tc.amount); got != tc.want {
			t.Fatalf("Money(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestCapitalizeFirstCharacterOnly(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"medium", "Medium"},
		{"oat milk", "Oat milk"},
		{"LATTE", "LATTE"},
		{"", ""},
		{"  latte  ", "Latte"},
	}
	for _, tc := range tests {
		if got := capitalizeFirst(tc.in); got != tc.want {
			t.Fatalf("capitalizeFirst(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatTimestampEnglishLongForm(t *testing.T) {
	got := FormatTimestamp("2024-01-01T10:00:00Z", "en")
	want := "Monday, January 1, 2024 at 10:00 AM"
	if got != want {
		t.Fatalf("FormatTimestamp() = %q, want %q", got, want)
	}
}

func TestFormatTimestampIndonesianLongForm(t *testing.T) {
	got := FormatTimestamp("2024-01-01T10:00:00Z", "id")
	want := "Senin, 1 Januari 2024 pukul 10.00"
	if got != want {
		t.Fatalf("FormatTimestamp() = %q, want %q", got, want)
	}
}

func TestFormatTimestampNaiveISO(t *testing.T) {
	got := FormatTimestamp("2024-06-05T14:30:15.123456", "en")
	want := "Wednesday, June 5, 2024 at 2:30 PM"
	if got != want {
		t.Fatalf("FormatTimestamp() = %q, want %q", got, want)
	}
}

func TestFormatTimestampKeepsUnparseableInput(t *testing.T) {
	raw := "whenever the barista felt like it"
	if got := FormatTimestamp(raw, "en"); got != raw {
		t.Fatalf("FormatTimestamp() = %q, want raw input back", got)
	}
}

func TestBuildCardSplitsExtrasEvenly(t *testing.T) {
	receipt := exampleReceipt()
	receipt.Extras = []string{"oat milk", "syrup"}
	receipt.Pricing = domain.Pricing{BasePrice: 4.50, ExtrasTotal: 1.00, Subtotal: 5.50, Tax: 0.44, Total: 5.94}

	card := newTestRenderer(t).BuildCard(receipt, "en")
	if len(card.Extras) != 2 {
		t.Fatalf("card has %d extras, want 2", len(card.Extras))
	}
	for i, line := range card.Extras {
		if line.Amount != "$0.50" {
			t.Fatalf("Extras[%d].Amount = %q, want %q", i, line.Amount, "$0.50")
		}
	}
	if card.Extras[0].Label != "Oat milk" || card.Extras[1].Label != "Syrup" {
		t.Fatalf("extra labels = %q, %q", card.Extras[0].Label, card.Extras[1].Label)
	}
}

func TestBuildCardOmitsExtrasWhenEmpty(t *testing.T) {
	card := newTestRenderer(t).BuildCard(exampleReceipt(), "en")
	if card.Extras != nil {
		t.Fatalf("card.Extras = %#v, want nil", card.Extras)
	}
}

func TestBuildCardIndonesianLabels(t *testing.T) {
	card := newTestRenderer(t).BuildCard(exampleReceipt(), "id")
	if card.MilkLabel != "Susu" {
		t.Fatalf("MilkLabel = %q, want %q", card.MilkLabel, "Susu")
	}
	if card.TaxLabel != "Pajak" {
		t.Fatalf("TaxLabel = %q, want %q", card.TaxLabel, "Pajak")
	}
	if card.Footer != "Terima kasih atas pesanan Anda!" {
		t.Fatalf("Footer = %q", card.Footer)
	}
	if card.Timestamp != "Senin, 1 Januari 2024 pukul 10.00" {
		t.Fatalf("Timestamp = %q", card.Timestamp)
	}
}

func TestBuildCardUnknownLocaleFallsBackToEnglish(t *testing.T) {
	card := newTestRenderer(t).BuildCard(exampleReceipt(), "fr")
	if card.MilkLabel != "Milk" {
		t.Fatalf("MilkLabel = %q, want English fallback", card.MilkLabel)
	}
}

func TestTextCardGolden(t *testing.T) {
	got, err := newTestRenderer(t).Text(exampleReceipt(), "en")
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	want := `Kopi Kita
Alex | Monday, January 1, 2024 at 10:00 AM

Medium Latte
Milk: Oat

Subtotal: $4.50
Tax: $0.36
Total: $4.86

Thank you for your order!
`
	if got != want {
		t.Fatalf("Text card mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTextCardWithExtras(t *testing.T) {
	receipt := exampleReceipt()
	receipt.Extras = []string{"oat milk", "syrup"}
	receipt.Pricing = domain.Pricing{BasePrice: 4.50, ExtrasTotal: 1.00, Subtotal: 5.50, Tax: 0.44, Total: 5.94}

	got, err := newTestRenderer(t).Text(receipt, "en")
	if err != nil {
		t.Fatalf("Text returned error: %v", err)
	}
	for _, line := range []string{"+ Oat milk ($0.50)", "+ Syrup ($0.50)", "Total: $5.94"} {
		if !strings.Contains(got, line) {
			t.Fatalf("Text card missing %q:\n%s", line, got)
		}
	}
}

func TestHTMLCardEscapesCustomerInput(t *testing.T) {
	receipt := exampleReceipt()
	receipt.Name = "<b>Alex</b>"

	got, err := newTestRenderer(t).HTML(receipt, "en")
	if err != nil {
		t.Fatalf("HTML returned error: %v", err)
	}
	if strings.Contains(got, "<b>Alex</b>") {
		t.Fatalf("HTML card did not escape customer name:\n%s", got)
	}
	if !strings.Contains(got, "&lt;b&gt;Alex&lt;/b&gt;") {
		t.Fatalf("HTML card missing escaped customer name:\n%s", got)
	}
}

func TestHTMLCardStructure(t *testing.T) {
	got, err := newTestRenderer(t).HTML(exampleReceipt(), "en")
	if err != nil {
		t.Fatalf("HTML returned error: %v", err)
	}
	for _, fragment := range []string{
		`<div class="receipt-header">Kopi Kita</div>`,
		`<div class="receipt-drink">Medium Latte</div>`,
		`<strong>$4.86</strong>`,
		`action="/v1/receipt/dismiss"`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("HTML card missing %q:\n%s", fragment, got)
		}
	}
}
