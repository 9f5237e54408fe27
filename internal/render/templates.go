package render

// The card ships in two shapes: a plain-text rendition for terminals and
// logs, and an HTML fragment for the customer-facing display. Both execute
// against the same Card model.

const cardTextTemplate = `{{.ShopName}}
{{if and .Customer .Timestamp}}{{.Customer}} | {{.Timestamp}}
{{else if .Customer}}{{.Customer}}
{{else if .Timestamp}}{{.Timestamp}}
{{end}}
{{.Drink}}
{{if .Milk}}{{.MilkLabel}}: {{.Milk}}
{{end}}{{range .Extras}}+ {{.Label}} ({{.Amount}})
{{end}}
{{.SubtotalLabel}}: {{.Subtotal}}
{{.TaxLabel}}: {{.Tax}}
{{.TotalLabel}}: {{.Total}}

{{.Footer}}
`

const cardHTMLTemplate = `<div class="receipt-card">
  <div class="receipt-header">{{.ShopName}}</div>
{{- if or .Customer .Timestamp}}
  <div class="receipt-meta">
    {{- if .Customer}}
    <span class="receipt-customer">{{.Customer}}</span>
    {{- end}}
    {{- if .Timestamp}}
    <span class="receipt-time">{{.Timestamp}}</span>
    {{- end}}
  </div>
{{- end}}
  <div class="receipt-item">
    <div class="receipt-drink">{{.Drink}}</div>
    {{- if .Milk}}
    <div class="receipt-milk">{{.MilkLabel}}: {{.Milk}}</div>
    {{- end}}
    {{- range .Extras}}
    <div class="receipt-extra"><span>+ {{.Label}}</span><span>{{.Amount}}</span></div>
    {{- end}}
  </div>
  <div class="receipt-totals">
    <div class="receipt-row"><span>{{.SubtotalLabel}}</span><span>{{.Subtotal}}</span></div>
    <div class="receipt-row"><span>{{.TaxLabel}}</span><span>{{.Tax}}</span></div>
    <div class="receipt-row receipt-total"><span>{{.TotalLabel}}</span><strong>{{.Total}}</strong></div>
  </div>
  <div class="receipt-footer">{{.Footer}}</div>
  <form class="receipt-dismiss" method="post" action="/v1/receipt/dismiss">
    <button type="submit" aria-label="{{.DismissLabel}}">&times;</button>
  </form>
</div>
`
