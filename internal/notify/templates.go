package notify

import "html/template"

var customerTemplate = template.Must(template.New("customer").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<body style="font-family: Arial, sans-serif;">
  <h2>{{.Title}}</h2>
  <p>{{.Greeting}}</p>
  {{if .HasQuote}}<p><strong>{{.QuoteLine}}</strong></p>{{else}}<p>{{.NoQuoteLine}}</p>{{end}}
  <h3>{{.DetailsTitle}}</h3>
  <ul>
    <li><strong>{{.Labels.Route}}:</strong> {{.POL}} → {{.POD}}</li>
    <li><strong>{{.Labels.ReadyDate}}:</strong> {{.ReadyDate}}</li>
    <li><strong>{{.Labels.Incoterm}}:</strong> {{.Incoterm}}</li>
    <li><strong>{{.Labels.TotalCBM}}:</strong> {{.TotalCBM}}</li>
    <li><strong>{{.Labels.GrossWeight}}:</strong> {{.GrossWeight}} kg</li>
    <li><strong>{{.Labels.Commodity}}:</strong> {{.Commodity}}</li>
  </ul>
  {{if .HasQuote}}<p>{{.FollowUp}}</p>{{end}}
  <p>{{.Signature}}<br>{{.Team}}</p>
</body>
</html>`))

var operationsTemplate = template.Must(template.New("operations").Parse(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif;">
  <h2>New LCL Quote Request</h2>
  <p><strong>Quote Generated:</strong> {{if .HasQuote}}USD {{.Amount}} ({{.Basis}}, {{.UnitRate}} USD/unit{{if .Fallback}}, default rate{{end}}){{else}}Manual pricing required{{end}}</p>
  <h3>Customer Details:</h3>
  <ul>
    <li><strong>Company:</strong> {{.Company}}</li>
    <li><strong>Contact:</strong> {{.Contact}}</li>
    <li><strong>Email:</strong> {{.Email}}</li>
    <li><strong>Mobile:</strong> {{.Mobile}}</li>
  </ul>
  <h3>Shipment Details:</h3>
  <ul>
    <li><strong>Route:</strong> {{.From}} → {{.To}}</li>
    <li><strong>Ready Date:</strong> {{.ReadyDate}}</li>
    <li><strong>Incoterm:</strong> {{.Incoterm}}</li>
    <li><strong>Total CBM:</strong> {{.TotalCBM}}</li>
    <li><strong>Gross Weight:</strong> {{.GrossWeight}} kg</li>
    <li><strong>Commodity:</strong> {{.Commodity}}</li>
    <li><strong>Hazardous:</strong> {{if .Hazardous}}Yes{{else}}No{{end}}</li>
    <li><strong>Customs:</strong> {{if .Customs}}Yes{{else}}No{{end}}</li>
  </ul>
  <h3>Packages:</h3>
  <ul>
  {{range .Packages}}  <li>{{.Qty}}x {{.Length}}×{{.Width}}×{{.Height}} cm = {{.CBM}} CBM</li>
  {{end}}</ul>
  {{if .PickupAddress}}<p><strong>Pickup Address:</strong> {{.PickupAddress}}</p>{{end}}
  {{if .Attachments}}<p><strong>Attachments:</strong> {{.Attachments}}</p>{{end}}
  <p><strong>User IP:</strong> {{.UserIP}}</p>
  <p><strong>Timestamp:</strong> {{.Timestamp}}</p>
  <p><strong>Submission ID:</strong> {{.ID}}</p>
</body>
</html>`))
