package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/keiikegami/cirje-seminar-tracker/internal/event"
)

// Title of the published page
const Title = "CIRJE Workshops – Upcoming"

// JST is the zone of the generation timestamp
var JST = time.FixedZone("JST", 9*60*60)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="ja">
<meta charset="utf-8">
<title>{{.Title}}</title>
<body>
  <h2>今後のセミナー予定（自動更新）</h2>
  <ul>
{{- range .Events}}
    <li>{{.DateString}} – <strong>{{.Workshop}}</strong> – {{.Info}}</li>
{{- end}}
  </ul>
  <p style="font-size:smaller">Last updated: {{.Updated}}</p>
</body>
</html>
`))

type page struct {
	Title   string
	Events  []*event.Event
	Updated string
}

// HTML renders the listing page. Event fields are HTML-escaped; generated is
// printed in JST.
func HTML(events []*event.Event, generated time.Time) (string, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, page{
		Title:   Title,
		Events:  events,
		Updated: generated.In(JST).Format("2006-01-02 15:04") + " JST",
	})
	if err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.String(), nil
}
