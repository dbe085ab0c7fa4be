package browsertest

import (
	"fmt"
	"strings"
)

// Plant is one row of the landing table.
type Plant struct {
	Code string
	Name string
}

// LoginPage renders the login form; the button leads to next.
func LoginPage(next string) string {
	return `<html><body><form>` +
		`<input id="username" type="text">` +
		`<input id="password" type="password">` +
		`<button class="btn" data-goto="` + next + `">Login</button>` +
		`</form></body></html>`
}

// LandingPage renders the plant table. Row i opens route PlantRoute(i).
func LandingPage(plants []Plant) string {
	var b strings.Builder
	b.WriteString(`<html><body><table><tbody>`)
	for i, p := range plants {
		fmt.Fprintf(&b, `<tr data-goto="%s"><td>%d</td><td>%s</td><td>%s</td></tr>`, PlantRoute(i), i+1, p.Code, p.Name)
	}
	b.WriteString(`</tbody></table></body></html>`)
	return b.String()
}

func PlantRoute(i int) string {
	return fmt.Sprintf("/plant/%d", i)
}

// AlertsPage renders a plant page whose alert table has the given rows. The
// "Active Alerts" label sits three levels below the section container and the
// "description" header eight levels below the table root.
func AlertsPage(rows ...string) string {
	return `<html><body><main>` +
		`<div id="alerts-section">` +
		`<header><h2><span>Active Alerts</span></h2></header>` +
		`<div id="table-root"><div class="scroll">` +
		`<table><thead><tr>` +
		`<th></th><th>#</th>` +
		`<th><div class="cell"><div class="label"><span>description</span></div></div></th>` +
		`<th>severity</th>` +
		`</tr></thead>` +
		`<tbody>` + strings.Join(rows, "") + `</tbody>` +
		`</table></div></div>` +
		`</div>` +
		`</main></body></html>`
}

// Row renders a table row with one <td> per cell.
func Row(cells ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		b.WriteString("<td>" + c + "</td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

// GroupRow renders a collapsed row: clicking its first cell inserts Site.Expansions[key].
func GroupRow(key, count string, cells ...string) string {
	var b strings.Builder
	b.WriteString(`<tr><td data-expand="` + key + `">+</td><td>` + count + `</td>`)
	for _, c := range cells {
		b.WriteString("<td>" + c + "</td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

// DashboardSite wires login, landing and plant pages together. Login happens at
// url; plant i is rendered from alerts[i] (missing entries get a page without alerts).
func DashboardSite(url string, plants []Plant, alerts map[int]string, expansions map[string]string) Site {
	routes := map[string]string{
		url:       LoginPage("/plants"),
		"/plants": LandingPage(plants),
	}
	for i := range plants {
		page, ok := alerts[i]
		if !ok {
			page = `<html><body><h1>` + plants[i].Name + `</h1></body></html>`
		}
		routes[PlantRoute(i)] = page
	}
	return Site{Routes: routes, Expansions: expansions}
}
