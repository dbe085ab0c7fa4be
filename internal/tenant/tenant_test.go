package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activeAlerts/internal/apperrors"
	"activeAlerts/internal/browser/browsertest"
	"activeAlerts/internal/logger"
	"activeAlerts/internal/session"
)

const dashboardURL = "https://dashboard.example.com"

func loggedIn(t *testing.T, site browsertest.Site) (*session.Session, *browsertest.Launcher) {
	t.Helper()
	l := browsertest.NewLauncher(site)
	m := session.NewManager(l, session.Config{}, logger.Wrap(zap.NewNop()))
	s, err := m.OpenAndLogin(context.Background(), dashboardURL, "u", "p")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, l
}

var plants = []browsertest.Plant{
	{Code: "Plant A", Name: "North"},
	{Code: "Plant B", Name: "South"},
	{Code: "Plant C", Name: "East"},
}

func TestCount(t *testing.T) {
	s, _ := loggedIn(t, browsertest.DashboardSite(dashboardURL, plants, nil, nil))

	n, err := NewEnumerator(0).Count(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestList_NoTable(t *testing.T) {
	site := browsertest.DashboardSite(dashboardURL, nil, nil, nil)
	site.Routes["/plants"] = `<html><body><p>Нет доступа</p></body></html>`
	s, _ := loggedIn(t, site)

	rows, err := NewEnumerator(0).List(context.Background(), s)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestList_NilSession(t *testing.T) {
	rows, err := NewEnumerator(0).List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLocate(t *testing.T) {
	s, _ := loggedIn(t, browsertest.DashboardSite(dashboardURL, plants, nil, nil))
	e := NewEnumerator(0)

	tn, row, err := e.Locate(context.Background(), s, 1)
	require.NoError(t, err)
	assert.Equal(t, Tenant{Index: 1, Name: "Plant B_South"}, tn)
	require.NotNil(t, row)

	_, _, err = e.Locate(context.Background(), s, 3)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestLocate_RowWithoutName(t *testing.T) {
	site := browsertest.DashboardSite(dashboardURL, nil, nil, nil)
	site.Routes["/plants"] = `<html><body><table><thead><tr><th>#</th><th>Plant</th><th>Area</th></tr></thead>` +
		`<tbody><tr><td>1</td><td>Plant A</td><td>North</td></tr></tbody></table></body></html>`
	s, _ := loggedIn(t, site)
	e := NewEnumerator(0)

	n, err := e.Count(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "строка заголовка тоже считается")

	_, _, err = e.Locate(context.Background(), s, 0)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	tn, _, err := e.Locate(context.Background(), s, 1)
	require.NoError(t, err)
	assert.Equal(t, "Plant A_North", tn.Name)
}

func TestActivate(t *testing.T) {
	s, l := loggedIn(t, browsertest.DashboardSite(dashboardURL, plants, nil, nil))
	e := NewEnumerator(0)

	_, row, err := e.Locate(context.Background(), s, 2)
	require.NoError(t, err)
	require.NoError(t, e.Activate(context.Background(), row))

	assert.Equal(t, browsertest.PlantRoute(2), l.Pages()[0].URL)
}
