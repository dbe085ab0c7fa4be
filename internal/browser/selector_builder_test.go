package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelector_Playwright(t *testing.T) {
	tests := []struct {
		name     string
		sel      Selector
		relative bool
		want     string
	}{
		{"id", ByID("username"), false, "#username"},
		{"class", ByClass("btn"), false, ".btn"},
		{"tag", ByTag("tbody"), true, "tbody"},
		{"text absolute", ByText("Active Alerts"), false, "xpath=//*[text()='Active Alerts']"},
		{"text relative", ByText("description"), true, "xpath=.//*[text()='description']"},
		{"parent", ParentSelector(), true, "xpath=.."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.Playwright(tt.relative))
		})
	}
}

func TestXPathLiteral(t *testing.T) {
	assert.Equal(t, "'plain'", xpathLiteral("plain"))
	assert.Equal(t, `"it's"`, xpathLiteral("it's"))
	assert.Equal(t, `concat('a"b', "'", 'c')`, xpathLiteral(`a"b'c`))
	assert.Equal(t, `concat("'", 'x"')`, xpathLiteral(`'x"`))
}

func TestSelector_String(t *testing.T) {
	assert.Equal(t, `text="Active Alerts"`, ByText("Active Alerts").String())
	assert.Equal(t, "parent", ParentSelector().String())
}
