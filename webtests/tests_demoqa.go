package webtests

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/web-tests/apps/demoqa"
	"github.com/qaforge/web-tests/framework"
)

func demoQA(t *T, p *Page) *demoqa.Site {
	return demoqa.NewSite(p.Nav, t.Config().DemoQAURL)
}

// DoDemoQATests runs the DemoQA tests. All of them are smoke tests.
func DoDemoQATests(t *T) {
	t.Group("elements", doElementsTests, framework.MarkerSmoke)
	t.Group("widgets", doWidgetsTests, framework.MarkerSmoke)
}

func doElementsTests(t *T) {
	t.RunWithPage("elements page loads", func(t *T, p *Page) {
		section, err := demoQA(t, p).Elements().Open()
		require.NoError(t, err)
		require.True(t, section.IsLoaded(), "elements section did not load")
		items, err := section.MenuItems()
		require.NoError(t, err)
		assert.Contains(t, items, demoqa.MenuTextBox)
	})

	t.RunWithPage("open text box", func(t *T, p *Page) {
		section, err := demoQA(t, p).Elements().Open()
		require.NoError(t, err)
		_, err = section.OpenTextBox()
		require.NoError(t, err)
	})

	t.RunWithPage("submit text box", func(t *T, p *Page) {
		page, err := demoQA(t, p).TextBox()
		require.NoError(t, err)
		require.NoError(t, page.Submit(demoqa.TextBoxForm{
			FullName:         "John Doe",
			Email:            "john.doe@example.com",
			CurrentAddress:   "1 Main Street",
			PermanentAddress: "2 Side Street",
		}))
		output, err := page.Output()
		require.NoError(t, err)
		assert.Contains(t, output, "John Doe")
		assert.Contains(t, output, "john.doe@example.com")
	})

	t.RunWithPage("open check box", func(t *T, p *Page) {
		section, err := demoQA(t, p).Elements().Open()
		require.NoError(t, err)
		_, err = section.OpenCheckBox()
		require.NoError(t, err)
	})

	t.RunWithPage("select single check box", func(t *T, p *Page) {
		page, err := demoQA(t, p).CheckBox()
		require.NoError(t, err)
		require.NoError(t, page.ExpandAll())
		require.NoError(t, page.Select("Notes"))
		selected, err := page.SelectedItems()
		require.NoError(t, err)
		assert.Contains(t, selected, "notes")
	})

	t.RunWithPage("select multiple check boxes", func(t *T, p *Page) {
		page, err := demoQA(t, p).CheckBox()
		require.NoError(t, err)
		require.NoError(t, page.ExpandAll())
		require.NoError(t, page.Select("Notes"))
		require.NoError(t, page.Select("React"))
		selected, err := page.SelectedItems()
		require.NoError(t, err)
		assert.Subset(t, selected, []string{"notes", "react"})
	})

	t.RunWithPage("open radio button", func(t *T, p *Page) {
		section, err := demoQA(t, p).Elements().Open()
		require.NoError(t, err)
		_, err = section.OpenRadioButton()
		require.NoError(t, err)
	})

	t.RunWithPage("select yes", func(t *T, p *Page) {
		page, err := demoQA(t, p).RadioButton()
		require.NoError(t, err)
		require.NoError(t, page.SelectYes())
		value, err := page.SelectedValue()
		require.NoError(t, err)
		assert.Equal(t, "Yes", value)
	})

	t.RunWithPage("select impressive", func(t *T, p *Page) {
		page, err := demoQA(t, p).RadioButton()
		require.NoError(t, err)
		require.NoError(t, page.SelectImpressive())
		value, err := page.SelectedValue()
		require.NoError(t, err)
		assert.Equal(t, "Impressive", value)
	})

	t.RunWithPage("no is disabled", func(t *T, p *Page) {
		page, err := demoQA(t, p).RadioButton()
		require.NoError(t, err)
		enabled, err := page.NoIsEnabled()
		require.NoError(t, err)
		assert.False(t, enabled)
	})
}

var sliderValues = []int{0, 25, 50, 75, 100}

func doWidgetsTests(t *T) {
	t.RunWithPage("open slider", func(t *T, p *Page) {
		section, err := demoQA(t, p).Widgets().Open()
		require.NoError(t, err)
		_, err = section.OpenSlider()
		require.NoError(t, err)
	})

	for _, value := range sliderValues {
		value := value
		t.RunWithPage(fmt.Sprintf("set slider value[%d]", value), func(t *T, p *Page) {
			page, err := demoQA(t, p).Slider()
			require.NoError(t, err)
			require.NoError(t, page.SetValue(value))
			actual, err := page.Value()
			require.NoError(t, err)
			assert.Equal(t, value, actual)
		})
	}

	t.RunWithPage("open date picker", func(t *T, p *Page) {
		section, err := demoQA(t, p).Widgets().Open()
		require.NoError(t, err)
		_, err = section.OpenDatePicker()
		require.NoError(t, err)
	})

	t.RunWithPage("set date", func(t *T, p *Page) {
		page, err := demoQA(t, p).DatePicker()
		require.NoError(t, err)
		require.NoError(t, page.SetDate("12/25/2025"))
		value, err := page.Date()
		require.NoError(t, err)
		assert.Equal(t, "12/25/2025", value)
	})

	t.RunWithPage("set date and time", func(t *T, p *Page) {
		page, err := demoQA(t, p).DatePicker()
		require.NoError(t, err)
		require.NoError(t, page.SetDateTime("December 25, 2025 10:30 AM"))
		value, err := page.DateTime()
		require.NoError(t, err)
		assert.Equal(t, "December 25, 2025 10:30 AM", value)
	})
}
