// Package demoqa has page objects for the DemoQA practice site (https://demoqa.com).
package demoqa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/qaforge/web-tests/pages"
)

const (
	selSectionReady = ".left-pannel"
	selSideMenuItem = ".element-list .menu-list li"
)

// Side menu entries, as displayed.
const (
	MenuTextBox     = "Text Box"
	MenuCheckBox    = "Check Box"
	MenuRadioButton = "Radio Button"

	MenuAccordian    = "Accordian"
	MenuAutoComplete = "Auto Complete"
	MenuDatePicker   = "Date Picker"
	MenuSlider       = "Slider"
	MenuProgressBar  = "Progress Bar"
	MenuTabs         = "Tabs"
	MenuToolTips     = "Tool Tips"
	MenuMenu         = "Menu"
	MenuSelectMenu   = "Select Menu"
)

// Site is the DemoQA application at a given base URL.
type Site struct {
	nav     *pages.Navigator
	baseURL string
}

func NewSite(nav *pages.Navigator, baseURL string) *Site {
	return &Site{nav: nav, baseURL: baseURL}
}

func (s *Site) open(path string) error {
	return s.nav.Open(pages.JoinURL(s.baseURL, path))
}

// heading is the selector of a page's main header, used to confirm that navigation landed on it.
func heading(title string) string {
	return fmt.Sprintf("h1:text(%q)", title)
}

func (s *Site) ready(title string) error {
	if err := s.nav.WaitForVisible(heading(title), 0); err != nil {
		return fmt.Errorf("%s page did not load: %w", title, err)
	}
	return nil
}

// Section is one of the top-level DemoQA sections, which share a side menu.
type Section struct {
	site *Site
	path string
}

func (s *Site) Elements() *Section {
	return &Section{site: s, path: "elements"}
}

func (s *Site) Widgets() *Section {
	return &Section{site: s, path: "widgets"}
}

func (sec *Section) Open() (*Section, error) {
	return sec, sec.site.open(sec.path)
}

func (sec *Section) IsLoaded() bool {
	return sec.site.nav.WaitForVisible(selSectionReady, 0) == nil
}

// MenuItems returns the visible side menu entries of the section.
func (sec *Section) MenuItems() ([]string, error) {
	return sec.site.nav.Locator(selSideMenuItem).AllInnerTexts()
}

// OpenMenuItem clicks the side menu entry with the given text.
func (sec *Section) OpenMenuItem(name string) error {
	return sec.site.nav.Locator(selSideMenuItem).
		Filter(playwright.LocatorFilterOptions{HasText: name}).
		First().
		Click()
}

func (sec *Section) OpenTextBox() (*TextBoxPage, error) {
	if err := sec.OpenMenuItem(MenuTextBox); err != nil {
		return nil, err
	}
	return sec.site.textBox()
}

func (sec *Section) OpenCheckBox() (*CheckBoxPage, error) {
	if err := sec.OpenMenuItem(MenuCheckBox); err != nil {
		return nil, err
	}
	return sec.site.checkBox()
}

func (sec *Section) OpenRadioButton() (*RadioButtonPage, error) {
	if err := sec.OpenMenuItem(MenuRadioButton); err != nil {
		return nil, err
	}
	return sec.site.radioButton()
}

func (sec *Section) OpenSlider() (*SliderPage, error) {
	if err := sec.OpenMenuItem(MenuSlider); err != nil {
		return nil, err
	}
	return sec.site.slider()
}

func (sec *Section) OpenDatePicker() (*DatePickerPage, error) {
	if err := sec.OpenMenuItem(MenuDatePicker); err != nil {
		return nil, err
	}
	return sec.site.datePicker()
}

// TextBoxPage is the "Text Box" form under Elements.
type TextBoxPage struct {
	nav *pages.Navigator
}

const (
	selFullName         = "#userName"
	selEmail            = "#userEmail"
	selCurrentAddress   = "#currentAddress"
	selPermanentAddress = "#permanentAddress"
	selSubmit           = "#submit"
	selOutput           = "#output"
)

// TextBox opens the Text Box page directly.
func (s *Site) TextBox() (*TextBoxPage, error) {
	if err := s.open("text-box"); err != nil {
		return nil, err
	}
	return s.textBox()
}

func (s *Site) textBox() (*TextBoxPage, error) {
	if err := s.ready("Text Box"); err != nil {
		return nil, err
	}
	return &TextBoxPage{nav: s.nav}, nil
}

// TextBoxForm is the data entered in the Text Box form.
type TextBoxForm struct {
	FullName         string
	Email            string
	CurrentAddress   string
	PermanentAddress string
}

func (p *TextBoxPage) Submit(form TextBoxForm) error {
	for _, f := range []struct{ selector, value string }{
		{selFullName, form.FullName},
		{selEmail, form.Email},
		{selCurrentAddress, form.CurrentAddress},
		{selPermanentAddress, form.PermanentAddress},
	} {
		if err := p.nav.Fill(f.selector, f.value); err != nil {
			return err
		}
	}
	return p.nav.Click(selSubmit)
}

// Output returns the text of the result block shown after submitting.
func (p *TextBoxPage) Output() (string, error) {
	if err := p.nav.WaitForVisible(selOutput, 0); err != nil {
		return "", err
	}
	return p.nav.Locator(selOutput).InnerText()
}

// CheckBoxPage is the "Check Box" tree under Elements.
type CheckBoxPage struct {
	nav *pages.Navigator
}

const (
	selExpandAll   = "button[title='Expand all']"
	selCollapseAll = "button[title='Collapse all']"
	selTreeLabel   = "label"
	selNodeTitle   = ".rct-title"
	selCheckbox    = ".rct-checkbox"
	selResultItems = "#result span.text-success"
)

func (s *Site) CheckBox() (*CheckBoxPage, error) {
	if err := s.open("checkbox"); err != nil {
		return nil, err
	}
	return s.checkBox()
}

func (s *Site) checkBox() (*CheckBoxPage, error) {
	if err := s.ready("Check Box"); err != nil {
		return nil, err
	}
	return &CheckBoxPage{nav: s.nav}, nil
}

func (p *CheckBoxPage) ExpandAll() error {
	return p.nav.Click(selExpandAll)
}

func (p *CheckBoxPage) CollapseAll() error {
	return p.nav.Click(selCollapseAll)
}

// Select ticks the tree node whose title contains itemName.
func (p *CheckBoxPage) Select(itemName string) error {
	page := p.nav.Page()
	title := page.Locator(selNodeTitle, playwright.PageLocatorOptions{HasText: itemName})
	return page.Locator(selTreeLabel).
		Filter(playwright.LocatorFilterOptions{Has: title}).
		First().
		Locator(selCheckbox).
		Click()
}

// SelectedItems returns the node identifiers listed in the result panel, for example
// "desktop" or "notes".
func (p *CheckBoxPage) SelectedItems() ([]string, error) {
	return p.nav.Locator(selResultItems).AllInnerTexts()
}

// RadioButtonPage is the "Radio Button" group under Elements. The "No" option is disabled on
// the site and cannot be selected.
type RadioButtonPage struct {
	nav *pages.Navigator
}

const (
	selYesLabel        = "label[for='yesRadio']"
	selImpressiveLabel = "label[for='impressiveRadio']"
	selNoInput         = "#noRadio"
	selRadioResult     = ".text-success"
)

func (s *Site) RadioButton() (*RadioButtonPage, error) {
	if err := s.open("radio-button"); err != nil {
		return nil, err
	}
	return s.radioButton()
}

func (s *Site) radioButton() (*RadioButtonPage, error) {
	if err := s.ready("Radio Button"); err != nil {
		return nil, err
	}
	return &RadioButtonPage{nav: s.nav}, nil
}

func (p *RadioButtonPage) SelectYes() error {
	return p.nav.Locator(selYesLabel).Check()
}

func (p *RadioButtonPage) SelectImpressive() error {
	return p.nav.Locator(selImpressiveLabel).Check()
}

// NoIsEnabled reports whether the "No" option can be chosen.
func (p *RadioButtonPage) NoIsEnabled() (bool, error) {
	return p.nav.Locator(selNoInput).IsEnabled()
}

// SelectedValue returns the confirmation text, or "" if nothing has been selected.
func (p *RadioButtonPage) SelectedValue() (string, error) {
	if !p.nav.IsVisible(selRadioResult) {
		return "", nil
	}
	return p.nav.Locator(selRadioResult).First().InnerText()
}

// SliderPage is the range slider under Widgets, which goes from 0 to 100 in steps of 1.
type SliderPage struct {
	nav *pages.Navigator
}

const (
	selSliderInput = "input[type='range']"
	selSliderValue = "#sliderValue"

	SliderMin = 0
	SliderMax = 100
)

func (s *Site) Slider() (*SliderPage, error) {
	if err := s.open("slider"); err != nil {
		return nil, err
	}
	return s.slider()
}

func (s *Site) slider() (*SliderPage, error) {
	if err := s.ready("Slider"); err != nil {
		return nil, err
	}
	return &SliderPage{nav: s.nav}, nil
}

// SetValue moves the slider with the keyboard: Home to reach the minimum, then one ArrowRight
// per step.
func (p *SliderPage) SetValue(value int) error {
	if value < SliderMin || value > SliderMax {
		return fmt.Errorf("slider value must be between %d and %d, got %d", SliderMin, SliderMax, value)
	}
	slider := p.nav.Locator(selSliderInput)
	if err := slider.Focus(); err != nil {
		return err
	}
	for _, key := range sliderKeys(value) {
		if err := slider.Press(key); err != nil {
			return err
		}
	}
	return nil
}

func sliderKeys(value int) []string {
	keys := []string{"Home"}
	for i := 0; i < value; i++ {
		keys = append(keys, "ArrowRight")
	}
	return keys
}

func (p *SliderPage) Value() (int, error) {
	text, err := p.nav.Locator(selSliderValue).InputValue()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(text))
}

// DatePickerPage is the "Date Picker" widget, which has a date input and a date and time input.
type DatePickerPage struct {
	nav *pages.Navigator
}

const (
	selDateInput     = "#datePickerMonthYearInput"
	selDateTimeInput = "#dateAndTimePickerInput"
)

func (s *Site) DatePicker() (*DatePickerPage, error) {
	if err := s.open("date-picker"); err != nil {
		return nil, err
	}
	return s.datePicker()
}

func (s *Site) datePicker() (*DatePickerPage, error) {
	if err := s.ready("Date Picker"); err != nil {
		return nil, err
	}
	return &DatePickerPage{nav: s.nav}, nil
}

// SetDate enters a date in MM/DD/YYYY form.
func (p *DatePickerPage) SetDate(value string) error {
	return p.enter(selDateInput, value)
}

// SetDateTime enters a value such as "December 25, 2025 10:30 AM".
func (p *DatePickerPage) SetDateTime(value string) error {
	return p.enter(selDateTimeInput, value)
}

func (p *DatePickerPage) enter(selector, value string) error {
	field := p.nav.Locator(selector)
	if err := field.Click(); err != nil {
		return err
	}
	if err := field.Fill(value); err != nil {
		return err
	}
	return field.Press("Enter")
}

func (p *DatePickerPage) Date() (string, error) {
	return p.nav.Locator(selDateInput).InputValue()
}

func (p *DatePickerPage) DateTime() (string, error) {
	return p.nav.Locator(selDateTimeInput).InputValue()
}
