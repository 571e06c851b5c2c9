package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/kioku/internal/cli/formatter"
	"github.com/alexanderramin/kioku/internal/domain"
	"github.com/alexanderramin/kioku/internal/search"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// kiokuHuhTheme returns a huh theme using the formatter palette.
func kiokuHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateLevel accepts empty or a level number.
func validateLevel(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("enter a level number")
	}
	return nil
}

// searchFormValues is the editable copy of search parameters bound to the
// form fields.
type searchFormValues struct {
	Text      string
	MinLevel  string
	MaxLevel  string
	Types     []string
	StageTags []string
	Order     string
}

func newSearchFormValues(p search.Parameters) *searchFormValues {
	v := &searchFormValues{
		Text:      p.Text,
		StageTags: append([]string(nil), p.StageTags...),
		Order:     p.Order.Description(),
	}
	if p.MinLevel > 0 {
		v.MinLevel = strconv.Itoa(p.MinLevel)
	}
	if p.MaxLevel > 0 {
		v.MaxLevel = strconv.Itoa(p.MaxLevel)
	}
	for _, t := range p.Types {
		v.Types = append(v.Types, string(t))
	}
	return v
}

// parameters converts the form values back. Unknown orders keep def.
func (v *searchFormValues) parameters(def search.SortOrder) (search.Parameters, error) {
	p := search.Parameters{
		Text:      strings.TrimSpace(v.Text),
		StageTags: append([]string(nil), v.StageTags...),
		Order:     search.ForDescription(v.Order, def),
	}
	var err error
	if p.MinLevel, err = atoiOrZero(v.MinLevel); err != nil {
		return p, fmt.Errorf("min level: %w", err)
	}
	if p.MaxLevel, err = atoiOrZero(v.MaxLevel); err != nil {
		return p, fmt.Errorf("max level: %w", err)
	}
	for _, t := range v.Types {
		typ, err := domain.ParseSubjectType(t)
		if err != nil {
			return p, err
		}
		p.Types = append(p.Types, typ)
	}
	return p, p.Validate()
}

func atoiOrZero(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

var stageTagOptions = []string{"locked", "initial", "apprentice", "guru", "master", "enlightened", "burned"}

// newSearchForm builds the advanced search form edited from the search row.
func newSearchForm(v *searchFormValues) *huh.Form {
	orders := make([]huh.Option[string], 0, len(search.AllOrders))
	for _, d := range search.Descriptions() {
		orders = append(orders, huh.NewOption(d, d))
	}
	types := []huh.Option[string]{
		huh.NewOption("Radicals", string(domain.SubjectRadical)),
		huh.NewOption("Kanji", string(domain.SubjectKanji)),
		huh.NewOption("Vocabulary", string(domain.SubjectVocabulary)),
	}
	stages := make([]huh.Option[string], 0, len(stageTagOptions))
	for _, tag := range stageTagOptions {
		stages = append(stages, huh.NewOption(tag, tag))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Text").
				Description("Characters or meaning").
				Value(&v.Text),
			huh.NewInput().
				Title("Min level").
				Placeholder("any").
				Value(&v.MinLevel).
				Validate(validateLevel),
			huh.NewInput().
				Title("Max level").
				Placeholder("any").
				Value(&v.MaxLevel).
				Validate(validateLevel),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Types").
				Options(types...).
				Value(&v.Types),
			huh.NewMultiSelect[string]().
				Title("SRS stages").
				Options(stages...).
				Value(&v.StageTags),
			huh.NewSelect[string]().
				Title("Sort order").
				Options(orders...).
				Value(&v.Order),
		),
	).WithTheme(kiokuHuhTheme()).WithShowHelp(false)
}
