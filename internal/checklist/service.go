// Package checklist tracks which items each booth has received
package checklist

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
	logger "github.com/sirupsen/logrus"
)

// Filter sentinels
const (
	AllSections = "All sections"
	AllStates   = "All"
	Checked     = "Checked"
	Unchecked   = "Unchecked"
)

// HeaderRow is the sheet row carrying column names; row 1 is a banner
const HeaderRow = 2

// Filter narrows the checklist
type Filter struct {
	Section string `json:"section"`
	State   string `json:"state"`
	Search  string `json:"search"`
}

// Progress counts checked items
type Progress struct {
	Total   int `json:"total"`
	Checked int `json:"checked"`
	Percent int `json:"percent"`
}

// Booth groups the items of one booth
type Booth struct {
	Booth     string                 `json:"booth"`
	Section   string                 `json:"section"`
	Exhibitor string                 `json:"exhibitor"`
	Progress  Progress               `json:"progress"`
	Items     []models.ChecklistItem `json:"items"`
}

// Toggle identifies one checklist item to check or uncheck
type Toggle struct {
	Worksheet string `json:"worksheet"`
	Booth     string `json:"booth"`
	ItemName  string `json:"itemName"`
	Checked   bool   `json:"checked"`
}

// Service reads and updates the checklist spreadsheet
type Service struct {
	book *sheets.Book
	now  func() time.Time
}

// NewService creates the checklist service over its own spreadsheet
func NewService(book *sheets.Book) *Service {
	return &Service{book: book.WithHeaderRow(HeaderRow), now: time.Now}
}

// Sections lists "Section ..." worksheets and the "No Section" worksheet
func (s *Service) Sections(ctx context.Context) ([]string, error) {
	names, err := s.book.Worksheets(ctx)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, n := range names {
		if models.IsSectionWorksheet(n) || n == models.NoSectionWorksheet {
			out = append(out, n)
		}
	}
	return out, nil
}

// Items loads the items of one section, or of every section for AllSections
func (s *Service) Items(ctx context.Context, section string) ([]models.ChecklistItem, error) {
	sections, err := s.Sections(ctx)
	if err != nil {
		return nil, err
	}
	if section != "" && section != AllSections {
		if !contains(sections, section) {
			return nil, fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, section)
		}
		sections = []string{section}
	}

	items := []models.ChecklistItem{}
	for _, ws := range sections {
		t, err := s.book.Table(ctx, ws)
		if err != nil {
			return nil, err
		}
		items = append(items, Parse(ws, t)...)
	}
	return items, nil
}

// Parse converts checklist rows of one worksheet
func Parse(worksheet string, t *sheets.Table) []models.ChecklistItem {
	items := make([]models.ChecklistItem, 0, t.Len())
	for i := range t.Rows {
		qty, _ := strconv.Atoi(strings.TrimSpace(t.Value(i, models.ColCLQuantity)))
		items = append(items, models.ChecklistItem{
			Worksheet:           worksheet,
			Booth:               t.Value(i, models.ColCLBooth),
			Section:             t.Value(i, models.ColCLSection),
			Exhibitor:           t.Value(i, models.ColCLExhibitor),
			ItemName:            t.Value(i, models.ColCLItemName),
			Checked:             parseBool(t.Value(i, models.ColCLStatus)),
			Quantity:            qty,
			SpecialInstructions: t.Value(i, models.ColCLInstructions),
			Date:                t.Value(i, models.ColCLDate),
			Hour:                t.Value(i, models.ColCLHour),
		})
	}
	return items
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// ApplyFilter narrows items by checked state and search. An all-digit query
// matches the booth number exactly, anything else matches it as a substring.
// Exhibitor names always match as a case-insensitive substring.
func ApplyFilter(items []models.ChecklistItem, f Filter) []models.ChecklistItem {
	query := strings.TrimSpace(f.Search)
	lower := strings.ToLower(query)
	exact := query != "" && isDigits(query)

	out := []models.ChecklistItem{}
	for _, it := range items {
		switch f.State {
		case Checked:
			if !it.Checked {
				continue
			}
		case Unchecked:
			if it.Checked {
				continue
			}
		}
		if query != "" {
			var hit bool
			if exact {
				hit = strings.TrimSpace(it.Booth) == query
			} else {
				hit = strings.Contains(strings.ToLower(it.Booth), lower)
			}
			hit = hit || strings.Contains(strings.ToLower(it.Exhibitor), lower)
			if !hit {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// ComputeProgress counts checked items
func ComputeProgress(items []models.ChecklistItem) Progress {
	p := Progress{Total: len(items)}
	for _, it := range items {
		if it.Checked {
			p.Checked++
		}
	}
	if p.Total > 0 {
		p.Percent = p.Checked * 100 / p.Total
	}
	return p
}

// GroupByBooth groups items by booth, section and exhibitor in first-seen order
func GroupByBooth(items []models.ChecklistItem) []Booth {
	type groupKey struct{ booth, section, exhibitor string }
	idx := map[groupKey]int{}
	booths := []Booth{}
	for _, it := range items {
		k := groupKey{it.Booth, it.Section, it.Exhibitor}
		j, ok := idx[k]
		if !ok {
			j = len(booths)
			idx[k] = j
			booths = append(booths, Booth{Booth: it.Booth, Section: it.Section, Exhibitor: it.Exhibitor})
		}
		booths[j].Items = append(booths[j].Items, it)
	}
	for i := range booths {
		booths[i].Progress = ComputeProgress(booths[i].Items)
	}
	return booths
}

// SetChecked writes the new state of one item with the time it changed
func (s *Service) SetChecked(ctx context.Context, tg Toggle) error {
	sections, err := s.Sections(ctx)
	if err != nil {
		return err
	}
	if !contains(sections, tg.Worksheet) {
		return fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, tg.Worksheet)
	}

	now := s.now()
	match := func(r sheets.Row) bool {
		return r.Value(models.ColCLBooth) == tg.Booth && r.Value(models.ColCLItemName) == tg.ItemName
	}
	set := map[string]string{
		models.ColCLStatus: strings.ToUpper(strconv.FormatBool(tg.Checked)),
		models.ColCLDate:   now.Format(models.ChecklistDateLayout),
		models.ColCLHour:   now.Format(models.ChecklistHourLayout),
	}
	n, err := s.book.UpdateFirst(ctx, tg.Worksheet, match, set)
	if err != nil {
		return err
	}
	if n > 1 {
		logger.Warnf("⚠️ %d checklist rows for booth %s item %q, only the first was changed", n, tg.Booth, tg.ItemName)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Booth loads every item of one booth across all sections
func (s *Service) Booth(ctx context.Context, booth string) (*Booth, error) {
	items, err := s.Items(ctx, AllSections)
	if err != nil {
		return nil, err
	}
	mine := []models.ChecklistItem{}
	for _, it := range items {
		if strings.TrimSpace(it.Booth) == booth {
			mine = append(mine, it)
		}
	}
	if len(mine) == 0 {
		return nil, fmt.Errorf("%w: booth %s", sheets.ErrNoMatch, booth)
	}
	b := &Booth{Booth: booth, Section: mine[0].Section, Exhibitor: mine[0].Exhibitor, Items: mine}
	b.Progress = ComputeProgress(mine)
	return b, nil
}
