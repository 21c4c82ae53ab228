package dialog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/avbelov/countbook/internal/messages"
	"github.com/avbelov/countbook/internal/model"
	"github.com/avbelov/countbook/internal/repository"
)

// Reports aggregate the expense tree; income entries are excluded.
const reportKind = model.ExpenseCategory

// instantReport handles /today, /yesterday and /current_month, which need no
// selector steps.
func (e *Engine) instantReport(ctx context.Context, user *model.User, state *State, command string) ([]Response, error) {
	book, responses, err := e.requireBook(ctx, user, state)
	if responses != nil || err != nil {
		return responses, err
	}
	now := time.Now()
	switch command {
	case "today":
		return e.dayReport(ctx, user, book, now.Year(), int(now.Month()), now.Day())
	case "yesterday":
		yesterday := now.AddDate(0, 0, -1)
		return e.dayReport(ctx, user, book, yesterday.Year(), int(yesterday.Month()), yesterday.Day())
	default:
		return e.monthReport(ctx, user, book, now.Year(), int(now.Month()))
	}
}

// startReport begins a /year, /month or /day drill-down with the year
// selector.
func (e *Engine) startReport(ctx context.Context, user *model.User, state *State, scope string) ([]Response, error) {
	book, responses, err := e.requireBook(ctx, user, state)
	if responses != nil || err != nil {
		return responses, err
	}
	state.Clear()
	state.Report = &ReportData{Scope: scope}
	state.Step = stepReportsYear
	return e.yearSelector(ctx, user, state, book)
}

func (e *Engine) yearSelector(ctx context.Context, user *model.User, state *State, book *model.Book) ([]Response, error) {
	years, err := e.tracker.TotalsPerYear(ctx, book.ID, reportKind)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		state.Clear()
		return []Response{reply(messages.ReportsNoData)}, nil
	}
	if len(years) == 1 {
		return e.selectYear(ctx, user, state, book, years[0].Period)
	}
	options := make([]Option, 0, len(years))
	for _, bucket := range years {
		value := strconv.Itoa(bucket.Period)
		options = append(options, Option{Value: value, Label: value})
	}
	return []Response{{Template: messages.ReportsSelectYear, Options: options, Columns: 4}}, nil
}

func (e *Engine) monthSelector(ctx context.Context, user *model.User, state *State, book *model.Book) ([]Response, error) {
	data := state.Report
	months, err := e.tracker.TotalsPerMonth(ctx, book.ID, reportKind, data.Year)
	if err != nil {
		return nil, err
	}
	if len(months) == 0 {
		state.Clear()
		return []Response{reply(messages.ReportsNoData)}, nil
	}
	if len(months) == 1 {
		return e.selectMonth(ctx, user, state, book, months[0].Period)
	}
	options := make([]Option, 0, len(months))
	for _, bucket := range months {
		options = append(options, Option{
			Value: strconv.Itoa(bucket.Period),
			Label: messages.MonthLabel(bucket.Period, user.Language),
		})
	}
	params := map[string]string{"year": strconv.Itoa(data.Year)}
	return []Response{{Template: messages.ReportsSelectMonth, Params: params, Options: options, Columns: 4}}, nil
}

func (e *Engine) daySelector(ctx context.Context, user *model.User, state *State, book *model.Book) ([]Response, error) {
	data := state.Report
	days, err := e.tracker.TotalsPerDay(ctx, book.ID, reportKind, data.Year, data.Month)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		state.Clear()
		return []Response{reply(messages.ReportsNoData)}, nil
	}
	if len(days) == 1 {
		return e.selectDay(ctx, user, state, book, days[0].Period)
	}
	options := make([]Option, 0, len(days))
	for _, bucket := range days {
		value := strconv.Itoa(bucket.Period)
		options = append(options, Option{Value: value, Label: value})
	}
	params := map[string]string{
		"month": messages.MonthLabel(data.Month, user.Language),
		"year":  strconv.Itoa(data.Year),
	}
	return []Response{{Template: messages.ReportsSelectDay, Params: params, Options: options, Columns: 6}}, nil
}

func (e *Engine) reportOption(ctx context.Context, user *model.User, state *State, option string) ([]Response, error) {
	if state.Report == nil {
		return e.invalid(state)
	}
	book, responses, err := e.requireBook(ctx, user, state)
	if responses != nil || err != nil {
		return responses, err
	}
	value, err := strconv.Atoi(option)
	if err != nil {
		return e.invalid(state)
	}
	switch state.Step {
	case stepReportsYear:
		return e.selectYear(ctx, user, state, book, value)
	case stepReportsMonth:
		return e.selectMonth(ctx, user, state, book, value)
	case stepReportsDay:
		return e.selectDay(ctx, user, state, book, value)
	}
	return e.invalid(state)
}

func (e *Engine) selectYear(ctx context.Context, user *model.User, state *State, book *model.Book, year int) ([]Response, error) {
	data := state.Report
	data.Year = year
	if data.Scope == "year" {
		return e.yearReport(ctx, user, state, book, year)
	}
	state.Step = stepReportsMonth
	return e.monthSelector(ctx, user, state, book)
}

func (e *Engine) selectMonth(ctx context.Context, user *model.User, state *State, book *model.Book, month int) ([]Response, error) {
	data := state.Report
	data.Month = month
	if data.Scope == "month" {
		state.Clear()
		return e.monthReport(ctx, user, book, data.Year, month)
	}
	state.Step = stepReportsDay
	return e.daySelector(ctx, user, state, book)
}

func (e *Engine) selectDay(ctx context.Context, user *model.User, state *State, book *model.Book, day int) ([]Response, error) {
	data := state.Report
	year, month := data.Year, data.Month
	state.Clear()
	return e.dayReport(ctx, user, book, year, month, day)
}

// yearReport sends the per-category chart for the year plus the per-month
// breakdown.
func (e *Engine) yearReport(ctx context.Context, user *model.User, state *State, book *model.Book, year int) ([]Response, error) {
	state.Clear()
	caption := e.reportCaption(user, book, strconv.Itoa(year))

	perCategory, err := e.tracker.TotalsPerCategory(ctx, book.ID, reportKind, &year, nil, nil)
	if err != nil {
		return nil, err
	}
	categoryChart, err := e.categoryChart(user, caption, perCategory)
	if err != nil {
		return nil, err
	}
	if categoryChart == nil {
		return []Response{reply(messages.ReportsNoData)}, nil
	}

	perMonth, err := e.tracker.TotalsPerMonth(ctx, book.ID, reportKind, year)
	if err != nil {
		return nil, err
	}
	monthChart, err := e.charts.PerPeriod(caption, perMonth, func(period int) string {
		return messages.MonthLabel(period, user.Language)
	})
	if err != nil {
		return nil, err
	}

	responses := []Response{{Template: messages.ReportsBookAndPeriod, Params: captionParams(book, strconv.Itoa(year)), Photo: categoryChart}}
	if monthChart != nil {
		responses = append(responses, Response{Template: messages.ReportsBookAndPeriod, Params: captionParams(book, strconv.Itoa(year)), Photo: monthChart})
	}
	return responses, nil
}

// monthReport sends the per-category chart for the month plus the per-day
// breakdown.
func (e *Engine) monthReport(ctx context.Context, user *model.User, book *model.Book, year, month int) ([]Response, error) {
	period := fmt.Sprintf("%s, %d", messages.MonthLabel(month, user.Language), year)
	caption := e.reportCaption(user, book, period)

	perCategory, err := e.tracker.TotalsPerCategory(ctx, book.ID, reportKind, &year, &month, nil)
	if err != nil {
		return nil, err
	}
	categoryChart, err := e.categoryChart(user, caption, perCategory)
	if err != nil {
		return nil, err
	}
	if categoryChart == nil {
		return []Response{reply(messages.ReportsNoData)}, nil
	}

	perDay, err := e.tracker.TotalsPerDay(ctx, book.ID, reportKind, year, month)
	if err != nil {
		return nil, err
	}
	dayChart, err := e.charts.PerPeriod(caption, perDay, strconv.Itoa)
	if err != nil {
		return nil, err
	}

	responses := []Response{{Template: messages.ReportsBookAndPeriod, Params: captionParams(book, period), Photo: categoryChart}}
	if dayChart != nil {
		responses = append(responses, Response{Template: messages.ReportsBookAndPeriod, Params: captionParams(book, period), Photo: dayChart})
	}
	return responses, nil
}

// dayReport sends the per-category chart for one day.
func (e *Engine) dayReport(ctx context.Context, user *model.User, book *model.Book, year, month, day int) ([]Response, error) {
	period := fmt.Sprintf("%d %s, %d", day, messages.MonthLabel(month, user.Language), year)
	caption := e.reportCaption(user, book, period)

	perCategory, err := e.tracker.TotalsPerCategory(ctx, book.ID, reportKind, &year, &month, &day)
	if err != nil {
		return nil, err
	}
	categoryChart, err := e.categoryChart(user, caption, perCategory)
	if err != nil {
		return nil, err
	}
	if categoryChart == nil {
		return []Response{reply(messages.ReportsNoData)}, nil
	}
	return []Response{{Template: messages.ReportsBookAndPeriod, Params: captionParams(book, period), Photo: categoryChart}}, nil
}

func (e *Engine) categoryChart(user *model.User, caption string, totals []repository.CategoryTotal) ([]byte, error) {
	return e.charts.PerCategory(caption, totals,
		messages.Text(messages.Uncategorized, user.Language, nil),
		messages.Text(messages.Total, user.Language, nil))
}

func (e *Engine) reportCaption(user *model.User, book *model.Book, period string) string {
	return messages.Text(messages.ReportsBookAndPeriod, user.Language, captionParams(book, period))
}

func captionParams(book *model.Book, period string) map[string]string {
	return map[string]string{
		"book_title": book.Title,
		"currency":   book.Currency,
		"period":     period,
	}
}
