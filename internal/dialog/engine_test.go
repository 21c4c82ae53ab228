package dialog

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/avbelov/countbook/internal/charts"
	"github.com/avbelov/countbook/internal/messages"
	"github.com/avbelov/countbook/internal/model"
	"github.com/avbelov/countbook/internal/repository"
	"github.com/avbelov/countbook/internal/service"
)

type fixture struct {
	engine  *Engine
	tracker *service.Tracker
	store   *Store
	repo    *repository.SQLiteRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo, err := repository.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	tracker := service.NewTracker(repo)
	store := NewStore(repo)
	return &fixture{
		engine:  NewEngine(tracker, store, charts.NewGenerator()),
		tracker: tracker,
		store:   store,
		repo:    repo,
	}
}

// seedEntry records an expense on a fixed date, bypassing the dialog flow.
func (f *fixture) seedEntry(t *testing.T, userID, bookID, categoryID int64, amount float64, year, month, day int) {
	t.Helper()
	created := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	entry := model.NewEntry(userID, bookID, categoryID, model.ExpenseCategory, amount, created)
	if err := f.repo.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
}

func (f *fixture) command(t *testing.T, userID int64, command, args string) []Response {
	t.Helper()
	return f.handle(t, Turn{UserID: userID, Language: "en", Command: command, Args: args})
}

func (f *fixture) text(t *testing.T, userID int64, text string) []Response {
	t.Helper()
	return f.handle(t, Turn{UserID: userID, Language: "en", Text: text})
}

func (f *fixture) option(t *testing.T, userID int64, option string) []Response {
	t.Helper()
	return f.handle(t, Turn{UserID: userID, Language: "en", Option: option})
}

func (f *fixture) handle(t *testing.T, turn Turn) []Response {
	t.Helper()
	responses, err := f.engine.Handle(context.Background(), turn)
	if err != nil {
		t.Fatalf("Handle(%+v): %v", turn, err)
	}
	return responses
}

func (f *fixture) step(t *testing.T, userID int64) string {
	t.Helper()
	state, err := f.store.Load(context.Background(), userID)
	if err != nil {
		t.Fatalf("Load state: %v", err)
	}
	return state.Step
}

// activeBook seeds a user with an owned, activated book without going through
// the dialog flows.
func (f *fixture) activeBook(t *testing.T, userID int64) *model.Book {
	t.Helper()
	ctx := context.Background()
	user, err := f.tracker.EnsureUser(ctx, userID, "user", "Test User", "en")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	book, err := f.tracker.CreateBook(ctx, userID, "Family", "USD", false, "en")
	if err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	if err := f.tracker.SetActiveBook(ctx, user, book.ID); err != nil {
		t.Fatalf("SetActiveBook: %v", err)
	}
	return book
}

func assertTemplate(t *testing.T, responses []Response, i int, want messages.ID) {
	t.Helper()
	if len(responses) <= i {
		t.Fatalf("got %d responses, want index %d (%v)", len(responses), i, want)
	}
	if responses[i].Template != want {
		t.Fatalf("responses[%d].Template = %q, want %q", i, responses[i].Template, want)
	}
}

func hasOption(responses []Response, i int, value string) bool {
	if len(responses) <= i {
		return false
	}
	for _, option := range responses[i].Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

func TestStartCommand(t *testing.T) {
	f := newFixture(t)
	responses := f.command(t, 1, "start", "")
	assertTemplate(t, responses, 0, messages.Start)
	if responses[0].Text == "" {
		t.Fatal("response text not rendered")
	}
	if step := f.step(t, 1); step != "" {
		t.Fatalf("state after /start = %q, want idle", step)
	}
}

func TestAmountEntryRequiresActiveBook(t *testing.T) {
	f := newFixture(t)
	responses := f.text(t, 1, "12.50")
	assertTemplate(t, responses, 0, messages.ActiveBookRequired)
}

func TestAmountEntryFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.activeBook(t, 1)
	food, err := f.tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, 0, "Food")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	restaurants, err := f.tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, food.ID, "Restaurants")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if responses := f.text(t, 1, "0"); len(responses) != 1 || responses[0].Template != messages.ExpensesZeroAmount {
		t.Fatalf("zero amount responses = %+v", responses)
	}

	responses := f.text(t, 1, "12.50")
	assertTemplate(t, responses, 0, messages.ExpensesAddAmount)
	assertTemplate(t, responses, 1, messages.ExpensesRootSelect)
	if !hasOption(responses, 1, strconv.FormatInt(food.ID, 10)) || !hasOption(responses, 1, optionSubmit) {
		t.Fatalf("root selector options = %+v", responses[1].Options)
	}
	if step := f.step(t, 1); step != stepEntryCategory {
		t.Fatalf("step = %q", step)
	}

	responses = f.option(t, 1, strconv.FormatInt(food.ID, 10))
	assertTemplate(t, responses, 0, messages.ExpensesCategorySelect)
	if !hasOption(responses, 0, strconv.FormatInt(restaurants.ID, 10)) || !hasOption(responses, 0, optionBack) {
		t.Fatalf("category selector options = %+v", responses[0].Options)
	}

	responses = f.option(t, 1, strconv.FormatInt(restaurants.ID, 10))
	assertTemplate(t, responses, 0, messages.ExpensesCategorySelect)

	responses = f.option(t, 1, optionSubmit)
	assertTemplate(t, responses, 0, messages.ExpensesCreatedInCategory)
	if responses[0].Params["category_title"] != "Restaurants" || responses[0].Params["amount"] != "12.5" {
		t.Fatalf("confirmation params = %+v", responses[0].Params)
	}
	if step := f.step(t, 1); step != "" {
		t.Fatalf("state after submit = %q, want idle", step)
	}

	year := 0
	totals, err := f.tracker.TotalsPerYear(ctx, book.ID, model.ExpenseCategory)
	if err != nil || len(totals) != 1 {
		t.Fatalf("TotalsPerYear = (%+v, %v)", totals, err)
	}
	year = totals[0].Period
	perCategory, err := f.tracker.TotalsPerCategory(ctx, book.ID, model.ExpenseCategory, &year, nil, nil)
	if err != nil || len(perCategory) != 1 {
		t.Fatalf("TotalsPerCategory = (%+v, %v)", perCategory, err)
	}
	if perCategory[0].CategoryID != restaurants.ID || perCategory[0].Amount != 12.5 {
		t.Fatalf("recorded bucket = %+v", perCategory[0])
	}
}

func TestAmountEntrySubmitUncategorized(t *testing.T) {
	f := newFixture(t)
	f.activeBook(t, 1)

	f.text(t, 1, "7")
	responses := f.option(t, 1, optionSubmit)
	assertTemplate(t, responses, 0, messages.ExpensesCreated)
	if _, ok := responses[0].Params["category_title"]; ok {
		t.Fatalf("uncategorized confirmation names a category: %+v", responses[0].Params)
	}
}

func TestBookCreationFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	responses := f.command(t, 1, "books", "")
	assertTemplate(t, responses, 0, messages.BooksWelcome)
	if !hasOption(responses, 0, optionAdd) {
		t.Fatalf("books list options = %+v", responses[0].Options)
	}

	responses = f.option(t, 1, optionAdd)
	assertTemplate(t, responses, 0, messages.BooksAddTitle)

	// Invalid titles keep the step for a retry.
	responses = f.text(t, 1, "T")
	assertTemplate(t, responses, 0, messages.BooksTitleTooShort)
	if step := f.step(t, 1); step != stepBooksTitle {
		t.Fatalf("step after bad title = %q", step)
	}

	responses = f.text(t, 1, "Trip")
	assertTemplate(t, responses, 0, messages.BooksSetCurrency)
	if !hasOption(responses, 0, "EUR") {
		t.Fatalf("currency options = %+v", responses[0].Options)
	}

	responses = f.option(t, 1, "EUR")
	assertTemplate(t, responses, 0, messages.BooksCreateDefaultCategories)

	responses = f.option(t, 1, optionYes)
	assertTemplate(t, responses, 0, messages.BooksSuccessfullyCreated)
	if responses[0].Params["book_uid"] == "" {
		t.Fatalf("creation confirmation lacks join token: %+v", responses[0].Params)
	}
	if step := f.step(t, 1); step != "" {
		t.Fatalf("state after creation = %q, want idle", step)
	}

	books, err := f.tracker.Books(ctx, 1)
	if err != nil || len(books) != 1 {
		t.Fatalf("Books = (%+v, %v)", books, err)
	}
	roots, err := f.tracker.Subcategories(ctx, books[0].ID, model.ExpenseCategory, 0)
	if err != nil || len(roots) == 0 {
		t.Fatalf("default categories not imported: (%+v, %v)", roots, err)
	}
}

func TestJoinCommand(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.activeBook(t, 1)

	responses := f.command(t, 2, "join", "1:bogus")
	assertTemplate(t, responses, 0, messages.InvalidRequest)

	responses = f.command(t, 2, "join", book.UID)
	assertTemplate(t, responses, 0, messages.BooksConnected)

	members, err := f.tracker.BookMembers(ctx, 1, book.ID)
	if err != nil || len(members) != 1 {
		t.Fatalf("BookMembers = (%+v, %v)", members, err)
	}
	if err := f.tracker.SetMemberDisabled(ctx, 1, book.ID, members[0].ID, true); err != nil {
		t.Fatalf("SetMemberDisabled: %v", err)
	}

	responses = f.command(t, 2, "join", book.UID)
	assertTemplate(t, responses, 0, messages.BooksDisabled)
}

func TestCommandResetsFlowAndStrayOptionsRejected(t *testing.T) {
	f := newFixture(t)
	f.activeBook(t, 1)

	f.command(t, 1, "books", "")
	if step := f.step(t, 1); step != stepBooksList {
		t.Fatalf("step = %q", step)
	}

	f.command(t, 1, "start", "")
	if step := f.step(t, 1); step != "" {
		t.Fatalf("command did not reset state: %q", step)
	}

	responses := f.option(t, 1, optionAdd)
	assertTemplate(t, responses, 0, messages.InvalidRequest)

	// Plain text outside any flow is ignored.
	if responses := f.text(t, 1, "hello there"); responses != nil {
		t.Fatalf("stray text answered: %+v", responses)
	}
}

func TestCategoryEditingFlow(t *testing.T) {
	f := newFixture(t)
	book := f.activeBook(t, 1)

	f.command(t, 1, "books", "")
	responses := f.option(t, 1, ownBookPrefix+strconv.FormatInt(book.ID, 10))
	assertTemplate(t, responses, 0, messages.BooksSelected)

	responses = f.option(t, 1, optionCategories)
	assertTemplate(t, responses, 0, messages.CategoriesTypeWelcome)

	responses = f.option(t, 1, string(model.ExpenseCategory))
	assertTemplate(t, responses, 0, messages.CategoriesWelcome)

	f.option(t, 1, optionAdd)
	responses = f.text(t, 1, "Food")
	assertTemplate(t, responses, 0, messages.CategoriesCreated)
	assertTemplate(t, responses, 1, messages.CategoriesWelcome)
	if len(responses[1].Options) == 0 {
		t.Fatal("category screen has no options")
	}
	foodValue := responses[1].Options[0].Value

	// Descend and add a child.
	responses = f.option(t, 1, foodValue)
	assertTemplate(t, responses, 0, messages.CategoriesWelcomeToCategory)
	if !hasOption(responses, 0, optionRemove) || !hasOption(responses, 0, optionTitle) {
		t.Fatalf("node options = %+v", responses[0].Options)
	}
	f.option(t, 1, optionAdd)
	responses = f.text(t, 1, "Restaurants")
	assertTemplate(t, responses, 0, messages.CategoriesCreated)

	// Duplicate sibling is rejected and the step survives.
	f.option(t, 1, optionAdd)
	responses = f.text(t, 1, "Restaurants")
	assertTemplate(t, responses, 0, messages.CategoriesAlreadyExists)
	if step := f.step(t, 1); step != stepBooksCategoryTitle {
		t.Fatalf("step after duplicate = %q", step)
	}
	responses = f.text(t, 1, "Groceries")
	assertTemplate(t, responses, 0, messages.CategoriesCreated)

	// Remove cascades and pops to the parent listing.
	responses = f.option(t, 1, optionRemove)
	assertTemplate(t, responses, 0, messages.CategoriesDeleted)
	assertTemplate(t, responses, 1, messages.CategoriesWelcome)

	roots, err := f.tracker.Subcategories(context.Background(), book.ID, model.ExpenseCategory, 0)
	if err != nil || len(roots) != 0 {
		t.Fatalf("roots after cascade = (%+v, %v)", roots, err)
	}
}

func TestReportsNoData(t *testing.T) {
	f := newFixture(t)
	f.activeBook(t, 1)

	responses := f.command(t, 1, "year", "")
	assertTemplate(t, responses, 0, messages.ReportsNoData)
	if step := f.step(t, 1); step != "" {
		t.Fatalf("state after empty report = %q, want idle", step)
	}

	responses = f.command(t, 1, "today", "")
	assertTemplate(t, responses, 0, messages.ReportsNoData)
}

func TestReportDrillDown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.activeBook(t, 1)
	food, err := f.tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, 0, "Food")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	f.seedEntry(t, 1, book.ID, food.ID, 10, 2024, 3, 15)
	f.seedEntry(t, 1, book.ID, 0, 5, 2024, 3, 20)
	f.seedEntry(t, 1, book.ID, food.ID, 7, 2024, 4, 3)

	pngHeader := []byte{0x89, 'P', 'N', 'G'}

	// A single year with data skips the year selector.
	responses := f.command(t, 1, "day", "")
	assertTemplate(t, responses, 0, messages.ReportsSelectMonth)
	if responses[0].Params["year"] != "2024" {
		t.Fatalf("month selector params = %+v", responses[0].Params)
	}
	if !hasOption(responses, 0, "3") || !hasOption(responses, 0, "4") {
		t.Fatalf("month options = %+v", responses[0].Options)
	}
	if step := f.step(t, 1); step != stepReportsMonth {
		t.Fatalf("step = %q", step)
	}

	responses = f.option(t, 1, "3")
	assertTemplate(t, responses, 0, messages.ReportsSelectDay)
	if !hasOption(responses, 0, "15") || !hasOption(responses, 0, "20") {
		t.Fatalf("day options = %+v", responses[0].Options)
	}

	// Day 15 has a single category bucket and must still render a chart.
	responses = f.option(t, 1, "15")
	assertTemplate(t, responses, 0, messages.ReportsBookAndPeriod)
	if responses[0].Params["period"] != "15 March, 2024" {
		t.Fatalf("report params = %+v", responses[0].Params)
	}
	if !bytes.HasPrefix(responses[0].Photo, pngHeader) {
		t.Fatal("day report photo is not a PNG")
	}
	if step := f.step(t, 1); step != "" {
		t.Fatalf("state after report = %q, want idle", step)
	}

	// A month report carries the per-category and per-day charts.
	f.command(t, 1, "month", "")
	responses = f.option(t, 1, "4")
	assertTemplate(t, responses, 0, messages.ReportsBookAndPeriod)
	assertTemplate(t, responses, 1, messages.ReportsBookAndPeriod)
	if responses[0].Params["period"] != "April, 2024" {
		t.Fatalf("report params = %+v", responses[0].Params)
	}
	if !bytes.HasPrefix(responses[0].Photo, pngHeader) || !bytes.HasPrefix(responses[1].Photo, pngHeader) {
		t.Fatal("month report photos are not PNGs")
	}
	if step := f.step(t, 1); step != "" {
		t.Fatalf("state after report = %q, want idle", step)
	}
}

func TestAmountEntryBackAtRootRerenders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.activeBook(t, 1)
	food, err := f.tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, 0, "Food")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	f.text(t, 1, "5")
	f.option(t, 1, strconv.FormatInt(food.ID, 10))

	responses := f.option(t, 1, optionBack)
	assertTemplate(t, responses, 0, messages.ExpensesRootSelect)

	// Back on the root selector stays on it instead of aborting the flow.
	responses = f.option(t, 1, optionBack)
	assertTemplate(t, responses, 0, messages.ExpensesRootSelect)
	if !hasOption(responses, 0, strconv.FormatInt(food.ID, 10)) || !hasOption(responses, 0, optionSubmit) {
		t.Fatalf("root selector options = %+v", responses[0].Options)
	}
	if step := f.step(t, 1); step != stepEntryCategory {
		t.Fatalf("step = %q", step)
	}
}

// When the remembered node has been deleted underneath the flow, the selectors
// fall back to the root listing rather than the vanished node's children.
func TestSelectorsFallBackWhenNodeVanishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	book := f.activeBook(t, 1)
	user, err := f.tracker.EnsureUser(ctx, 1, "", "", "en")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	food, err := f.tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, 0, "Food")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	trips, err := f.tracker.CreateCategory(ctx, book.ID, model.ExpenseCategory, 0, "Trips")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if _, err := f.tracker.DeleteCategory(ctx, book.ID, model.ExpenseCategory, trips.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	screen, err := f.engine.entryCategoryScreen(ctx, user, book, &EntryData{Amount: 5, CategoryID: trips.ID})
	if err != nil {
		t.Fatalf("entryCategoryScreen: %v", err)
	}
	if screen.Template != messages.ExpensesRootSelect {
		t.Fatalf("template = %q", screen.Template)
	}
	if !hasOption([]Response{screen}, 0, strconv.FormatInt(food.ID, 10)) {
		t.Fatalf("fallback selector options = %+v", screen.Options)
	}

	data := &BooksData{BookID: book.ID, Kind: model.ExpenseCategory, ParentID: trips.ID}
	screen, err = f.engine.categoryScreen(ctx, user, book, data)
	if err != nil {
		t.Fatalf("categoryScreen: %v", err)
	}
	if screen.Template != messages.CategoriesWelcome {
		t.Fatalf("template = %q", screen.Template)
	}
	if !hasOption([]Response{screen}, 0, strconv.FormatInt(food.ID, 10)) {
		t.Fatalf("fallback listing options = %+v", screen.Options)
	}
	if hasOption([]Response{screen}, 0, optionRemove) || hasOption([]Response{screen}, 0, optionTitle) {
		t.Fatalf("root listing carries node actions: %+v", screen.Options)
	}
	if data.ParentID != 0 {
		t.Fatalf("ParentID = %d, want 0", data.ParentID)
	}
}

func TestSettingsFlow(t *testing.T) {
	f := newFixture(t)

	responses := f.command(t, 1, "settings", "")
	assertTemplate(t, responses, 0, messages.SettingsWelcome)
	if !hasOption(responses, 0, optionLanguage) {
		t.Fatalf("settings options = %+v", responses[0].Options)
	}

	responses = f.option(t, 1, optionLanguage)
	assertTemplate(t, responses, 0, messages.SettingsSelectLanguage)
	if !hasOption(responses, 0, "ru") {
		t.Fatalf("language options = %+v", responses[0].Options)
	}

	responses = f.option(t, 1, "ru")
	assertTemplate(t, responses, 0, messages.SettingsLanguageUpdated)
	assertTemplate(t, responses, 1, messages.SettingsWelcome)

	user, err := f.tracker.EnsureUser(context.Background(), 1, "", "", "en")
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if user.Language != "ru" {
		t.Fatalf("language = %q, want ru", user.Language)
	}
}
