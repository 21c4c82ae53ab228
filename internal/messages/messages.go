// Package messages holds the localized message catalog. The engine only ever
// references template ids; rendering substitutes {name} parameters.
package messages

import "strings"

type ID string

const (
	Start              ID = "start"
	InvalidRequest     ID = "invalid_request"
	ActiveBookRequired ID = "active_book_required"

	BooksWelcome                 ID = "books_welcome"
	BooksAddTitle                ID = "books_add_title"
	BooksTitleUpdated            ID = "books_title_updated"
	BooksTitleTooShort           ID = "books_title_too_short"
	BooksTitleTooLong            ID = "books_title_too_long"
	BooksTitleAvoidSlash         ID = "books_title_avoid_slash"
	BooksAlreadyExists           ID = "books_already_exists"
	BooksSetCurrency             ID = "books_set_currency"
	BooksCurrencyUpdated         ID = "books_currency_updated"
	BooksCreateDefaultCategories ID = "books_create_default_categories"
	BooksSuccessfullyCreated     ID = "books_successfully_created"
	BooksSelected                ID = "books_selected"
	BooksConnected               ID = "books_connected"
	BooksDisconnected            ID = "books_disconnected"
	BooksDeleted                 ID = "books_deleted"
	BooksDisabled                ID = "books_disabled"
	BooksMembers                 ID = "books_members"
	BooksNoMembers               ID = "books_no_members"
	BooksMemberDisabled          ID = "books_member_disabled"
	BooksMemberEnabled           ID = "books_member_enabled"

	CategoriesTypeWelcome       ID = "categories_type_welcome"
	CategoriesWelcome           ID = "categories_welcome"
	CategoriesWelcomeToCategory ID = "categories_welcome_to_category"
	CategoriesAddTitle          ID = "categories_add_title"
	CategoriesAlreadyExists     ID = "categories_already_exists"
	CategoriesCreated           ID = "categories_successfully_created"
	CategoriesTitleUpdated      ID = "categories_title_updated"
	CategoriesTitleTooShort     ID = "categories_title_too_short"
	CategoriesTitleTooLong      ID = "categories_title_too_long"
	CategoriesTitleAvoidSlash   ID = "categories_title_avoid_slash"
	CategoriesDeleted           ID = "categories_deleted"

	ExpensesAddAmount         ID = "expenses_add_amount"
	ExpensesZeroAmount        ID = "expenses_zero_amount"
	ExpensesRootSelect        ID = "expenses_root_select_category"
	ExpensesCategorySelect    ID = "expenses_category_select_category"
	ExpensesCreated           ID = "expenses_successfully_created"
	ExpensesCreatedInCategory ID = "expenses_successfully_created_in_category"

	ReportsBookAndPeriod ID = "reports_book_and_period"
	ReportsNoData        ID = "reports_no_data"
	ReportsSelectYear    ID = "reports_select_year"
	ReportsSelectMonth   ID = "reports_select_month"
	ReportsSelectDay     ID = "reports_select_day"
	Total                ID = "total"
	Uncategorized        ID = "uncategorized"

	SettingsWelcome         ID = "settings_welcome"
	SettingsSelectLanguage  ID = "settings_select_language"
	SettingsLanguageUpdated ID = "settings_language_updated"

	ButtonBack        ID = "button_back"
	ButtonAddBook     ID = "button_add_book"
	ButtonAddCategory ID = "button_add_category"
	ButtonJoin        ID = "button_join"
	ButtonDisconnect  ID = "button_disconnect"
	ButtonTitle       ID = "button_title"
	ButtonCurrency    ID = "button_currency"
	ButtonCategories  ID = "button_categories"
	ButtonMembers     ID = "button_members"
	ButtonRemove      ID = "button_remove"
	ButtonYes         ID = "button_yes"
	ButtonNo          ID = "button_no"
	ButtonIncome      ID = "button_income"
	ButtonExpense     ID = "button_expense"
	ButtonSubmit      ID = "button_submit"
	ButtonLanguage    ID = "button_language"
)

// Text renders a template for the given language, falling back to the
// default variant. {name} placeholders are substituted from params.
func Text(id ID, lang string, params map[string]string) string {
	variants, ok := catalog[id]
	if !ok {
		return string(id)
	}
	text, ok := variants[lang]
	if !ok {
		text = variants["default"]
	}
	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

var catalog = map[ID]map[string]string{
	Start: {
		"default": "Hey! I am Count Book, a bot for shared expense tracking.\n\n" +
			"Create or join a book with /books, send a bare number to record an " +
			"amount, and pull reports with /today, /month or /year.",
		"ru": "Привет! Я Count Book, бот для совместного учета расходов.\n\n" +
			"Создайте или выберите книгу через /books, отправьте число, чтобы " +
			"записать расход, и смотрите отчеты через /today, /month или /year.",
	},
	InvalidRequest: {
		"default": "Invalid request.",
		"ru":      "Некорректный запрос.",
	},
	ActiveBookRequired: {
		"default": "Make sure that you are joined existing book. You can do it through the menu " +
			"<code>/books</code> or by sending relevant command.",
		"ru": "Кажется, вы не выбрали активную книгу. Сделайте это через меню " +
			"<code>/books</code>, или отправив соответствующую команду.",
	},

	BooksWelcome: {
		"default": "Hey. Let's configure books here. Select any existing book or tap " +
			"<code>+ Add Book</code> to create a new one.",
		"ru": "Давай настроим книги учета затрат. Выбери существующую книгу " +
			"или тапни <code>+ Создать</code>, чтобы создать новую.",
	},
	BooksAddTitle: {
		"default": "Please send the title of the book.",
		"ru":      "Отправьте название учетной книги.",
	},
	BooksTitleUpdated: {
		"default": "The title successfully updated.",
		"ru":      "Название обновлено.",
	},
	BooksTitleTooShort: {
		"default": "Seems the title is too short. Try to enter something longer.",
		"ru":      "Кажется, название слишком короткое. Сделайте его чуток длиннее.",
	},
	BooksTitleTooLong: {
		"default": "Seems the title is too long. Try to enter something shorter.",
		"ru":      "Кажется, название слишком длинное. Сделайте его чуток короче.",
	},
	BooksTitleAvoidSlash: {
		"default": "Please do not start the title with <code>/</code> symbol. " +
			"Try to enter something different.",
		"ru": "Не начинайте название с символа <code>/</code>.",
	},
	BooksAlreadyExists: {
		"default": "Book with this title already exists. Try to enter different title.",
		"ru":      "Учетная книга с таким названием уже существует. Попробуйте другое название.",
	},
	BooksSetCurrency: {
		"default": "Select the currency for the book.",
		"ru":      "Выберите валюту учетной книги.",
	},
	BooksCurrencyUpdated: {
		"default": "The currency successfully updated.",
		"ru":      "Валюта обновлена.",
	},
	BooksCreateDefaultCategories: {
		"default": "Import the default category tree into the new book?",
		"ru":      "Импортировать стандартные категории в новую книгу?",
	},
	BooksSuccessfullyCreated: {
		"default": "Book <strong>{title}</strong> (currency: <strong>{currency}</strong>) successfully created.\n" +
			"Share the following command with people you want to join this book:\n\n" +
			"<pre>/join {book_uid}</pre>\n\n" +
			"<strong>Important!</strong> Everyone who knows this command can join the book.",
		"ru": "Учетная книга <strong>{title}</strong> (валюта: <strong>{currency}</strong>) создана.\n" +
			"Если хотите дать кому-то возможность вносить в нее расходы, поделитесь командой:\n\n" +
			"<pre>/join {book_uid}</pre>\n\n" +
			"<strong>ВАЖНО!</strong> Любой, кто знает эту команду, может вносить расходы в эту книгу.",
	},
	BooksSelected: {
		"default": "Book <strong>{title}</strong> (currency: <strong>{currency}</strong>) selected.\n" +
			"Share the following command with people you want to join this book:\n\n" +
			"<pre>/join {book_uid}</pre>\n\n" +
			"<strong>Important!</strong> Everyone who knows this command can join the book.",
		"ru": "Вы выбрали учетную книгу <strong>{title}</strong> (валюта: <strong>{currency}</strong>).\n" +
			"Если хотите дать кому-то возможность вносить в нее расходы, поделитесь командой:\n\n" +
			"<pre>/join {book_uid}</pre>\n\n" +
			"<strong>ВАЖНО!</strong> Любой, кто знает эту команду, может вносить расходы в эту книгу.",
	},
	BooksConnected: {
		"default": "You are joined to the book <strong>{title}</strong> " +
			"(currency: <strong>{currency}</strong>). " +
			"All further expenses will be saved into this book.",
		"ru": "Вы активировали учетную книгу <strong>{title}</strong> " +
			"(валюта: <strong>{currency}</strong>). " +
			"Все расходы будут записываться в нее.",
	},
	BooksDisconnected: {
		"default": "You are disconnected from the book <strong>{title}</strong> " +
			"(currency: <strong>{currency}</strong>).",
		"ru": "Вы отключились от учетной книги <strong>{title}</strong> " +
			"(валюта: <strong>{currency}</strong>).",
	},
	BooksDeleted: {
		"default": "Book <strong>{title}</strong> (currency: <strong>{currency}</strong>) " +
			"successfully removed.",
		"ru": "Учетная книга <strong>{title}</strong> (валюта: <strong>{currency}</strong>) " +
			"удалена.",
	},
	BooksDisabled: {
		"default": "Your access to the book <strong>{title}</strong> " +
			"(currency: <strong>{currency}</strong>) is disabled by its owner.",
		"ru": "Ваш доступ к учетной книге <strong>{title}</strong> " +
			"(валюта: <strong>{currency}</strong>) отключен владельцем.",
	},
	BooksMembers: {
		"default": "Members of the book <strong>{title}</strong>. " +
			"Tap a member to disable or enable their access.",
		"ru": "Участники учетной книги <strong>{title}</strong>. " +
			"Тапните участника, чтобы отключить или включить доступ.",
	},
	BooksNoMembers: {
		"default": "Nobody is joined to the book <strong>{title}</strong> yet.",
		"ru":      "К учетной книге <strong>{title}</strong> пока никто не подключился.",
	},
	BooksMemberDisabled: {
		"default": "Member access disabled.",
		"ru":      "Доступ участника отключен.",
	},
	BooksMemberEnabled: {
		"default": "Member access enabled.",
		"ru":      "Доступ участника включен.",
	},

	CategoriesTypeWelcome: {
		"default": "Which categories do you want to edit?",
		"ru":      "Какие категории вы хотите настроить?",
	},
	CategoriesWelcome: {
		"default": "Hey. Let's configure categories here. Select any existing category " +
			"or tap <code>+ Add Category</code> to create a new one.",
		"ru": "Давай настроим категории. Выбери существующую категорию " +
			"или тапни <code>+ Создать</code>, чтобы создать новую.",
	},
	CategoriesWelcomeToCategory: {
		"default": "You selected category <strong>{title}</strong>. Select any existing subcategory " +
			"or tap <code>+ Add Category</code> to create a new one.",
		"ru": "Вы выбрали категорию <strong>{title}</strong>. Выберите подкатегорию " +
			"или тапните <code>+ Создать</code>, чтобы создать новую.",
	},
	CategoriesAddTitle: {
		"default": "Please send the name of the category.",
		"ru":      "Введите название категории.",
	},
	CategoriesAlreadyExists: {
		"default": "Category <strong>{title}</strong> already exists.",
		"ru":      "Категория <strong>{title}</strong> уже существует.",
	},
	CategoriesCreated: {
		"default": "Category <strong>{title}</strong> successfully created.",
		"ru":      "Категория <strong>{title}</strong> создана.",
	},
	CategoriesTitleUpdated: {
		"default": "The title successfully updated.",
		"ru":      "Название обновлено.",
	},
	CategoriesTitleTooShort: {
		"default": "Hm. Seems the title is too short. Try to enter something longer.",
		"ru":      "Кажется, название слишком короткое. Сделайте его чуток длиннее.",
	},
	CategoriesTitleTooLong: {
		"default": "Hm. Seems the title is too long. Try to enter something shorter.",
		"ru":      "Кажется, название слишком длинное. Сделайте его чуток короче.",
	},
	CategoriesTitleAvoidSlash: {
		"default": "Please do not start the title with <code>/</code> symbol. " +
			"Try to enter something different.",
		"ru": "Не начинайте название с символа <code>/</code>.",
	},
	CategoriesDeleted: {
		"default": "Category <strong>{title}</strong> (and its subcategories) " +
			"successfully removed.",
		"ru": "Категория <strong>{title}</strong> (и все подкатегории) удалены.",
	},

	ExpensesAddAmount: {
		"default": "Add <strong>{amount} {currency}</strong> to the book " +
			"<strong>{book_title}</strong>.",
		"ru": "Добавляем <strong>{amount} {currency}</strong> в книгу учета " +
			"<strong>{book_title}</strong>.",
	},
	ExpensesZeroAmount: {
		"default": "Please enter non-zero amount.",
		"ru":      "Введите ненулевое значение.",
	},
	ExpensesRootSelect: {
		"default": "Select desired category or click <strong>Submit</strong> " +
			"to add as uncategorized.",
		"ru": "Выберите категорию или тапните <strong>Сохранить</strong>, " +
			"чтобы сохранить без категории.",
	},
	ExpensesCategorySelect: {
		"default": "You selected <strong>{category_title}</strong> category. " +
			"Select subcategory or tap <strong>Submit</strong>.",
		"ru": "Вы выбрали категорию <strong>{category_title}</strong>. " +
			"Выберите подкатегорию или тапните <strong>Сохранить</strong>.",
	},
	ExpensesCreated: {
		"default": "<strong>{amount} {currency}</strong> successfully added to " +
			"<strong>{book_title}</strong> book.",
		"ru": "<strong>{amount} {currency}</strong> добавлено в учетную книгу " +
			"<strong>{book_title}</strong>.",
	},
	ExpensesCreatedInCategory: {
		"default": "<strong>{amount} {currency}</strong> successfully added to " +
			"<strong>{category_title}</strong> category of " +
			"<strong>{book_title}</strong> book.",
		"ru": "<strong>{amount} {currency}</strong> добавлено в категорию " +
			"<strong>{category_title}</strong> учетной книги " +
			"<strong>{book_title}</strong>.",
	},

	ReportsBookAndPeriod: {
		"default": "{book_title} ({currency}), {period}",
		"ru":      "{book_title} ({currency}), {period}",
	},
	ReportsNoData: {
		"default": "No data for requested period.",
		"ru":      "Данные за выбраный период отсутствуют.",
	},
	ReportsSelectYear: {
		"default": "Select the year.",
		"ru":      "Выберите год.",
	},
	ReportsSelectMonth: {
		"default": "Select the month of {year}.",
		"ru":      "Выберите месяц {year} года.",
	},
	ReportsSelectDay: {
		"default": "Select the day of {month}, {year}.",
		"ru":      "Выберите день. {month}, {year}.",
	},
	Total: {
		"default": "Total",
		"ru":      "Всего",
	},
	Uncategorized: {
		"default": "Uncategorized",
		"ru":      "Без категории",
	},

	SettingsWelcome: {
		"default": "Settings:\n\n" +
			"Language: <strong>{language}</strong>\n\n" +
			"Tap the button below to edit relevant parameter.",
		"ru": "Настройки:\n\n" +
			"Язык: <strong>{language}</strong>\n\n" +
			"Тапните кнопку ниже, чтобы изменить соответствующие настройки.",
	},
	SettingsSelectLanguage: {
		"default": "Current language is <strong>{language}</strong>. " +
			"Tap the button below to set new language.",
		"ru": "Текущий язык - <strong>{language}</strong>. " +
			"Тапните кнопку ниже, чтобы изменить язык.",
	},
	SettingsLanguageUpdated: {
		"default": "Current language successfully updated to <strong>{language}</strong>.",
		"ru":      "Язык сообщений изменен на <strong>{language}</strong>.",
	},

	ButtonBack:        {"default": "« Back", "ru": "« Назад"},
	ButtonAddBook:     {"default": "+ Add Book", "ru": "+ Создать"},
	ButtonAddCategory: {"default": "+ Add Category", "ru": "+ Создать"},
	ButtonJoin:        {"default": "Join", "ru": "Подключиться"},
	ButtonDisconnect:  {"default": "Disconnect", "ru": "Отключиться"},
	ButtonTitle:       {"default": "Update Title", "ru": "Название"},
	ButtonCurrency:    {"default": "Currency", "ru": "Валюта"},
	ButtonCategories:  {"default": "Categories", "ru": "Категории"},
	ButtonMembers:     {"default": "Members", "ru": "Участники"},
	ButtonRemove:      {"default": "Remove", "ru": "Удалить"},
	ButtonYes:         {"default": "Yes", "ru": "Да"},
	ButtonNo:          {"default": "No", "ru": "Нет"},
	ButtonIncome:      {"default": "Income", "ru": "Доходы"},
	ButtonExpense:     {"default": "Expenses", "ru": "Расходы"},
	ButtonSubmit:      {"default": "Submit", "ru": "Сохранить"},
	ButtonLanguage:    {"default": "Edit Language", "ru": "Изменить язык"},
}
