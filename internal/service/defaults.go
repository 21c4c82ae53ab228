package service

// CategoryTree is a nested title -> subtree map used only for the default
// category sets imported at book creation.
type CategoryTree map[string]CategoryTree

func defaultTree(trees map[string]CategoryTree, lang string) CategoryTree {
	if tree, ok := trees[lang]; ok {
		return tree
	}
	return trees["default"]
}

var defaultExpenseCategories = map[string]CategoryTree{
	"default": {
		"Automobile": {
			"Auto Parts":   {},
			"Auto Service": {},
			"Car Rental":   {},
			"Car Wash":     {},
			"Gasoline":     {},
		},
		"Beauty & Wellness": {},
		"Clothes & Shoes":   {},
		"Cosmetics":         {},
		"Electronics": {
			"Appliances":    {},
			"Audio & Video": {},
			"Gadgets":       {},
		},
		"Entertainment": {
			"Attractions": {},
			"Cinema":      {},
			"Circus":      {},
			"Concert":     {},
			"Museum":      {},
			"Show":        {},
			"Sport Games": {},
			"Theater":     {},
			"Waterpark":   {},
		},
		"Furniture":       {},
		"Gift & Presents": {},
		"Grocery":         {},
		"Household Goods": {},
		"Kid's Activities": {},
		"Medicine": {
			"Drug Store":    {},
			"Doctor":        {},
			"Massage":       {},
			"Medical Tests": {},
		},
		"Other": {},
		"Restaurants": {
			"Bar":         {},
			"Cafe":        {},
			"Street Food": {},
			"Take Away":   {},
		},
		"Services": {
			"Administrative": {},
			"Delivery":       {},
			"Tips":           {},
		},
		"Sport Activities": {},
		"Stationery":       {},
		"Transport": {
			"Airplane":         {},
			"Autobus":          {},
			"Public Transport": {},
			"Taxi":             {},
			"Train":            {},
			"Tram":             {},
		},
		"Utilities": {
			"Electricity": {},
			"Heating":     {},
			"Internet":    {},
			"Media":       {},
			"Telephone":   {},
			"TV":          {},
			"Water":       {},
		},
	},
	"ru": {
		"Коммунальные услуги": {
			"Интернет":      {},
			"Телефон":       {},
			"ТВ":            {},
			"Вода":          {},
			"Отопление":     {},
			"Электричество": {},
			"Квартплата":    {},
		},
		"Мебель":           {},
		"Продукты питания": {},
		"Транспорт": {
			"Автобус": {},
			"Поезд":   {},
			"Самолет": {},
			"Такси":   {},
		},
	},
}

var defaultIncomeCategories = map[string]CategoryTree{
	"default": {
		"Bonus":    {},
		"Interest": {},
		"Salary":   {},
		"Other":    {},
	},
	"ru": {
		"Зарплата": {},
		"Премия":   {},
		"Проценты": {},
		"Прочее":   {},
	},
}
