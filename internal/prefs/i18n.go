// ABOUTME: Russian and English strings for user-facing output.
// ABOUTME: Lookups fall back to English, then to the key itself.
package prefs

var translations = map[Language]map[string]string{
	LangRussian: {
		"app-title":         "Habit Tracker",
		"settings":          "Настройки",
		"motivation-text":   "Не сдавайтесь! Каждый день - это новая возможность!",
		"add-habit":         "Добавить привычку",
		"added":             "Привычка добавлена",
		"my-habits":         "Мои привычки",
		"no-habits":         "Пока нет привычек",
		"progress-calendar": "Календарь прогресса",
		"theme-settings":    "Настройки темы",
		"light-theme":       "Светлая тема",
		"dark-theme":        "Темная тема",
		"language-settings": "Язык",
		"export":            "Экспорт данных",
		"import":            "Импорт данных",
		"completed":         "Выполнено",
		"not-completed":     "Не выполнено",
		"delete":            "Удалить",
		"deleted":           "Привычка удалена",
		"renamed":           "Привычка переименована",
		"days":              "дней",
		"streak":            "серия",
		"progress":          "прогресс",
		"confirm-delete":    "Вы уверены, что хотите удалить эту привычку?",
		"import-success":    "Данные успешно импортированы!",
		"import-invalid":    "Неверный формат файла!",
		"import-error":      "Ошибка при чтении файла!",
		"cancelled":         "Отменено",
	},
	LangEnglish: {
		"app-title":         "Habit Tracker",
		"settings":          "Settings",
		"motivation-text":   "Don't give up! Every day is a new opportunity!",
		"add-habit":         "Add Habit",
		"added":             "Habit added",
		"my-habits":         "My Habits",
		"no-habits":         "No habits yet",
		"progress-calendar": "Progress Calendar",
		"theme-settings":    "Theme Settings",
		"light-theme":       "Light Theme",
		"dark-theme":        "Dark Theme",
		"language-settings": "Language",
		"export":            "Export Data",
		"import":            "Import Data",
		"completed":         "Completed",
		"not-completed":     "Not completed",
		"delete":            "Delete",
		"deleted":           "Habit deleted",
		"renamed":           "Habit renamed",
		"days":              "days",
		"streak":            "streak",
		"progress":          "progress",
		"confirm-delete":    "Are you sure you want to delete this habit?",
		"import-success":    "Data imported successfully!",
		"import-invalid":    "Invalid file format!",
		"import-error":      "Error reading file!",
		"cancelled":         "Cancelled",
	},
}

var weekdays = map[Language][7]string{
	LangRussian: {"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"},
	LangEnglish: {"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
}

// T returns the string for key in lang.
func T(lang Language, key string) string {
	if s, ok := translations[lang][key]; ok {
		return s
	}
	if s, ok := translations[LangEnglish][key]; ok {
		return s
	}
	return key
}

// Weekdays returns weekday column headers starting on Monday.
func Weekdays(lang Language) [7]string {
	if w, ok := weekdays[lang]; ok {
		return w
	}
	return weekdays[LangEnglish]
}
