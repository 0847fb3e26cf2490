// Package i18n translates user-facing messages and month names.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.English, language.Russian}

// Message keys. The English text doubles as the key.
const (
	MsgTemplatesLoaded     = "Templates loaded: %d"
	MsgExecutorsLoaded     = "Executors loaded: %d"
	MsgDuplicateExecutor   = "Executor %q appears more than once; the last row is used"
	MsgValidating          = "Validating fields"
	MsgValidationPassed    = "Validation passed"
	MsgTemplateNotSelected = "Document template not selected"
	MsgUnknownTemplate     = "Unknown document template %q"
	MsgDateNotSelected     = "Date not selected"
	MsgInvalidDay          = "Day %q is not a number"
	MsgUnknownMonth        = "Unknown month %q"
	MsgInvalidYear         = "Year %q is not a number"
	MsgYearOutOfRange      = "Year must be between %s and %s"
	MsgDaysInMonth         = "There are only %d days in this month."
	MsgExecutorNotSelected = "Executor not selected"
	MsgUnknownExecutor     = "Unknown executor %q"
	MsgInvalidNumber       = "Document number not entered or entered incorrectly"
	MsgInvalidAmount       = "Amount not entered or entered incorrectly"
	MsgConverting          = "Converting document"
	MsgConversionSucceeded = "Conversion successful"
	MsgFileCreated         = "File created: %s"
	MsgConversionFailed    = "Conversion failed"
	MsgNumberReused        = "Document number %s was already issued for %q on %s"
)

var russian = map[string]string{
	MsgTemplatesLoaded:     "Загружено шаблонов: %d",
	MsgExecutorsLoaded:     "Загружено исполнителей: %d",
	MsgDuplicateExecutor:   "Исполнитель %q встречается несколько раз, используется последняя строка",
	MsgValidating:          "Проверка полей",
	MsgValidationPassed:    "Проверка пройдена",
	MsgTemplateNotSelected: "Не выбран шаблон документа",
	MsgUnknownTemplate:     "Неизвестный шаблон документа %q",
	MsgDateNotSelected:     "Не выбрана дата",
	MsgInvalidDay:          "День %q не является числом",
	MsgUnknownMonth:        "Неизвестный месяц %q",
	MsgInvalidYear:         "Год %q не является числом",
	MsgYearOutOfRange:      "Год должен быть от %s до %s",
	MsgDaysInMonth:         "В этом месяце только %d дней.",
	MsgExecutorNotSelected: "Не выбран исполнитель",
	MsgUnknownExecutor:     "Неизвестный исполнитель %q",
	MsgInvalidNumber:       "Номер документа не введён или введён неверно",
	MsgInvalidAmount:       "Сумма не введена или введена неверно",
	MsgConverting:          "Конвертация документа",
	MsgConversionSucceeded: "Конвертация выполнена",
	MsgFileCreated:         "Файл создан: %s",
	MsgConversionFailed:    "Ошибка конвертации",
	MsgNumberReused:        "Номер документа %s уже выдавался для %q %s",
}

var months = map[language.Tag][12]string{
	language.English: {
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	// Genitive forms, as used in dates: "5 марта 2024".
	language.Russian: {
		"января", "февраля", "марта", "апреля", "мая", "июня",
		"июля", "августа", "сентября", "октября", "ноября", "декабря",
	},
}

var russianNominative = [12]string{
	"январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

// Translator formats messages for one language. Languages without a catalog
// fall back to English.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New creates a translator for a language code such as "ru" or "en-GB".
func New(lang string) (*Translator, error) {
	requested, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", lang, err)
	}

	_, idx, _ := language.NewMatcher(supported).Match(requested)
	tag := supported[idx]

	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range russian {
		if err := builder.SetString(language.Russian, key, msg); err != nil {
			return nil, fmt.Errorf("failed to build catalog: %w", err)
		}
	}

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}

// Language returns the language messages are printed in.
func (t *Translator) Language() language.Tag {
	return t.tag
}

// T formats the message key with args in the translator's language. Numbers
// printed with %d are grouped by locale rules; pass years and identifiers as
// strings.
func (t *Translator) T(key string, args ...interface{}) string {
	return t.printer.Sprintf(key, args...)
}

// Month returns the month name as written in dates.
func (t *Translator) Month(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return months[t.tag][m-1]
}

// Months returns the twelve month names in calendar order.
func (t *Translator) Months() []string {
	names := months[t.tag]
	return append([]string(nil), names[:]...)
}

// MonthIndex resolves a month label of any supported language, ignoring case.
// Russian nominative forms are accepted too.
func (t *Translator) MonthIndex(label string) (time.Month, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, false
	}

	lists := [][12]string{months[t.tag], russianNominative}
	for _, tag := range supported {
		lists = append(lists, months[tag])
	}
	for _, names := range lists {
		for i, name := range names {
			if strings.EqualFold(name, label) {
				return time.Month(i + 1), true
			}
		}
	}
	return 0, false
}
