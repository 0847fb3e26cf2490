package app

import (
	"regexp"
	"strconv"
	"time"

	"github.com/benjaminschreck/go-docfill/internal/i18n"
	"github.com/benjaminschreck/go-docfill/pkg/docfill"
)

// FormInput is the raw user input for one document.
type FormInput struct {
	Template string
	Day      string
	// Month is a number from 1 to 12 or a month name.
	Month    string
	Year     string
	Executor string
	Number   string
	Amount   string
}

// Form is validated input.
type Form struct {
	Template      Template
	Day           int
	Month         time.Month
	Year          int
	ExecutorLabel string
	Executor      docfill.Record
	Number        string
	Amount        int64
	// AmountText is the amount exactly as entered.
	AmountText string
}

// Date returns the document date.
func (f *Form) Date() time.Time {
	return time.Date(f.Year, f.Month, f.Day, 0, 0, 0, 0, time.UTC)
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Validate checks in and returns the validated form. Every problem found is
// reported in a single *docfill.ValidationError with translated messages.
func (a *App) Validate(in FormInput) (*Form, error) {
	a.logger.Info("%s", a.translator.T(i18n.MsgValidating))

	v := &docfill.ValidationError{}
	f := &Form{}

	switch tmpl, ok := a.templates[in.Template]; {
	case in.Template == "":
		v.Add("template", a.translator.T(i18n.MsgTemplateNotSelected))
	case !ok:
		v.Add("template", a.translator.T(i18n.MsgUnknownTemplate, in.Template))
	default:
		f.Template = tmpl
	}

	a.validateDate(in, f, v)

	switch rec, ok := a.lookupExecutor(in.Executor); {
	case in.Executor == "":
		v.Add("executor", a.translator.T(i18n.MsgExecutorNotSelected))
	case !ok:
		v.Add("executor", a.translator.T(i18n.MsgUnknownExecutor, in.Executor))
	default:
		f.ExecutorLabel = in.Executor
		f.Executor = rec
	}

	if digitsOnly.MatchString(in.Number) {
		f.Number = in.Number
	} else {
		v.Add("number", a.translator.T(i18n.MsgInvalidNumber))
	}

	if amount, err := strconv.ParseInt(in.Amount, 10, 64); err == nil && digitsOnly.MatchString(in.Amount) {
		f.Amount = amount
		f.AmountText = in.Amount
	} else {
		v.Add("amount", a.translator.T(i18n.MsgInvalidAmount))
	}

	if err := v.Err(); err != nil {
		for _, issue := range v.Issues {
			a.logger.Error("%s", issue.Message)
		}
		return nil, err
	}

	a.logger.Info("%s", a.translator.T(i18n.MsgValidationPassed))
	return f, nil
}

func (a *App) validateDate(in FormInput, f *Form, v *docfill.ValidationError) {
	if in.Day == "" || in.Month == "" || in.Year == "" {
		v.Add("date", a.translator.T(i18n.MsgDateNotSelected))
		return
	}

	ok := true

	day, err := strconv.Atoi(in.Day)
	if err != nil || !digitsOnly.MatchString(in.Day) {
		v.Add("day", a.translator.T(i18n.MsgInvalidDay, in.Day))
		ok = false
	}

	month, found := a.parseMonth(in.Month)
	if !found {
		v.Add("month", a.translator.T(i18n.MsgUnknownMonth, in.Month))
		ok = false
	}

	year, err := strconv.Atoi(in.Year)
	minYear, maxYear := a.settings.DateYearMin, a.settings.DateYearMax
	switch {
	case err != nil || !digitsOnly.MatchString(in.Year):
		v.Add("year", a.translator.T(i18n.MsgInvalidYear, in.Year))
		ok = false
	case year < minYear || year > maxYear:
		v.Add("year", a.translator.T(i18n.MsgYearOutOfRange, strconv.Itoa(minYear), strconv.Itoa(maxYear)))
		ok = false
	}

	if !ok {
		return
	}

	if days := daysIn(year, month); day < 1 || day > days {
		v.Add("day", a.translator.T(i18n.MsgDaysInMonth, days))
		return
	}

	f.Day, f.Month, f.Year = day, month, year
}

func (a *App) parseMonth(s string) (time.Month, bool) {
	if digitsOnly.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 12 {
			return 0, false
		}
		return time.Month(n), true
	}
	return a.translator.MonthIndex(s)
}

func (a *App) lookupExecutor(key string) (docfill.Record, bool) {
	if a.executors == nil || key == "" {
		return docfill.Record{}, false
	}
	return a.executors.Get(key)
}

// daysIn returns the number of days in month of year.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
