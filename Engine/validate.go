package Engine

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"CropCare/TimeUtils"
)

// ValidationError carries the localized, field-targeted message shown to
// the user. Nothing is persisted or dispatched once one is raised.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	hasLetterRe  = regexp.MustCompile(`[a-zA-Z]`)
	alnumSpaceRe = regexp.MustCompile(`^[A-Za-z0-9\s]+$`)
)

// ReminderInput is a reminder submission before validation. Field and tag
// order mirror the check order: title emptiness, title letter content,
// body charset, body letter content, amount positivity, unit.
type ReminderInput struct {
	Title  string  `validate:"notblank,hasletter"`
	Body   string  `validate:"alnumspace,hasletter"`
	Amount float64 `validate:"gt=0"`
	Unit   string  `validate:"timeunit"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("hasletter", func(fl validator.FieldLevel) bool {
		return hasLetterRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("alnumspace", func(fl validator.FieldLevel) bool {
		return alnumSpaceRe.MatchString(fl.Field().String())
	})
	v.RegisterValidation("timeunit", func(fl validator.FieldLevel) bool {
		return TimeUtils.ValidUnit(fl.Field().String())
	})
	return v
}

// Localized messages keyed by failing field and rule.
var reminderMessages = map[string]string{
	"Title.notblank":  "Umutwe w’amamenyesha ntushobora kuba ubusa.",
	"Title.hasletter": "Umutwe w’amamenyesha ugomba kugira inyuguti.",
	"Body.alnumspace": "Ibisobanuro by’amamenyesha bigomba kuba alphanumeric.",
	"Body.hasletter":  "Ibisobanuro by’amamenyesha bigomba kugira inyuguti.",
	"Amount.gt":       "Igihe kigomba kuba umubare mwiza.",
	"Unit.timeunit":   "Nyamuneka filled byose mu bibuga, kandi hitamo igihe.",
}

// validateReminder runs the ordered reminder checks and returns the first
// failure as a ValidationError.
func validateReminder(input ReminderInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	first := errs[0]
	msg, ok := reminderMessages[first.Field()+"."+first.Tag()]
	if !ok {
		msg = "Nyamuneka filled byose mu bibuga, kandi hitamo igihe."
	}
	return &ValidationError{Field: first.Field(), Message: msg}
}
