package validation

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`

	// Student login code: letters, digits and dashes
	SIDPattern = `^[A-Za-z0-9][A-Za-z0-9\-]{2,19}$`

	// Phone: optional leading +, then 10 to 15 digits
	PhonePattern = `^\+?[0-9]{10,15}$`

	// DateLayout is the wire format of calendar dates
	DateLayout = "2006-01-02"
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
	SID   *regexp.Regexp
	Phone *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	SID:   regexp.MustCompile(SIDPattern),
	Phone: regexp.MustCompile(PhonePattern),
}

// IsValidSID reports whether s is an acceptable login code
func IsValidSID(s string) bool {
	return CompiledPatterns.SID.MatchString(s)
}

// IsValidPhone reports whether s looks like a phone number; spaces and dashes are ignored
func IsValidPhone(s string) bool {
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	return CompiledPatterns.Phone.MatchString(s)
}

// IsValidEmail reports whether s looks like an email address
func IsValidEmail(s string) bool {
	return CompiledPatterns.Email.MatchString(s)
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar date
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Register adds the hostel rules ("sid", "phone", "isodate") to v and reports
// fields by their json name.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	rules := map[string]func(string) bool{
		"sid":     IsValidSID,
		"phone":   IsValidPhone,
		"isodate": IsValidDate,
	}
	for tag, fn := range rules {
		check := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

// RegisterGinValidators installs the hostel rules on gin's binding validator
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}
