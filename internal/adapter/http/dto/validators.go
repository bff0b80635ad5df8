package dto

import (
	"html"
	"reflect"
	"regexp"
	"strings"

	"aura-ledger/pkg/money"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tokenRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.:]{1,128}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("principal", validatePrincipal)
		_ = v.RegisterValidation("amount", validateAmount)
		_ = v.RegisterValidation("amount_or_zero", validateAmountOrZero)
	}
}

// validatePrincipal accepts account identifiers such as wallet addresses.
func validatePrincipal(fl validator.FieldLevel) bool {
	return tokenRe.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateAmount accepts a positive decimal with at most money.Decimals digits.
func validateAmount(fl validator.FieldLevel) bool {
	_, err := money.ParsePositive(fl.Field().String())
	return err == nil
}

func validateAmountOrZero(fl validator.FieldLevel) bool {
	_, err := money.Parse(fl.Field().String())
	return err == nil
}

// ValidIdempotencyKey reports whether s is an acceptable Idempotency-Key header.
func ValidIdempotencyKey(s string) bool {
	return tokenRe.MatchString(s)
}

// ValidPrincipal reports whether s is an acceptable principal, for path parameters.
func ValidPrincipal(s string) bool {
	return tokenRe.MatchString(strings.TrimSpace(s))
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			if elem := f.Elem(); elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
