// Package request decodes and validates request bodies and path parameters.
// Failures are answered with a 400 envelope before the handler continues.
package request

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9\x{0600}-\x{06FF}]+(?:-[a-z0-9\x{0600}-\x{06FF}]+)*$`)

var (
	setupOnce  sync.Once
	translator ut.Translator
)

// Validator returns gin's validator configured with JSON field names, the
// slug tag and English messages.
func Validator() *validator.Validate {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	setupOnce.Do(func() {
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		if v == nil {
			return
		}

		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || slugPattern.MatchString(s)
		})
		_ = entranslations.RegisterDefaultTranslations(v, translator)
		_ = v.RegisterTranslation("slug", translator,
			func(ut ut.Translator) error {
				return ut.Add("slug", "{0} may only contain lowercase letters, digits and single dashes", true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				msg, _ := ut.T("slug", fe.Field())
				return msg
			},
		)
	})
	return v
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// FieldErrors maps each invalid field, by JSON name, to a readable message.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = fe.Translate(translator)
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace:
// "CategoryRequest.name" becomes "name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
