package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	accountCodePattern = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z.\-]{0,19}$`)
	stateCodePattern   = regexp.MustCompile(`^[0-9A-Za-z]{2}$`)

	registerOnce sync.Once
)

// RegisterValidators installs the custom binding tags used by the request DTOs.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
			return accountCodePattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("statecode", func(fl validator.FieldLevel) bool {
			return stateCodePattern.MatchString(fl.Field().String())
		})
	})
}
