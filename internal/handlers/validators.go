package handlers

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
)

// registerValidators adds the custom binding tags used by the request DTOs.
func registerValidators() error {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerValidatorsErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		registerValidatorsErr = v.RegisterValidation("notblank", validators.NotBlank)
	})
	return registerValidatorsErr
}
