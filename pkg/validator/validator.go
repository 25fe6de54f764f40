// Package validator plugs validator/v10 into gin binding with lazy
// initialization, mirroring gin's own default validator.
// Package validator 将 validator/v10 接入 gin binding，惰性初始化。
package validator

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
)

// CustomValidator 自定义验证器
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

var _ binding.StructValidator = &CustomValidator{}

// NewCustomValidator 创建自定义验证器
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 实现 binding.StructValidator
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	v.lazyinit()
	return v.validate.Struct(obj)
}

// Engine 返回底层 validator 实例
func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
	})
}
