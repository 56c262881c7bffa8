package builder

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/apper-apps/agencyflowapi/internal/domain"
	"github.com/apper-apps/agencyflowapi/internal/model"
)

// EmptyDocumentMessage 保存空文档时的提示
const EmptyDocumentMessage = "Please add at least one field or section before saving"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// 错误信息使用 json 字段名
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateForSave 保存前的检查：空文档直接拒绝，再做结构校验。
// 任何失败都返回 *domain.ValidationError，不触达存储
func ValidateForSave(doc *model.Form) error {
	if doc == nil || doc.IsEmpty() {
		return &domain.ValidationError{Message: EmptyDocumentMessage}
	}

	err := getValidator().Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldPath(fe)+" failed "+fe.Tag())
	}
	return &domain.ValidationError{Message: "Invalid document", Details: details}
}

// fieldPath 去掉顶层结构名，例如 Form.settings.theme -> settings.theme
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
