package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError 单个字段的校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

// Errors 返回所有错误消息的切片
func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 返回拼接后的错误消息
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// Maps 返回 字段 => 错误消息 的映射
func (v ValidErrors) Maps() map[string]string {
	m := make(map[string]string)
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// MapsToString 返回 字段:消息 拼接后的字符串
func (v ValidErrors) MapsToString() string {
	var sb strings.Builder
	for _, err := range v {
		sb.WriteString(err.Key)
		sb.WriteString(":")
		sb.WriteString(err.Message)
		sb.WriteString(";")
	}
	return sb.String()
}

// BindAndValid 绑定请求参数并进行校验
// 校验失败时将 validator 错误翻译为 ValidErrors
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors
	err := c.ShouldBind(v)
	if err != nil {
		v := c.Value("trans")
		trans, ok := v.(ut.Translator)
		verrs, vok := err.(val.ValidationErrors)
		if !vok || !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}
		for key, value := range verrs.Translate(trans) {
			errs = append(errs, &ValidError{
				Key:     key,
				Message: value,
			})
		}
		return false, errs
	}

	return true, nil
}
