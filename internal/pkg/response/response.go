package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码定义
const (
	CodeSuccess          = 0
	CodeParamError       = 1000
	CodeAuthFailed       = 1001
	CodePermissionDenied = 1002
	CodeResourceNotFound = 1003
	CodeStateConflict    = 1004
	CodeDuplicateAction  = 1005
	CodeServerError      = 5000
)

var codeMessages = map[int]string{
	CodeSuccess:          "success",
	CodeParamError:       "参数错误",
	CodeAuthFailed:       "认证失败",
	CodePermissionDenied: "权限不足",
	CodeResourceNotFound: "资源不存在",
	CodeStateConflict:    "当前状态不允许该操作",
	CodeDuplicateAction:  "重复操作",
	CodeServerError:      "服务器内部错误",
}

// Response 统一响应结构，HTTP 状态码固定为 200，业务结果看 code
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	SuccessWithMessage(c, "success", data)
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应，message 为空时使用错误码的默认消息
func Error(c *gin.Context, code int, message string) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

func AuthError(c *gin.Context, message string) {
	Error(c, CodeAuthFailed, message)
}

func PermissionError(c *gin.Context, message string) {
	Error(c, CodePermissionDenied, message)
}

func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message)
}

// ConflictError 资源当前状态不允许该操作，如对已取消的订阅绑定优惠券
func ConflictError(c *gin.Context, message string) {
	Error(c, CodeStateConflict, message)
}

func DuplicateError(c *gin.Context, message string) {
	Error(c, CodeDuplicateAction, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}
