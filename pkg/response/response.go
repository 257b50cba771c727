package response

import (
	"github.com/gin-gonic/gin"

	"signalhub/pkg/errors"
	"signalhub/pkg/errors/ecode"
)

// 代表响应给客户端的消息结构
// 成功: { "success": true,  "data": {...} }
// 失败: { "success": false, "error": { "code": "...", "message": "..." } }
// 请求ID通过 X-Request-Id 响应头透传

type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ApiError   `json:"error,omitempty"`
}

type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON 发送json格式数据
// err携带的错误码决定http状态码（401/404/429/400/500），成功返回200
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	if code == ecode.Success {
		c.JSON(ecode.HTTPStatus(code), ApiResponse{
			Success: true,
			Data:    data,
		})
		return
	}
	c.JSON(ecode.HTTPStatus(code), ApiResponse{
		Success: false,
		Error: &ApiError{
			Code:    ecode.String(code),
			Message: message,
		},
	})
}

// Fail 按指定错误码返回失败响应
func Fail(c *gin.Context, code int, message string) {
	JSON(c, errors.WithCode(code, message), nil)
}
