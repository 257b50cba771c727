package middleware

import (
	"fmt"
	"strings"

	"signalhub/internal/consts"
	"signalhub/internal/dao"
	"signalhub/internal/ratelimit"
	"signalhub/pkg/errors/ecode"
	"signalhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// 请求头的形式为 Authorization: Bearer token
const authorizationHeader = "Authorization"

// ApiKeyAuth 鉴权，验证发布方凭证是否有效
// 凭证校验通过后将凭证ID放入context，供下游限流使用
func ApiKeyAuth(keys dao.ApiKeyDao) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret, err := getTokenFromHeader(c)
		if err != nil {
			response.Fail(c, ecode.RequireAuthErr, err.Error())
			c.Abort()
			return
		}
		key, err := keys.ApiKeyGetBySecret(c, secret)
		if err != nil {
			response.Fail(c, ecode.DatabaseErr, "credential lookup failed")
			c.Abort()
			return
		}
		if key == nil {
			response.Fail(c, ecode.InvalidApiKeyErr, "invalid or inactive api key")
			c.Abort()
			return
		}

		c.Set(consts.ApiKeyID, key.ID)
		c.Next()
	}
}

// RateLimit 凭证级滑动窗口限流，必须挂在ApiKeyAuth之后
// 放行的请求异步落一条请求记录，作为后续窗口的计数依据
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyID, ok := c.Get(consts.ApiKeyID)
		if !ok {
			response.Fail(c, ecode.RequireAuthErr, "missing credential context")
			c.Abort()
			return
		}
		apiKeyID := keyID.(uint64)
		endpoint := c.FullPath()

		ret := limiter.Check(c, apiKeyID, endpoint)
		if !ret.Allowed {
			response.Fail(c, ecode.RateLimitErr, ret.Reason)
			c.Abort()
			return
		}
		limiter.Log(apiKeyID, endpoint, c.ClientIP())
		c.Next()
	}
}

func getTokenFromHeader(c *gin.Context) (string, error) {
	aHeader := c.Request.Header.Get(authorizationHeader)
	if len(aHeader) == 0 {
		return "", fmt.Errorf("token is empty")
	}
	strs := strings.SplitN(aHeader, " ", 2)
	if len(strs) != 2 || strs[0] != "Bearer" {
		return "", fmt.Errorf("token 不符合规则")
	}
	return strs[1], nil
}
