package ecode

import "net/http"

// 业务错误码注册表
// 每个错误码对应一个对外暴露的字符串code和一个http状态码

const (
	// Success 成功
	Success = 0
	// Unknown 未知错误，兜底
	Unknown = 10001
	// DatabaseErr 存储层读查询失败
	DatabaseErr = 10002

	// RequireAuthErr 缺少或非法的Bearer token
	RequireAuthErr = 20001
	// InvalidApiKeyErr token未注册或已停用
	InvalidApiKeyErr = 20002
	// RateLimitErr 触发滑动窗口限流
	RateLimitErr = 20003

	// ValidateErr 通用参数校验失败
	ValidateErr = 30000
	// MissingTraderIdErr 缺少trader_id
	MissingTraderIdErr = 30001
	// MissingSignalsErr signals数组缺失或为空
	MissingSignalsErr = 30002
	// InvalidSignalDataErr 一个或多个信号字段校验失败
	InvalidSignalDataErr = 30003
	// InvalidPageErr 页码非法
	InvalidPageErr = 30004
	// InvalidPageSizeErr 分页大小非法
	InvalidPageSizeErr = 30005

	// TraderNotFoundErr 交易员不存在
	TraderNotFoundErr = 40001
)

type codeInfo struct {
	httpStatus int
	code       string // 对外的字符串错误码
	message    string // 默认提示
}

var codes = map[int]codeInfo{
	Success:              {http.StatusOK, "OK", "success"},
	Unknown:              {http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"},
	DatabaseErr:          {http.StatusInternalServerError, "DATABASE_ERROR", "database query failed"},
	RequireAuthErr:       {http.StatusUnauthorized, "UNAUTHORIZED", "missing or malformed authorization header"},
	InvalidApiKeyErr:     {http.StatusUnauthorized, "INVALID_API_KEY", "api key not recognized or inactive"},
	RateLimitErr:         {http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "rate limit exceeded"},
	ValidateErr:          {http.StatusBadRequest, "INVALID_REQUEST", "invalid request"},
	MissingTraderIdErr:   {http.StatusBadRequest, "MISSING_TRADER_ID", "trader_id is required"},
	MissingSignalsErr:    {http.StatusBadRequest, "MISSING_SIGNALS", "signals array is required and cannot be empty"},
	InvalidSignalDataErr: {http.StatusBadRequest, "INVALID_SIGNAL_DATA", "signal validation failed"},
	InvalidPageErr:       {http.StatusBadRequest, "INVALID_PAGE", "page must be >= 1"},
	InvalidPageSizeErr:   {http.StatusBadRequest, "INVALID_PAGE_SIZE", "page_size must be between 1 and 100"},
	TraderNotFoundErr:    {http.StatusNotFound, "TRADER_NOT_FOUND", "trader not found"},
}

// HTTPStatus 返回错误码对应的http状态码
func HTTPStatus(code int) int {
	if info, ok := codes[code]; ok {
		return info.httpStatus
	}
	return http.StatusInternalServerError
}

// String 返回错误码对应的对外字符串code
func String(code int) string {
	if info, ok := codes[code]; ok {
		return info.code
	}
	return codes[Unknown].code
}

// Text 返回错误码的默认提示
func Text(code int) string {
	if info, ok := codes[code]; ok {
		return info.message
	}
	return codes[Unknown].message
}
