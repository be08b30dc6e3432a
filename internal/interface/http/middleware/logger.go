package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/posbuzz/pkg/response"
)

// HeaderRequestID 请求ID响应头
const HeaderRequestID = "X-Request-ID"

// SlowRequestThreshold 超过该耗时的请求记录为Warn
const SlowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 为每个请求生成请求ID（沿用客户端传入的X-Request-ID），并把带request_id字段的Logger放入Context，
// 不记录请求体和Authorization头
func Logger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		reqLogger := base.With(zap.String("request_id", requestID))
		c.Set(response.LoggerKey, reqLogger)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if uid := GetUserID(c); uid != 0 {
			fields = append(fields, zap.Uint("user_id", uid))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case latency > SlowRequestThreshold:
			reqLogger.Warn("慢请求", fields...)
		case c.Writer.Status() >= 500:
			reqLogger.Error("请求完成", fields...)
		default:
			reqLogger.Info("请求完成", fields...)
		}
	}
}

// RequestLogger 获取请求级Logger（日志中间件未启用时返回fallback）
func RequestLogger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if v, ok := c.Get(response.LoggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return fallback
}
