package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/goalpath/internal/pkg/logger"
)

type LoggerConfig struct {
	LogRequestBody  bool
	LogResponseBody bool  // when false, only 4xx/5xx bodies are logged
	MaxBodySize     int64 // bytes captured per body
	SkipPaths       []string
	SkipPrefixes    []string
	SensitiveFields []string
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		LogRequestBody:  true,
		LogResponseBody: false,
		MaxBodySize:     2048,
		SkipPaths:       []string{"/health"},
		SkipPrefixes:    []string{"/swagger/"},
		SensitiveFields: []string{"password", "token", "secret", "credential"},
	}
}

// Logger logs every request and response through log.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return LoggerWithConfig(log, DefaultLoggerConfig())
}

func LoggerWithConfig(log *logger.Logger, config LoggerConfig) gin.HandlerFunc {
	if log == nil {
		log = logger.Default()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if config.skip(path) {
			c.Next()
			return
		}

		start := time.Now()
		method := c.Request.Method
		reqLog := log.With("request_id", c.GetString(RequestIDKey))

		var requestBody string
		if config.LogRequestBody && c.Request.Body != nil && c.Request.ContentLength > 0 {
			contentType := c.ContentType()
			switch {
			case contentType != "application/json":
				requestBody = fmt.Sprintf("[%s, %s]", contentType, formatSize(c.Request.ContentLength))
			case c.Request.ContentLength > config.MaxBodySize:
				requestBody = "[body too large to log]"
			default:
				bodyBytes, err := io.ReadAll(c.Request.Body)
				if err == nil {
					c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
					requestBody = config.sanitizeBody(bodyBytes)
				}
			}
		}

		if query := c.Request.URL.RawQuery; query != "" {
			path += "?" + truncateString(query, 100)
		}
		if requestBody != "" {
			reqLog.Info("--> %s %s ip=%s body=%s", method, path, c.ClientIP(), requestBody)
		} else {
			reqLog.Info("--> %s %s ip=%s", method, path, c.ClientIP())
		}

		writer := &limitedResponseWriter{ResponseWriter: c.Writer, maxSize: config.MaxBodySize}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		line := fmt.Sprintf("<-- %s %s %d %v %s", method, path, status, time.Since(start), formatSize(writer.size))
		if writer.body.Len() > 0 && (config.LogResponseBody || status >= 400) {
			line += " body=" + truncateString(writer.body.String(), 500)
		}
		if len(c.Errors) > 0 {
			line += " errors=" + c.Errors.String()
		}

		switch {
		case status >= 500:
			reqLog.Error("%s", line)
		case status >= 400:
			reqLog.Warn("%s", line)
		default:
			reqLog.Info("%s", line)
		}
	}
}

func (config LoggerConfig) skip(path string) bool {
	for _, p := range config.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, p := range config.SkipPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// limitedResponseWriter keeps the first maxSize bytes of the response for logging.
type limitedResponseWriter struct {
	gin.ResponseWriter
	body    bytes.Buffer
	size    int64
	maxSize int64
}

func (w *limitedResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)

	if remaining := w.maxSize - int64(w.body.Len()); remaining > 0 {
		if int64(n) < remaining {
			remaining = int64(n)
		}
		w.body.Write(b[:remaining])
	}
	w.size += int64(n)

	return n, err
}

func (config LoggerConfig) sanitizeBody(body []byte) string {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return truncateString(string(body), 200)
	}

	masked, err := json.Marshal(config.hideSensitiveFields(data))
	if err != nil {
		return truncateString(string(body), 200)
	}
	return string(masked)
}

func (config LoggerConfig) hideSensitiveFields(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if config.isSensitiveField(key) {
				result[key] = "********"
			} else {
				result[key] = config.hideSensitiveFields(value)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = config.hideSensitiveFields(item)
		}
		return result
	default:
		return v
	}
}

func (config LoggerConfig) isSensitiveField(field string) bool {
	lower := strings.ToLower(field)
	for _, s := range config.SensitiveFields {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func formatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%dB", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1fKB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1fMB", float64(bytes)/(1024*1024))
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
