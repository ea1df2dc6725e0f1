package main

import (
	"log"
	"strings"

	"dancefusion/pkg/logging"
)

// serverErrorWriter 将 net/http 内部错误（连接读写失败、panic 恢复等）转写为结构化日志
type serverErrorWriter struct {
	log *logging.Logger
}

func (w *serverErrorWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimSpace(string(p))
	// 客户端提前断开属于预期噪音
	if strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer") {
		w.log.Debug("http server", "detail", msg)
		return len(p), nil
	}
	w.log.Warn("http server", "detail", msg)
	return len(p), nil
}

// newServerErrorLog 创建用于 http.Server.ErrorLog 的 logger
func newServerErrorLog(l *logging.Logger) *log.Logger {
	return log.New(&serverErrorWriter{log: l}, "", 0)
}
