package cache

import "time"

// Key 前缀
const (
	KeyClassView = "dancefusion:class_view:"
)

// TTL 默认值
const (
	TTLClassView = 5 * time.Minute
)
