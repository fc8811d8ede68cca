package store

import (
	"context"
	"time"

	"github.com/blues/cfp/internal/logger"
)

// Retry 对瞬时错误做有界重试，退避时间逐次翻倍。
// 非瞬时错误（记录不存在、约束冲突）立即返回，不重试。
func Retry(ctx context.Context, attempts int, backoff time.Duration, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = op(); err == nil {
			return nil
		}

		classified := Classify(err)
		if classified.Kind != KindTransient {
			return classified
		}

		if i == attempts-1 {
			break
		}

		logger.Warn("Transient store error, retrying in %s (attempt %d/%d): %v", backoff, i+1, attempts, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return Classify(err)
}
