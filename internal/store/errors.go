package store

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrorKind 存储错误分类
type ErrorKind int

const (
	KindTransient  ErrorKind = iota // 瞬时错误，可重试
	KindNotFound                    // 记录不存在
	KindConstraint                  // 约束冲突
)

// Error 带分类的存储错误
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store error (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "notfound"
	case KindConstraint:
		return "constraint"
	default:
		return "transient"
	}
}

// Classify 将底层数据库错误归类为存储错误
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		return se
	}

	kind := KindTransient
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		kind = KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		kind = KindConstraint
	case strings.Contains(err.Error(), "duplicate key"),
		strings.Contains(err.Error(), "violates"),
		strings.Contains(err.Error(), "UNIQUE constraint failed"),
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		kind = KindConstraint
	}

	return &Error{Kind: kind, Err: err}
}

// IsNotFound 是否为记录不存在错误
func IsNotFound(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == KindNotFound
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsConstraint 是否为约束冲突错误
func IsConstraint(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == KindConstraint
	}
	return false
}

// IsTransient 是否为可重试的瞬时错误
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == KindTransient
	}
	return Classify(err).Kind == KindTransient
}
