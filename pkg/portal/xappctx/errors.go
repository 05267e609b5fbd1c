package xappctx

import (
	"errors"
	"fmt"
)

// =============================================================================
// 哨兵错误
// =============================================================================

var (
	// ErrNilContainer 表示传入的属性容器为 nil。
	ErrNilContainer = errors.New("xappctx: nil container")

	// ErrNoContext 表示容器中不存在根应用上下文（GetRequired 专用）。
	ErrNoContext = errors.New("xappctx: no application context found: is the context loader registered?")

	// ErrUnexpectedAttribute 表示约定属性名下的值不是应用上下文。
	// 实际返回的错误会通过 %w 包装此哨兵，消息中携带实际值的类型和描述。
	ErrUnexpectedAttribute = errors.New("xappctx: attribute is not an application context")

	// ErrStartupPanic 表示上下文启动过程中发生了 panic。
	// 使用 errors.Is(err, ErrStartupPanic) 判断，
	// 使用 errors.As 获取 *StartupPanicError 以访问原始 panic 载荷。
	ErrStartupPanic = errors.New("xappctx: context startup panicked")
)

// =============================================================================
// 启动失败记录
// =============================================================================

// PanicRecord 记录上下文启动时恢复到的 panic。
//
// 加载器在 recover 后把此记录写入容器的根上下文属性，
// 代替无法直接作为 error 存储的任意 panic 载荷。
// PanicRecord 本身不实现 error 接口——它是被记录的失败"值"，
// 由查找层包装为 *StartupPanicError 后返回。
type PanicRecord struct {
	// Value 是 panic 的原始载荷。
	Value any

	// Stack 是 recover 时捕获的调用栈（可能为空）。
	Stack []byte
}

// StartupPanicError 包装 PanicRecord 的错误类型。
//
//	var panicErr *xappctx.StartupPanicError
//	if errors.As(err, &panicErr) {
//	    fmt.Printf("startup panicked: %v\n", panicErr.Record.Value)
//	}
type StartupPanicError struct {
	Record *PanicRecord
}

// Error 实现 error 接口。
func (e *StartupPanicError) Error() string {
	if e.Record == nil {
		return "xappctx: context startup panicked"
	}
	return fmt.Sprintf("xappctx: context startup panicked: %v", e.Record.Value)
}

// Is 支持 errors.Is(err, ErrStartupPanic) 判断。
func (e *StartupPanicError) Is(target error) bool {
	return target == ErrStartupPanic
}

// Unwrap 返回底层错误。
func (e *StartupPanicError) Unwrap() error {
	return ErrStartupPanic
}
