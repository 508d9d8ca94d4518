// Package async 提供带完成通道的异步结果类型
package async

import "context"

// Result 成功值或失败原因
type Result[T any] struct {
	Value T
	Err   error
}

// OK 是否成功
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Future 一次性异步结果，完成后 Done 通道关闭
type Future[T any] struct {
	done   chan struct{}
	result Result[T]
}

// Go 在新 goroutine 中执行 fn，返回其 Future
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		v, err := fn(ctx)
		f.result = Result[T]{Value: v, Err: err}
	}()
	return f
}

// Done 完成通知通道
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await 等待结果；ctx 先结束时返回 ctx 的错误，后台任务不会被取消
func (f *Future[T]) Await(ctx context.Context) Result[T] {
	select {
	case <-f.done:
		return f.result
	case <-ctx.Done():
		var zero T
		return Result[T]{Value: zero, Err: ctx.Err()}
	}
}

// Then 完成后在单独的 goroutine 中回调
func (f *Future[T]) Then(fn func(Result[T])) {
	go func() {
		<-f.done
		fn(f.result)
	}()
}
