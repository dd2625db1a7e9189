package errors

import "errors"

// ── 通用错误分类 ──
//
// 业务模块的哨兵错误归入以下分类，Handler 按分类映射 HTTP 状态：
//   - ErrValidation → 400
//   - ErrNotFound   → 404
//   - ErrUpstream   → 500（缓存 / 文件 / 远程 API 故障）

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream failure")
)

// ErrOptimisticLock 乐观锁冲突：记录在读-改-写期间被其他请求修改，重试耗尽
var ErrOptimisticLock = errors.New("record modified concurrently, retry later")

// ErrStoreUnavailable 后端存储未连接（启动时连接失败后的降级状态）
var ErrStoreUnavailable = errors.New("store unavailable")

// classified 带分类的业务错误：Error() 只返回业务描述，errors.Is 可匹配分类
type classified struct {
	kind error
	msg  string
}

func (e *classified) Error() string { return e.msg }

func (e *classified) Unwrap() error { return e.kind }

// Validation 创建归类为 ErrValidation 的哨兵错误
func Validation(msg string) error {
	return &classified{kind: ErrValidation, msg: msg}
}

// NotFound 创建归类为 ErrNotFound 的哨兵错误
func NotFound(msg string) error {
	return &classified{kind: ErrNotFound, msg: msg}
}
