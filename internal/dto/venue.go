package dto

// ── 场地模块 DTO ──

// VenueStatusRequest 场地状态更新请求
// 字段不加 required 校验：缺失字段由 Service 统一返回 ErrMissingVenueFields
type VenueStatusRequest struct {
	ID     string `json:"id"     binding:"max=64"`
	Status string `json:"status" binding:"max=32"`
}

// VenueBatchRequest 批量更新请求
type VenueBatchRequest struct {
	Updates []VenueStatusRequest `json:"updates" binding:"max=200,dive"`
}
