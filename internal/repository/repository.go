package repository

// Repository 所有存储的聚合入口
type Repository struct {
	Venue VenueStore
	Cache KV // 记分板缓存
}

// NewRepository 创建 Repository 聚合
func NewRepository(venue VenueStore, cache KV) *Repository {
	return &Repository{Venue: venue, Cache: cache}
}
