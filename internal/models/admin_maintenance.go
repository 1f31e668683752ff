package models

// DuplicateTitle título que aparece más de una vez en el catálogo.
// El lookup por título usa FirstIndex.
type DuplicateTitle struct {
	Title      string `json:"title"`
	Indices    []int  `json:"indices"`
	FirstIndex int    `json:"firstIndex"`
}

// PosterCacheStats estado del cache en memoria de posters.
type PosterCacheStats struct {
	Entries      int    `json:"entries"`
	Capacity     int    `json:"capacity"`
	RedisEnabled bool   `json:"redisEnabled"`
	BreakerState string `json:"breakerState"`
}

// AdminDatasetSummary respuesta de /admin/dataset/summary.
type AdminDatasetSummary struct {
	Source          string           `json:"source"`
	CatalogSize     int              `json:"catalogSize"`
	MatrixRows      int              `json:"matrixRows"`
	WithoutGenre    int              `json:"withoutGenre"`
	DuplicateTitles []DuplicateTitle `json:"duplicateTitles"`
	PosterCache     PosterCacheStats `json:"posterCache"`
}

// AdminNeighbors respuesta de /admin/dataset/neighbors.
type AdminNeighbors struct {
	Movie     string     `json:"movie"`
	IIdx      int        `json:"iIdx"`
	Neighbors []Neighbor `json:"neighbors"`
}

// PurgeCacheResult respuesta de DELETE /admin/posters/cache.
type PurgeCacheResult struct {
	Purged int `json:"purged"`
}
