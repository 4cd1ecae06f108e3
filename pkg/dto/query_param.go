package dto

type Filter struct {
	Page     int     `query:"page"`
	Limit    int     `query:"limit"`
	Keyword  string  `query:"keyword"`
	Category string  `query:"category"`
	MinPrice float64 `query:"minPrice"`
	MaxPrice float64 `query:"maxPrice"`
}

type Pagination struct {
	Records interface{} `json:"records"`
	Page    int         `json:"page"`
	Pages   int         `json:"pages"`
	Total   int64       `json:"total"`
}
