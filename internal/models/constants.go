package models

const (
	// DefaultPageSize размер страницы списков по умолчанию
	DefaultPageSize = 10

	// SearchCacheTTL время жизни кэша результатов поиска в секундах
	SearchCacheTTL = 30

	// RateLimitRequests количество запросов в окне
	RateLimitRequests = 30

	// RateLimitWindow окно ограничения частоты запросов в секундах
	RateLimitWindow = 60
)
