package constants

import "time"

const (
	// Адрес опубликованного Apps Script с таблицей продаж
	DefaultCatalogAPIURL = "https://script.google.com/macros/s/AKfycbxu01NE_C0clZbDDy2L5jrXqjOdQMix3GmwJUWQ1KRs4aa-4r3dRS80fUsahvxf9Nss8A/exec"

	DefaultCatalogCacheKey = "bangHangDataCache"
	DefaultCacheWindow     = 60 * time.Minute
	// Задержка при чтении из кэша, чтобы индикатор загрузки успел показаться
	DefaultCacheHitDelay = 200 * time.Millisecond
	DefaultFetchTimeout  = 30 * time.Second

	// Задержка перед сообщением об успешной отправке формы
	DefaultConsultingFeedbackDelay   = 300 * time.Millisecond
	DefaultConsultingDeliveryTimeout = 15 * time.Second
)
