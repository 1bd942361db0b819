package domain

import "errors"

var (
	// ErrFeedUnavailable - сетевая ошибка, не-2xx ответ или битый JSON
	ErrFeedUnavailable = errors.New("catalog feed unavailable")
	// ErrInvalidFeed - в ответе нет массива data
	ErrInvalidFeed = errors.New("catalog feed has invalid shape")
)

// Тексты для посетителя
const (
	MessageFeedUnavailable = "Không thể tải dữ liệu. Vui lòng thử lại sau."
	MessageInvalidFeed     = "Dữ liệu không hợp lệ."
	MessageNoResults       = "Không có sản phẩm nào để hiển thị."
	MessageRefreshed       = "Cập nhật thành công!"
	MessageConsultingSent  = "✅ Gửi thông tin thành công!"
)

// UserMessage переводит ошибку загрузки в текст для посетителя
func UserMessage(err error) string {
	if errors.Is(err, ErrInvalidFeed) {
		return MessageInvalidFeed
	}
	return MessageFeedUnavailable
}
