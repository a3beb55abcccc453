package errcodes

type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	InternalServerError ErrorCode = "InternalServerError"
	TimeoutExceeded     ErrorCode = "TimeoutExceeded"
	ValidationError     ErrorCode = "ValidationError"
	NotFound            ErrorCode = "NotFound"

	// Объявления и задачи извлечения
	ListingNotFound  ErrorCode = "ListingNotFound"  // Когда ID есть, но в базе нет
	InvalidListingID ErrorCode = "InvalidListingID" // Когда пришел мусор вместо ID
	EmptyListingText ErrorCode = "EmptyListingText" // Ни заголовка, ни описания
	TaskNotFound     ErrorCode = "TaskNotFound"     // Результат задачи истёк или не готов
	InvalidPaging    ErrorCode = "InvalidPaging"
)
