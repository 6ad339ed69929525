package usecase

import (
	"github.com/GoArmGo/ContactBook/internal/domain"
)

// Значения пагинации по умолчанию, когда клиент их не прислал.
const (
	defaultPage = 1
	defaultSize = 10
)

// normalizeSearchRequest подставляет дефолты страницы и размера.
// Вызывается ДО валидации: валидатор уже проверяет итоговые значения (page>=1 и т.д.).
func normalizeSearchRequest(request *domain.SearchContactRequest) {
	if request.Page <= 0 {
		request.Page = defaultPage
	}
	if request.Size <= 0 {
		request.Size = defaultSize
	}
}

// buildPaging считает блок пагинации: total_page = ceil(total/size).
// Запрос страницы за пределами total_page — не ошибка: items будут пустыми,
// а total_page останется честным.
func buildPaging(request domain.SearchContactRequest, total int64) *domain.Paging {
	totalPage := int((total + int64(request.Size) - 1) / int64(request.Size))
	return &domain.Paging{
		CurrentPage: request.Page,
		Size:        request.Size,
		TotalPage:   totalPage,
	}
}

// searchOffset переводит 1-базную страницу в смещение выборки.
func searchOffset(request domain.SearchContactRequest) int {
	return (request.Page - 1) * request.Size
}
